package handler

import (
	partnerapp "github.com/eyedist/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// DistributorHandler handles distributors endpoints
type DistributorHandler struct {
	BaseHandler
	distributorService *partnerapp.DistributorService
}

// NewDistributorHandler creates a new DistributorHandler
func NewDistributorHandler(distributorService *partnerapp.DistributorService) *DistributorHandler {
	return &DistributorHandler{distributorService: distributorService}
}

// Create godoc
// @Summary      Create distributor
// @Description  Location ids that do not exist are stored as null and listed in dropped_references
// @Tags         distributors
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateDistributorRequest true "Distributor"
// @Success      201 {object} dto.Response{data=partnerapp.DistributorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /distributors [post]
func (h *DistributorHandler) Create(c *gin.Context) {
	var req partnerapp.CreateDistributorRequest
	if !h.bindJSON(c, &req) {
		return
	}
	distributor, err := h.distributorService.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, distributor)
}

// GetByID godoc
// @Summary      Get distributor
// @Tags         distributors
// @Produce      json
// @Param        id path string true "Distributor ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.DistributorResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /distributors/{id} [get]
func (h *DistributorHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	distributor, err := h.distributorService.GetByID(c.Request.Context(), actor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, distributor)
}

// List godoc
// @Summary      List distributors
// @Description  Admins and managers see every distributor; other roles see their own
// @Tags         distributors
// @Produce      json
// @Param        page       query int    false "Page"
// @Param        page_size  query int    false "Page size"
// @Param        search     query string false "Name, contact or GST number"
// @Param        order_by   query string false "Sort field"
// @Param        order_dir  query string false "asc or desc"
// @Param        active     query bool   false "Active"
// @Param        country_id query string false "Country" format(uuid)
// @Param        state_id   query string false "State" format(uuid)
// @Param        city_id    query string false "City" format(uuid)
// @Param        zone_id    query string false "Zone" format(uuid)
// @Success      200 {object} dto.Response{data=[]partnerapp.DistributorResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /distributors [get]
func (h *DistributorHandler) List(c *gin.Context) {
	var filter partnerapp.DistributorListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	rows, total, err := h.distributorService.List(c.Request.Context(), actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rows, total, filter.ListQuery)
}

// Update godoc
// @Summary      Update distributor
// @Description  Changing a location level clears the levels below it unless they are sent too
// @Tags         distributors
// @Accept       json
// @Produce      json
// @Param        id      path string true "Distributor ID" format(uuid)
// @Param        request body partnerapp.UpdateDistributorRequest true "Changes"
// @Success      200 {object} dto.Response{data=partnerapp.DistributorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /distributors/{id} [put]
func (h *DistributorHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req partnerapp.UpdateDistributorRequest
	if !h.bindJSON(c, &req) {
		return
	}
	distributor, err := h.distributorService.Update(c.Request.Context(), actor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, distributor)
}

// Delete godoc
// @Summary      Delete distributor
// @Tags         distributors
// @Param        id path string true "Distributor ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /distributors/{id} [delete]
func (h *DistributorHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.distributorService.Delete(c.Request.Context(), actor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
