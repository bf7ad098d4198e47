package handler

import (
	partnerapp "github.com/eyedist/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// SalesmanHandler handles salesmen endpoints
type SalesmanHandler struct {
	BaseHandler
	salesmanService *partnerapp.SalesmanService
}

// NewSalesmanHandler creates a new SalesmanHandler
func NewSalesmanHandler(salesmanService *partnerapp.SalesmanService) *SalesmanHandler {
	return &SalesmanHandler{salesmanService: salesmanService}
}

// Create godoc
// @Summary      Create salesman
// @Description  The employee code must be unique. Unknown location or account ids are dropped.
// @Tags         salesmen
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateSalesmanRequest true "Salesman"
// @Success      201 {object} dto.Response{data=partnerapp.SalesmanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /salesmen [post]
func (h *SalesmanHandler) Create(c *gin.Context) {
	var req partnerapp.CreateSalesmanRequest
	if !h.bindJSON(c, &req) {
		return
	}
	salesman, err := h.salesmanService.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, salesman)
}

// GetByID godoc
// @Summary      Get salesman
// @Tags         salesmen
// @Produce      json
// @Param        id path string true "Salesman ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.SalesmanResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /salesmen/{id} [get]
func (h *SalesmanHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	salesman, err := h.salesmanService.GetByID(c.Request.Context(), actor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, salesman)
}

// List godoc
// @Summary      List salesmen
// @Description  Admins and managers see every salesman; other roles see their own
// @Tags         salesmen
// @Produce      json
// @Param        page       query int    false "Page"
// @Param        page_size  query int    false "Page size"
// @Param        search     query string false "Name or employee code"
// @Param        order_by   query string false "Sort field"
// @Param        order_dir  query string false "asc or desc"
// @Param        active     query bool   false "Active"
// @Param        country_id query string false "Country" format(uuid)
// @Param        state_id   query string false "State" format(uuid)
// @Param        city_id    query string false "City" format(uuid)
// @Param        zone_id    query string false "Zone" format(uuid)
// @Success      200 {object} dto.Response{data=[]partnerapp.SalesmanResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /salesmen [get]
func (h *SalesmanHandler) List(c *gin.Context) {
	var filter partnerapp.SalesmanListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	rows, total, err := h.salesmanService.List(c.Request.Context(), actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rows, total, filter.ListQuery)
}

// Update godoc
// @Summary      Update salesman
// @Description  Changing a location level clears the levels below it unless they are sent too
// @Tags         salesmen
// @Accept       json
// @Produce      json
// @Param        id      path string true "Salesman ID" format(uuid)
// @Param        request body partnerapp.UpdateSalesmanRequest true "Changes"
// @Success      200 {object} dto.Response{data=partnerapp.SalesmanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /salesmen/{id} [put]
func (h *SalesmanHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req partnerapp.UpdateSalesmanRequest
	if !h.bindJSON(c, &req) {
		return
	}
	salesman, err := h.salesmanService.Update(c.Request.Context(), actor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, salesman)
}

// Delete godoc
// @Summary      Delete salesman
// @Tags         salesmen
// @Param        id path string true "Salesman ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /salesmen/{id} [delete]
func (h *SalesmanHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.salesmanService.Delete(c.Request.Context(), actor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
