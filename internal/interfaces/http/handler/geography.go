package handler

import (
	geographyapp "github.com/eyedist/backend/internal/application/geography"
	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/gin-gonic/gin"
)

// RegionHandler serves one level of the geography tree. The router mounts
// one instance per level.
type RegionHandler struct {
	BaseHandler
	level         geography.Level
	regionService *geographyapp.RegionService
}

// NewRegionHandler creates a handler for the given level
func NewRegionHandler(regionService *geographyapp.RegionService, level geography.Level) *RegionHandler {
	return &RegionHandler{level: level, regionService: regionService}
}

// Level returns the level this handler serves
func (h *RegionHandler) Level() geography.Level {
	return h.level
}

// Create godoc
// @Summary      Create region
// @Description  parent_id is required for states (country), cities (state) and zones (city)
// @Tags         geography
// @Accept       json
// @Produce      json
// @Param        request body geographyapp.CreateRegionRequest true "Region"
// @Success      201 {object} dto.Response{data=geographyapp.RegionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /countries [post]
// @Router       /states [post]
// @Router       /cities [post]
// @Router       /zones [post]
func (h *RegionHandler) Create(c *gin.Context) {
	var req geographyapp.CreateRegionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	region, err := h.regionService.Create(c.Request.Context(), h.level, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, region)
}

// GetByID godoc
// @Summary      Get region
// @Tags         geography
// @Produce      json
// @Param        id path string true "Region ID" format(uuid)
// @Success      200 {object} dto.Response{data=geographyapp.RegionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /countries/{id} [get]
// @Router       /states/{id} [get]
// @Router       /cities/{id} [get]
// @Router       /zones/{id} [get]
func (h *RegionHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	region, err := h.regionService.GetByID(c.Request.Context(), h.level, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, region)
}

// List godoc
// @Summary      List regions
// @Tags         geography
// @Produce      json
// @Param        page      query int    false "Page"
// @Param        page_size query int    false "Page size"
// @Param        search    query string false "Name"
// @Param        parent_id query string false "Parent region" format(uuid)
// @Success      200 {object} dto.Response{data=[]geographyapp.RegionResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /countries [get]
// @Router       /states [get]
// @Router       /cities [get]
// @Router       /zones [get]
func (h *RegionHandler) List(c *gin.Context) {
	var filter geographyapp.RegionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	regions, total, err := h.regionService.List(c.Request.Context(), h.level, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, regions, total, filter.ListQuery)
}

// Children godoc
// @Summary      List child regions
// @Description  The cascading dropdown chain: states of a country, cities of a state, zones of a city
// @Tags         geography
// @Produce      json
// @Param        id path string true "Parent ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]geographyapp.RegionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /countries/{id}/states [get]
// @Router       /states/{id}/cities [get]
// @Router       /cities/{id}/zones [get]
func (h *RegionHandler) Children(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	regions, err := h.regionService.Children(c.Request.Context(), h.level, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, regions)
}

// Update godoc
// @Summary      Update region
// @Tags         geography
// @Accept       json
// @Produce      json
// @Param        id      path string true "Region ID" format(uuid)
// @Param        request body geographyapp.UpdateRegionRequest true "Changes"
// @Success      200 {object} dto.Response{data=geographyapp.RegionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /countries/{id} [put]
// @Router       /states/{id} [put]
// @Router       /cities/{id} [put]
// @Router       /zones/{id} [put]
func (h *RegionHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req geographyapp.UpdateRegionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	region, err := h.regionService.Update(c.Request.Context(), h.level, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, region)
}

// Delete godoc
// @Summary      Delete region
// @Description  A region that still has children cannot be deleted
// @Tags         geography
// @Param        id path string true "Region ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /countries/{id} [delete]
// @Router       /states/{id} [delete]
// @Router       /cities/{id} [delete]
// @Router       /zones/{id} [delete]
func (h *RegionHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.regionService.Delete(c.Request.Context(), h.level, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
