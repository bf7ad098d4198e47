package handler

import (
	partnerapp "github.com/eyedist/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// PartyHandler handles parties endpoints
type PartyHandler struct {
	BaseHandler
	partyService *partnerapp.PartyService
}

// NewPartyHandler creates a new PartyHandler
func NewPartyHandler(partyService *partnerapp.PartyService) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

// Create godoc
// @Summary      Create party
// @Description  Location, distributor and salesman ids that do not exist are stored as null and listed in dropped_references
// @Tags         parties
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreatePartyRequest true "Party"
// @Success      201 {object} dto.Response{data=partnerapp.PartyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /parties [post]
func (h *PartyHandler) Create(c *gin.Context) {
	var req partnerapp.CreatePartyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	party, err := h.partyService.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, party)
}

// GetByID godoc
// @Summary      Get party
// @Tags         parties
// @Produce      json
// @Param        id path string true "Party ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.PartyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /parties/{id} [get]
func (h *PartyHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	party, err := h.partyService.GetByID(c.Request.Context(), actor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, party)
}

// List godoc
// @Summary      List parties
// @Description  Admins and managers see every party; other roles see their own
// @Tags         parties
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
// @Param        type           query string false "retail or institutional"
// @Param        distributor_id query string false "Distributor" format(uuid)
// @Param        salesman_id    query string false "Salesman" format(uuid)
// @Success      200 {object} dto.Response{data=[]partnerapp.PartyResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /parties [get]
func (h *PartyHandler) List(c *gin.Context) {
	var filter partnerapp.PartyListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	rows, total, err := h.partyService.List(c.Request.Context(), actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rows, total, filter.ListQuery)
}

// Update godoc
// @Summary      Update party
// @Description  Changing a location level clears the levels below it unless they are sent too
// @Tags         parties
// @Accept       json
// @Produce      json
// @Param        id      path string true "Party ID" format(uuid)
// @Param        request body partnerapp.UpdatePartyRequest true "Changes"
// @Success      200 {object} dto.Response{data=partnerapp.PartyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /parties/{id} [put]
func (h *PartyHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req partnerapp.UpdatePartyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	party, err := h.partyService.Update(c.Request.Context(), actor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, party)
}

// Delete godoc
// @Summary      Delete party
// @Tags         parties
// @Param        id path string true "Party ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /parties/{id} [delete]
func (h *PartyHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.partyService.Delete(c.Request.Context(), actor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
