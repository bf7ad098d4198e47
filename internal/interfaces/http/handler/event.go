package handler

import (
	calendarapp "github.com/eyedist/backend/internal/application/calendar"
	"github.com/gin-gonic/gin"
)

// EventHandler handles calendar events
type EventHandler struct {
	BaseHandler
	eventService *calendarapp.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *calendarapp.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create godoc
// @Summary      Create event
// @Description  Dates are YYYY-MM-DD. A missing end date makes a single-day event; an unknown city_id is dropped.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body calendarapp.CreateEventRequest true "Event"
// @Success      201 {object} dto.Response{data=calendarapp.EventResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req calendarapp.CreateEventRequest
	if !h.bindJSON(c, &req) {
		return
	}
	event, err := h.eventService.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, event)
}

// GetByID godoc
// @Summary      Get event
// @Tags         events
// @Produce      json
// @Param        id path string true "Event ID" format(uuid)
// @Success      200 {object} dto.Response{data=calendarapp.EventResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /events/{id} [get]
func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	event, err := h.eventService.GetByID(c.Request.Context(), actor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, event)
}

// List godoc
// @Summary      List events
// @Description  Admins and managers see every event; other roles see their own
// @Tags         events
// @Produce      json
// @Param        page       query int    false "Page"
// @Param        page_size  query int    false "Page size"
// @Param        search     query string false "Title or venue"
// @Param        type       query string false "Event type" Enums(exhibition,meeting,training,launch,other)
// @Param        city_id    query string false "City" format(uuid)
// @Param        from_date  query string false "Overlapping from (YYYY-MM-DD)"
// @Param        to_date    query string false "Overlapping to (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]calendarapp.EventResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /events [get]
func (h *EventHandler) List(c *gin.Context) {
	var filter calendarapp.EventListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	rows, total, err := h.eventService.List(c.Request.Context(), actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rows, total, filter.ListQuery)
}

// Update godoc
// @Summary      Update event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id      path string true "Event ID" format(uuid)
// @Param        request body calendarapp.UpdateEventRequest true "Changes"
// @Success      200 {object} dto.Response{data=calendarapp.EventResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req calendarapp.UpdateEventRequest
	if !h.bindJSON(c, &req) {
		return
	}
	event, err := h.eventService.Update(c.Request.Context(), actor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, event)
}

// Delete godoc
// @Summary      Delete event
// @Tags         events
// @Param        id path string true "Event ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.eventService.Delete(c.Request.Context(), actor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
