package calendar

import (
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/calendar"
	"github.com/google/uuid"
)

// CreateEventRequest schedules an event. Dates are YYYY-MM-DD; a missing
// end date makes a single-day event.
type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=2000"`
	Type        string     `json:"type" binding:"omitempty,oneof=exhibition meeting training launch other"`
	StartDate   string     `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string     `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Venue       string     `json:"venue" binding:"max=300"`
	CityID      *uuid.UUID `json:"city_id"`
	OwnerID     *uuid.UUID `json:"user_id"`
}

// UpdateEventRequest edits an event; nil fields are kept
type UpdateEventRequest struct {
	Title       *string                `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string                `json:"description" binding:"omitempty,max=2000"`
	Type        *string                `json:"type" binding:"omitempty,oneof=exhibition meeting training launch other"`
	StartDate   *string                `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string                `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Venue       *string                `json:"venue" binding:"omitempty,max=300"`
	CityID      application.OptionalID `json:"city_id" swaggertype:"string" format:"uuid"`
}

// EventListFilter holds the query parameters of the event list. The date
// range matches events overlapping it.
type EventListFilter struct {
	application.ListQuery
	application.DateRangeQuery
	Type   string `form:"type" binding:"omitempty,oneof=exhibition meeting training launch other"`
	CityID string `form:"city_id" binding:"omitempty,uuid"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Type              string     `json:"type"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	Venue             string     `json:"venue,omitempty"`
	CityID            *uuid.UUID `json:"city_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Version           int        `json:"version"`
	DroppedReferences []string   `json:"dropped_references,omitempty"`
}

func ToEventResponse(e *calendar.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		Description: e.Description,
		Type:        string(e.Type),
		StartDate:   e.StartDate.Format(time.DateOnly),
		EndDate:     e.EndDate.Format(time.DateOnly),
		Venue:       e.Venue,
		CityID:      e.CityID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Version:     e.Version,
	}
}
