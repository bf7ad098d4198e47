package calendar

import (
	"strings"
	"time"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EventType classifies a calendar entry
type EventType string

const (
	EventTypeExhibition EventType = "exhibition"
	EventTypeMeeting    EventType = "meeting"
	EventTypeTraining   EventType = "training"
	EventTypeLaunch     EventType = "launch"
	EventTypeOther      EventType = "other"
)

func ParseEventType(s string) (EventType, error) {
	t := EventType(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return EventTypeOther, nil
	}
	switch t {
	case EventTypeExhibition, EventTypeMeeting, EventTypeTraining, EventTypeLaunch, EventTypeOther:
		return t, nil
	}
	return "", shared.NewDomainError("INVALID_EVENT_TYPE", "Event type must be exhibition, meeting, training, launch or other")
}

// Event is a trade show, meeting or other dated activity
type Event struct {
	shared.OwnedAggregateRoot
	Title       string
	Description string
	Type        EventType
	StartDate   time.Time
	EndDate     time.Time
	Venue       string
	CityID      *uuid.UUID
}

// NewEvent creates an event owned by userID
func NewEvent(userID uuid.UUID, title string, eventType EventType, start, end time.Time) (*Event, error) {
	e := &Event{OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID)}
	if err := e.Retitle(title, ""); err != nil {
		return nil, err
	}
	if err := e.Reschedule(start, end); err != nil {
		return nil, err
	}
	e.Type = eventType
	if e.Type == "" {
		e.Type = EventTypeOther
	}
	return e, nil
}

func (e *Event) Retitle(title, description string) error {
	title, err := shared.RequireText("INVALID_TITLE", "Title", title, 200)
	if err != nil {
		return err
	}
	description, err = shared.OptionalText("INVALID_DESCRIPTION", "Description", description, 2000)
	if err != nil {
		return err
	}
	e.Title = title
	e.Description = description
	e.Touch()
	return nil
}

// Reschedule sets the date range; a zero end means a single-day event
func (e *Event) Reschedule(start, end time.Time) error {
	if start.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Start date is required")
	}
	if end.IsZero() {
		end = start
	}
	if end.Before(start) {
		return shared.NewDomainError("INVALID_DATE", "End date cannot be before start date")
	}
	e.StartDate = start
	e.EndDate = end
	e.Touch()
	return nil
}

func (e *Event) SetType(t EventType) {
	e.Type = t
	e.Touch()
}

func (e *Event) SetVenue(venue string, cityID *uuid.UUID) error {
	venue, err := shared.OptionalText("INVALID_VENUE", "Venue", venue, 300)
	if err != nil {
		return err
	}
	if cityID != nil && *cityID == uuid.Nil {
		cityID = nil
	}
	e.Venue = venue
	e.CityID = cityID
	e.Touch()
	return nil
}

// IsUpcoming reports whether the event has not ended yet
func (e *Event) IsUpcoming(now time.Time) bool {
	return !e.EndDate.Before(now)
}

// ClearReference nulls city_id after the database rejected it
func (e *Event) ClearReference(field string) []string {
	if field != "city_id" || e.CityID == nil {
		return nil
	}
	e.CityID = nil
	e.Touch()
	return []string{field}
}
