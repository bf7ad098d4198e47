package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/calendar"
	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// EventService handles calendar events
type EventService struct {
	events  calendar.EventRepository
	regions geography.RegionFinder
}

func NewEventService(events calendar.EventRepository, regions geography.RegionFinder) *EventService {
	return &EventService{events: events, regions: regions}
}

// Create schedules an event. An unknown city is dropped.
func (s *EventService) Create(ctx context.Context, actor application.Actor, req CreateEventRequest) (*EventResponse, error) {
	owner, err := actor.OwnerFor(req.OwnerID)
	if err != nil {
		return nil, err
	}
	eventType, err := calendar.ParseEventType(req.Type)
	if err != nil {
		return nil, err
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	event, err := calendar.NewEvent(owner, req.Title, eventType, start, end)
	if err != nil {
		return nil, err
	}
	if err := event.Retitle(req.Title, req.Description); err != nil {
		return nil, err
	}
	cityID, dropped, err := s.checkCity(ctx, req.CityID)
	if err != nil {
		return nil, err
	}
	if err := event.SetVenue(req.Venue, cityID); err != nil {
		return nil, err
	}

	more, err := application.WriteWithRecovery(ctx, event, func(ctx context.Context) error {
		return s.events.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	resp := ToEventResponse(event)
	resp.DroppedReferences = application.MergeDropped(dropped, more...)
	return &resp, nil
}

func (s *EventService) GetByID(ctx context.Context, actor application.Actor, id uuid.UUID) (*EventResponse, error) {
	event, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := ToEventResponse(event)
	return &resp, nil
}

// List returns the visible events ordered by start date
func (s *EventService) List(ctx context.Context, actor application.Actor, filter EventListFilter) ([]EventResponse, int64, error) {
	f := filter.Filter()
	if f.OrderBy == "" {
		f.OrderBy = "start_date"
		f.OrderDir = "asc"
	}
	if err := filter.DateRangeQuery.ApplyTo(f.Filters); err != nil {
		return nil, 0, err
	}
	if filter.Type != "" {
		f.Filters["type"] = calendar.EventType(filter.Type)
	}
	application.SetUUIDFilter(f.Filters, "city_id", filter.CityID)

	events, total, err := s.events.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return lo.Map(events, func(e *calendar.Event, _ int) EventResponse { return ToEventResponse(e) }), total, nil
}

func (s *EventService) Update(ctx context.Context, actor application.Actor, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil || req.Description != nil {
		title, desc := event.Title, event.Description
		if req.Title != nil {
			title = *req.Title
		}
		if req.Description != nil {
			desc = *req.Description
		}
		if err := event.Retitle(title, desc); err != nil {
			return nil, err
		}
	}
	if req.Type != nil {
		t, err := calendar.ParseEventType(*req.Type)
		if err != nil {
			return nil, err
		}
		event.SetType(t)
	}
	if req.StartDate != nil || req.EndDate != nil {
		start, end := event.StartDate, event.EndDate
		if req.StartDate != nil {
			if start, err = parseDate(*req.StartDate); err != nil {
				return nil, err
			}
		}
		if req.EndDate != nil {
			if end, err = parseDate(*req.EndDate); err != nil {
				return nil, err
			}
		}
		if err := event.Reschedule(start, end); err != nil {
			return nil, err
		}
	}

	var dropped []string
	if req.Venue != nil || req.CityID.Set {
		venue := event.Venue
		if req.Venue != nil {
			venue = *req.Venue
		}
		cityID := event.CityID
		if req.CityID.Set {
			if cityID, dropped, err = s.checkCity(ctx, req.CityID.ID); err != nil {
				return nil, err
			}
		}
		if err := event.SetVenue(venue, cityID); err != nil {
			return nil, err
		}
	}

	more, err := application.WriteWithRecovery(ctx, event, func(ctx context.Context) error {
		return s.events.Update(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	resp := ToEventResponse(event)
	resp.DroppedReferences = application.MergeDropped(dropped, more...)
	return &resp, nil
}

func (s *EventService) Delete(ctx context.Context, actor application.Actor, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}

// checkCity returns nil and "city_id" when id names no city
func (s *EventService) checkCity(ctx context.Context, id *uuid.UUID) (*uuid.UUID, []string, error) {
	if id == nil || *id == uuid.Nil {
		return nil, nil, nil
	}
	_, err := s.regions.FindByID(ctx, geography.LevelCity, *id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, []string{"city_id"}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return id, nil, nil
}

func (s *EventService) load(ctx context.Context, actor application.Actor, id uuid.UUID) (*calendar.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(event.UserID) {
		return nil, shared.ErrNotFound
	}
	return event, nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	s, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end == "" {
		return s, s, nil
	}
	e, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s, e, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Dates must be YYYY-MM-DD")
	}
	return t, nil
}
