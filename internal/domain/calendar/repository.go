package calendar

import (
	"context"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EventRepository persists events. Reads are visibility scoped.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	// FindAll supports filters type, city_id, from_date, to_date
	FindAll(ctx context.Context, filter shared.Filter) ([]*Event, int64, error)
	CountUpcoming(ctx context.Context) (int64, error)
}
