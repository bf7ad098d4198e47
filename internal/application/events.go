package application

import (
	"context"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// EventSource is an aggregate that collects domain events
type EventSource interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}

// PublishEvents hands the aggregate's pending events to publisher and clears
// them. A failed publish is logged; the write it follows has already been
// committed.
func PublishEvents(ctx context.Context, publisher shared.EventPublisher, src EventSource) {
	events := src.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	defer src.ClearDomainEvents()
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.L(ctx).Error("Failed to publish domain events",
			zap.Int("count", len(events)),
			zap.String("event_type", events[0].EventType()),
			zap.Error(err))
	}
}
