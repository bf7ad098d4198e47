package event

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// InMemoryEventBus dispatches events synchronously to subscribed handlers.
// A failing handler is logged and never fails the publishing request.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	running  atomic.Bool
}

func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish hands every event to its handlers in subscription order
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, ev := range events {
		for _, handler := range b.registry.Handlers(ev.EventType()) {
			if err := b.dispatch(ctx, handler, ev); err != nil {
				logger.L(ctx).Error("event handler failed",
					zap.String("event_type", ev.EventType()),
					zap.String("event_id", ev.EventID().String()),
					zap.String("aggregate_id", ev.AggregateID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers handler; without explicit types the handler's own
// EventTypes are used
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("event handler subscribed", zap.Strings("event_types", eventTypes))
}

func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.logger.Info("event bus started")
	return nil
}

func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)
	b.logger.Info("event bus stopped")
	return nil
}

// Running reports whether Start has been called without a matching Stop
func (b *InMemoryEventBus) Running() bool {
	return b.running.Load()
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, ev shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, ev)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
