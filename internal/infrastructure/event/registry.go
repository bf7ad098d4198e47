package event

import (
	"slices"
	"sync"

	"github.com/eyedist/backend/internal/domain/shared"
)

// HandlerRegistry maps event types to the handlers subscribed to them
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	wildcard []shared.EventHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[string][]shared.EventHandler),
	}
}

// Register adds handler for eventTypes; with no types it receives every event
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(eventTypes) == 0 {
		r.wildcard = append(r.wildcard, handler)
		return
	}
	for _, eventType := range eventTypes {
		r.handlers[eventType] = append(r.handlers[eventType], handler)
	}
}

// Unregister removes handler from every event type
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wildcard = removeHandler(r.wildcard, handler)
	for eventType, handlers := range r.handlers {
		r.handlers[eventType] = removeHandler(handlers, handler)
		if len(r.handlers[eventType]) == 0 {
			delete(r.handlers, eventType)
		}
	}
}

// Handlers returns the type-specific handlers followed by the wildcard ones
func (r *HandlerRegistry) Handlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typed := r.handlers[eventType]
	out := make([]shared.EventHandler, 0, len(typed)+len(r.wildcard))
	out = append(out, typed...)
	return append(out, r.wildcard...)
}

func removeHandler(handlers []shared.EventHandler, target shared.EventHandler) []shared.EventHandler {
	return slices.DeleteFunc(slices.Clone(handlers), func(h shared.EventHandler) bool {
		return h == target
	})
}
