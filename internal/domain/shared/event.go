package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents an event that occurred in the domain
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
	ActorID() uuid.UUID
}

// BaseDomainEvent provides common fields for all domain events
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AggID     uuid.UUID `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
	Actor     uuid.UUID `json:"actor_id"`
}

func (e *BaseDomainEvent) EventID() uuid.UUID     { return e.ID }
func (e *BaseDomainEvent) EventType() string      { return e.Type }
func (e *BaseDomainEvent) OccurredAt() time.Time  { return e.Timestamp }
func (e *BaseDomainEvent) AggregateID() uuid.UUID { return e.AggID }
func (e *BaseDomainEvent) AggregateType() string  { return e.AggType }
func (e *BaseDomainEvent) ActorID() uuid.UUID     { return e.Actor }

// NewBaseDomainEvent creates a new base domain event
func NewBaseDomainEvent(eventType, aggType string, aggID, actorID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		AggID:     aggID,
		AggType:   aggType,
		Actor:     actorID,
	}
}
