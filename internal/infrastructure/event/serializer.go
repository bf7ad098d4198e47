package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Envelope is the wire form of a domain event, shared by the Kafka topic
// and the audit log. Payload holds the full event as JSON.
type Envelope struct {
	EventID       uuid.UUID       `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	ActorID       uuid.UUID       `json:"actor_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps ev
func NewEnvelope(ev shared.DomainEvent) (*Envelope, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", ev.EventType(), err)
	}
	return &Envelope{
		EventID:       ev.EventID(),
		EventType:     ev.EventType(),
		AggregateType: ev.AggregateType(),
		AggregateID:   ev.AggregateID(),
		ActorID:       ev.ActorID(),
		OccurredAt:    ev.OccurredAt().UTC(),
		Payload:       payload,
	}, nil
}

// DecodeEnvelope parses a message produced by Envelope.Encode
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode event envelope: %w", err)
	}
	if env.EventID == uuid.Nil || env.EventType == "" {
		return nil, fmt.Errorf("decode event envelope: missing event id or type")
	}
	return &env, nil
}

func (e *Envelope) Encode() ([]byte, error) {
	return json.Marshal(e)
}
