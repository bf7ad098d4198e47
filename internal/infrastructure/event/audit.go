package event

import (
	"context"
	"time"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
)

// AuditAppender persists audit log entries
type AuditAppender interface {
	Append(ctx context.Context, entry *models.AuditLogModel) error
}

// AuditHandler records every domain event in the audit_logs table
type AuditHandler struct {
	store AuditAppender
	now   func() time.Time
}

func NewAuditHandler(store AuditAppender) *AuditHandler {
	return &AuditHandler{store: store, now: time.Now}
}

func (h *AuditHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	env, err := NewEnvelope(ev)
	if err != nil {
		return err
	}
	return h.store.Append(ctx, &models.AuditLogModel{
		ID:            uuid.New(),
		EventID:       env.EventID,
		EventType:     env.EventType,
		AggregateType: env.AggregateType,
		AggregateID:   env.AggregateID,
		ActorID:       env.ActorID,
		Payload:       string(env.Payload),
		OccurredAt:    env.OccurredAt,
		CreatedAt:     h.now().UTC(),
	})
}

func (h *AuditHandler) EventTypes() []string { return nil }

var _ shared.EventHandler = (*AuditHandler)(nil)
