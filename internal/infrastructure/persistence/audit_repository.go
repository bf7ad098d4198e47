package persistence

import (
	"context"

	"github.com/eyedist/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAuditLogRepository stores the audit trail of domain events
type GormAuditLogRepository struct {
	db *gorm.DB
}

func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append inserts entry; an event already recorded is ignored
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *models.AuditLogModel) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(entry).Error
}
