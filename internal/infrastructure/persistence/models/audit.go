package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogModel records one domain event for the audit trail
type AuditLogModel struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	EventID       uuid.UUID `gorm:"type:char(36);not null;uniqueIndex"`
	EventType     string    `gorm:"type:varchar(100);not null;index"`
	AggregateType string    `gorm:"type:varchar(50);not null"`
	AggregateID   uuid.UUID `gorm:"type:char(36);not null;index"`
	ActorID       uuid.UUID `gorm:"type:char(36);index"`
	Payload       string    `gorm:"type:text"`
	OccurredAt    time.Time `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }

// All returns every model for AutoMigrate, parents before children
func All() []any {
	out := []any{&UserModel{}}
	out = append(out, AllRegionModels()...)
	return append(out,
		&SalesmanModel{},
		&DistributorModel{},
		&PartyModel{},
		&AttributeModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ExpenseModel{},
		&EventModel{},
		&AuditLogModel{},
	)
}
