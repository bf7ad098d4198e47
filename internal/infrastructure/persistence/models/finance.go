package models

import (
	"time"

	"github.com/eyedist/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for finance.Expense
type ExpenseModel struct {
	OwnedModel
	ExpenseType finance.ExpenseType   `gorm:"type:varchar(30);not null;index"`
	Amount      decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	ExpenseDate time.Time             `gorm:"type:date;not null;index"`
	Description string                `gorm:"type:text"`
	BillPath    string                `gorm:"type:varchar(255)"`
	Status      finance.ExpenseStatus `gorm:"type:smallint;not null;default:0;index"`
	ReviewedBy  *uuid.UUID            `gorm:"type:char(36)"`
	ReviewedAt  *time.Time
	ReviewNote  string `gorm:"type:varchar(500)"`
}

func (ExpenseModel) TableName() string { return "expenses" }

func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		OwnedAggregateRoot: m.toOwned(),
		ExpenseType:        m.ExpenseType,
		Amount:             m.Amount,
		ExpenseDate:        m.ExpenseDate,
		Description:        m.Description,
		BillPath:           m.BillPath,
		Status:             m.Status,
		ReviewedBy:         m.ReviewedBy,
		ReviewedAt:         m.ReviewedAt,
		ReviewNote:         m.ReviewNote,
	}
}

func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{
		ExpenseType: e.ExpenseType,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		Description: e.Description,
		BillPath:    e.BillPath,
		Status:      e.Status,
		ReviewedBy:  e.ReviewedBy,
		ReviewedAt:  e.ReviewedAt,
		ReviewNote:  e.ReviewNote,
	}
	m.fromOwned(e.OwnedAggregateRoot)
	return m
}
