package finance

import (
	"context"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseRepository persists expenses. Reads are visibility scoped.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	// FindAll supports filters status, expense_type, user_id, from_date, to_date
	FindAll(ctx context.Context, filter shared.Filter) ([]*Expense, int64, error)
	SumByStatus(ctx context.Context, status ExpenseStatus) (decimal.Decimal, int64, error)
}
