package persistence

import (
	"context"

	"github.com/eyedist/backend/internal/domain/finance"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/persistence/datascope"
	"github.com/eyedist/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository
type GormExpenseRepository struct {
	db *gorm.DB
}

func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

func (r *GormExpenseRepository) Create(ctx context.Context, e *finance.Expense) error {
	return translateError(r.db.WithContext(ctx).Create(models.ExpenseModelFromDomain(e)).Error)
}

func (r *GormExpenseRepository) Update(ctx context.Context, e *finance.Expense) error {
	m := models.ExpenseModelFromDomain(e)
	m.Version = e.Version + 1
	if err := updateVersioned(ctx, r.db, m, e.ID, e.Version); err != nil {
		return err
	}
	e.IncrementVersion()
	return nil
}

func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx).Scopes(datascope.For(ctx, "expenses")), &models.ExpenseModel{}, id)
}

func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var m models.ExpenseModel
	err := r.db.WithContext(ctx).Scopes(datascope.For(ctx, "expenses")).
		First(&m, "expenses.id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll supported filters: status, expense_type, user_id, from_date, to_date.
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.Expense, int64, error) {
	filter = filter.Normalize()
	q := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Scopes(datascope.For(ctx, "expenses"))
	q = search(q, filter.Search, "expenses.description")
	if status, ok := filter.Filters["status"].(finance.ExpenseStatus); ok {
		q = q.Where("expenses.status = ?", status)
	}
	q = whereString(q, filter.Filters, "expense_type", "expenses.expense_type")
	q = whereUUID(q, filter.Filters, "user_id", "expenses.user_id")
	q = whereDateRange(q, filter.Filters, "expenses.expense_date")

	var rows []models.ExpenseModel
	total, err := findPage(q, func(db *gorm.DB) *gorm.DB {
		return page(db, "expenses", filter, expenseSortFields, "expense_date")
	}, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*finance.Expense, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

// SumByStatus returns the amount total and row count for status among the
// visible expenses.
func (r *GormExpenseRepository) SumByStatus(ctx context.Context, status finance.ExpenseStatus) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.NullDecimal
		N     int64
	}
	err := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Scopes(datascope.For(ctx, "expenses")).
		Where("status = ?", status).
		Select("SUM(amount) AS total, COUNT(*) AS n").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	if !row.Total.Valid {
		return decimal.Zero, row.N, nil
	}
	return row.Total.Decimal, row.N, nil
}
