package trade

import (
	"context"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRepository persists orders with their items. Reads are visibility scoped.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	// Update saves the header and replaces the items
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindAll supports filters status, party_id, distributor_id,
	// salesman_id, from_date, to_date
	FindAll(ctx context.Context, filter shared.Filter) ([]*Order, int64, error)
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)
	SumTotal(ctx context.Context, status OrderStatus) (decimal.Decimal, error)
}
