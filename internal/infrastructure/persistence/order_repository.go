package persistence

import (
	"context"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/domain/trade"
	"github.com/eyedist/backend/internal/infrastructure/persistence/datascope"
	"github.com/eyedist/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order with its items
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	return translateError(r.db.WithContext(ctx).Create(models.OrderModelFromDomain(order)).Error)
}

// Update saves the header and replaces the item set in one transaction
func (r *GormOrderRepository) Update(ctx context.Context, order *trade.Order) error {
	m := models.OrderModelFromDomain(order)
	m.Version = order.Version + 1
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateVersioned(ctx, tx, m, order.ID, order.Version); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		if len(m.Items) == 0 {
			return nil
		}
		return translateError(tx.Create(&m.Items).Error)
	})
	if err != nil {
		return err
	}
	order.IncrementVersion()
	return nil
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteByID(tx.Scopes(datascope.For(ctx, "orders")), &models.OrderModel{}, id); err != nil {
			return err
		}
		return tx.Where("order_id = ?", id).Delete(&models.OrderItemModel{}).Error
	})
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var m models.OrderModel
	err := r.db.WithContext(ctx).Scopes(datascope.For(ctx, "orders")).
		Preload("Items").
		First(&m, "orders.id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll supported filters: status, party_id, distributor_id, salesman_id,
// from_date, to_date.
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.Order, int64, error) {
	filter = filter.Normalize()
	q := r.db.WithContext(ctx).Model(&models.OrderModel{}).Scopes(datascope.For(ctx, "orders"))
	q = search(q, filter.Search, "orders.order_number", "orders.notes")
	q = whereString(q, filter.Filters, "status", "orders.status")
	q = whereUUID(q, filter.Filters, "party_id", "orders.party_id")
	q = whereUUID(q, filter.Filters, "distributor_id", "orders.distributor_id")
	q = whereUUID(q, filter.Filters, "salesman_id", "orders.salesman_id")
	q = whereDateRange(q, filter.Filters, "orders.order_date")

	var rows []models.OrderModel
	total, err := findPage(q, func(db *gorm.DB) *gorm.DB {
		return page(db, "orders", filter, orderSortFields, "order_date").Preload("Items")
	}, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*trade.Order, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

func (r *GormOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	return exists(ctx, r.db, &models.OrderModel{}, "order_number = ?", orderNumber)
}

// CountByStatus groups the visible orders by status
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[trade.OrderStatus]int64, error) {
	var rows []struct {
		Status trade.OrderStatus
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Scopes(datascope.For(ctx, "orders")).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[trade.OrderStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

// SumTotal sums order totals with status among the visible orders
func (r *GormOrderRepository) SumTotal(ctx context.Context, status trade.OrderStatus) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Scopes(datascope.For(ctx, "orders")).
		Where("status = ?", status).
		Select("SUM(total)").
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}
