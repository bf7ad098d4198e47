package models

import (
	"time"

	"github.com/eyedist/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for trade.Order
type OrderModel struct {
	OwnedModel
	OrderNumber    string            `gorm:"type:varchar(30);not null;uniqueIndex"`
	PartyID        *uuid.UUID        `gorm:"type:char(36);index"`
	DistributorID  *uuid.UUID        `gorm:"type:char(36);index"`
	SalesmanID     *uuid.UUID        `gorm:"type:char(36);index"`
	OrderDate      time.Time         `gorm:"type:date;not null;index"`
	Status         trade.OrderStatus `gorm:"type:varchar(20);not null;index"`
	Subtotal       decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0"`
	DiscountAmount decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0"`
	Total          decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0"`
	Notes          string            `gorm:"type:text"`
	ConfirmedAt    *time.Time
	DispatchedAt   *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string           `gorm:"type:varchar(500)"`
	Items          []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel is one order line
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:char(36);not null;index"`
	ProductID   uuid.UUID       `gorm:"type:char(36);not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ModelNumber string          `gorm:"type:varchar(50);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

func (OrderItemModel) TableName() string { return "order_items" }

func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		OwnedAggregateRoot: m.toOwned(),
		OrderNumber:        m.OrderNumber,
		PartyID:            m.PartyID,
		DistributorID:      m.DistributorID,
		SalesmanID:         m.SalesmanID,
		OrderDate:          m.OrderDate,
		Status:             m.Status,
		Items:              make([]trade.OrderItem, len(m.Items)),
		Subtotal:           m.Subtotal,
		DiscountAmount:     m.DiscountAmount,
		Total:              m.Total,
		Notes:              m.Notes,
		ConfirmedAt:        m.ConfirmedAt,
		DispatchedAt:       m.DispatchedAt,
		DeliveredAt:        m.DeliveredAt,
		CancelledAt:        m.CancelledAt,
		CancelReason:       m.CancelReason,
	}
	for i, it := range m.Items {
		o.Items[i] = trade.OrderItem{
			ID:          it.ID,
			OrderID:     it.OrderID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ModelNumber: it.ModelNumber,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		}
	}
	return o
}

func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{
		OrderNumber:    o.OrderNumber,
		PartyID:        o.PartyID,
		DistributorID:  o.DistributorID,
		SalesmanID:     o.SalesmanID,
		OrderDate:      o.OrderDate,
		Status:         o.Status,
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		Total:          o.Total,
		Notes:          o.Notes,
		ConfirmedAt:    o.ConfirmedAt,
		DispatchedAt:   o.DispatchedAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
		CancelReason:   o.CancelReason,
		Items:          make([]OrderItemModel, len(o.Items)),
	}
	m.fromOwned(o.OwnedAggregateRoot)
	for i, it := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:          it.ID,
			OrderID:     o.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ModelNumber: it.ModelNumber,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		}
	}
	return m
}
