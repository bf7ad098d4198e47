package trade

import (
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeOrder = "Order"

	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// OrderPlacedEvent is published when an order is created
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
}

func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID, o.UserID),
		OrderNumber:     o.OrderNumber,
		Total:           o.Total,
		ItemCount:       len(o.Items),
	}
}

// OrderStatusChangedEvent is published on every lifecycle transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string      `json:"order_number"`
	From        OrderStatus `json:"from"`
	To          OrderStatus `json:"to"`
}

func NewOrderStatusChangedEvent(o *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID, o.UserID),
		OrderNumber:     o.OrderNumber,
		From:            from,
		To:              o.Status,
	}
}
