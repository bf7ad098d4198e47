package trade

import (
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one product line of a create or update request. The
// unit price defaults to the product's list price and is only honoured for
// admins and managers.
type OrderItemInput struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	PartyID       *uuid.UUID       `json:"party_id"`
	DistributorID *uuid.UUID       `json:"distributor_id"`
	SalesmanID    *uuid.UUID       `json:"salesman_id"`
	OrderDate     *time.Time       `json:"order_date"`
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	Discount      *decimal.Decimal `json:"discount"`
	Notes         string           `json:"notes" binding:"max=1000"`
	OwnerID       *uuid.UUID       `json:"user_id"`
}

// UpdateOrderRequest edits a pending order; nil fields are kept and a
// non-nil Items replaces the whole list
type UpdateOrderRequest struct {
	PartyID       application.OptionalID `json:"party_id" swaggertype:"string" format:"uuid"`
	DistributorID application.OptionalID `json:"distributor_id" swaggertype:"string" format:"uuid"`
	SalesmanID    application.OptionalID `json:"salesman_id" swaggertype:"string" format:"uuid"`
	OrderDate     *time.Time             `json:"order_date"`
	Items         []OrderItemInput       `json:"items" binding:"omitempty,min=1,dive"`
	Discount      *decimal.Decimal       `json:"discount"`
	Notes         *string                `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateOrderStatusRequest moves an order along its lifecycle
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed dispatched delivered cancelled"`
	Reason string `json:"reason" binding:"max=500"`
}

// OrderListFilter holds the query parameters of the order list
type OrderListFilter struct {
	application.ListQuery
	application.DateRangeQuery
	Status        string `form:"status" binding:"omitempty,oneof=pending confirmed dispatched delivered cancelled"`
	PartyID       string `form:"party_id" binding:"omitempty,uuid"`
	DistributorID string `form:"distributor_id" binding:"omitempty,uuid"`
	SalesmanID    string `form:"salesman_id" binding:"omitempty,uuid"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ModelNumber string          `json:"model_number"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	UserID         uuid.UUID           `json:"user_id"`
	OrderNumber    string              `json:"order_number"`
	PartyID        *uuid.UUID          `json:"party_id"`
	DistributorID  *uuid.UUID          `json:"distributor_id"`
	SalesmanID     *uuid.UUID          `json:"salesman_id"`
	OrderDate      time.Time           `json:"order_date"`
	Status         string              `json:"status"`
	Items          []OrderItemResponse `json:"items"`
	ItemCount      int                 `json:"item_count"`
	TotalQuantity  int                 `json:"total_quantity"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	Total          decimal.Decimal     `json:"total"`
	Notes          string              `json:"notes,omitempty"`
	ConfirmedAt    *time.Time          `json:"confirmed_at,omitempty"`
	DispatchedAt   *time.Time          `json:"dispatched_at,omitempty"`
	DeliveredAt    *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt    *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason   string              `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Version        int                 `json:"version"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ModelNumber: item.ModelNumber,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}
	return OrderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		OrderNumber:    o.OrderNumber,
		PartyID:        o.PartyID,
		DistributorID:  o.DistributorID,
		SalesmanID:     o.SalesmanID,
		OrderDate:      o.OrderDate,
		Status:         o.Status.String(),
		Items:          items,
		ItemCount:      len(o.Items),
		TotalQuantity:  o.TotalQuantity(),
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		Total:          o.Total,
		Notes:          o.Notes,
		ConfirmedAt:    o.ConfirmedAt,
		DispatchedAt:   o.DispatchedAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
		CancelReason:   o.CancelReason,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Version:        o.Version,
	}
}
