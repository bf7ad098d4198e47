package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every status in lifecycle order
var OrderStatuses = []OrderStatus{
	OrderStatusPending, OrderStatusConfirmed, OrderStatusDispatched, OrderStatusDelivered, OrderStatusCancelled,
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDispatched, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can move to target
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusDispatched || target == OrderStatusCancelled
	case OrderStatusDispatched:
		return target == OrderStatusDelivered
	}
	return false
}

// OrderItem is one product line on an order
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	ModelNumber string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// NewOrderItem snapshots the product name and model number at order time
func NewOrderItem(orderID, productID uuid.UUID, productName, modelNumber string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	unitPrice = unitPrice.Round(2)
	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		ModelNumber: modelNumber,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Order is a purchase placed for a party and/or distributor
type Order struct {
	shared.OwnedAggregateRoot
	OrderNumber    string
	PartyID        *uuid.UUID
	DistributorID  *uuid.UUID
	SalesmanID     *uuid.UUID
	OrderDate      time.Time
	Status         OrderStatus
	Items          []OrderItem
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	Notes          string
	ConfirmedAt    *time.Time
	DispatchedAt   *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string
}

// NewOrder creates a pending order. At least one of partyID and
// distributorID must be set.
func NewOrder(userID uuid.UUID, orderNumber string, partyID, distributorID, salesmanID *uuid.UUID, orderDate time.Time) (*Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	o := &Order{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		OrderNumber:        orderNumber,
		OrderDate:          orderDate,
		Status:             OrderStatusPending,
		Items:              make([]OrderItem, 0),
		Subtotal:           decimal.Zero,
		DiscountAmount:     decimal.Zero,
		Total:              decimal.Zero,
	}
	if err := o.SetCounterparties(partyID, distributorID, salesmanID); err != nil {
		return nil, err
	}
	return o, nil
}

// SetCounterparties sets who the order is for and who took it
func (o *Order) SetCounterparties(partyID, distributorID, salesmanID *uuid.UUID) error {
	if !o.CanModify() {
		return o.stateError("change counterparties of")
	}
	partyID, distributorID, salesmanID = clean(partyID), clean(distributorID), clean(salesmanID)
	if partyID == nil && distributorID == nil {
		return shared.NewDomainError("MISSING_COUNTERPARTY", "An order needs a party or a distributor")
	}
	o.PartyID, o.DistributorID, o.SalesmanID = partyID, distributorID, salesmanID
	o.Touch()
	return nil
}

// ReplaceItems swaps the whole item list, merging repeated products
func (o *Order) ReplaceItems(items []OrderItem) error {
	if !o.CanModify() {
		return o.stateError("edit items of")
	}
	if len(items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "An order needs at least one item")
	}
	merged := make([]OrderItem, 0, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		item.OrderID = o.ID
		if i, ok := index[item.ProductID]; ok && merged[i].UnitPrice.Equal(item.UnitPrice) {
			merged[i].Quantity += item.Quantity
			merged[i].LineTotal = merged[i].UnitPrice.Mul(decimal.NewFromInt(int64(merged[i].Quantity)))
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	o.Items = merged
	o.recalculateTotals()
	o.Touch()
	return nil
}

// ApplyDiscount sets a flat discount that cannot exceed the subtotal
func (o *Order) ApplyDiscount(amount decimal.Decimal) error {
	if !o.CanModify() {
		return o.stateError("discount")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	amount = amount.Round(2)
	if amount.GreaterThan(o.Subtotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the order subtotal")
	}
	o.DiscountAmount = amount
	o.recalculateTotals()
	o.Touch()
	return nil
}

func (o *Order) SetNotes(notes string) error {
	notes, err := shared.OptionalText("INVALID_NOTES", "Notes", notes, 1000)
	if err != nil {
		return err
	}
	o.Notes = notes
	o.Touch()
	return nil
}

// Place records the OrderPlaced event once items are in
func (o *Order) Place() error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "An order needs at least one item")
	}
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return nil
}

// TransitionTo moves the order along its lifecycle
func (o *Order) TransitionTo(target OrderStatus, reason string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}
	now := time.Now()
	switch target {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &now
	case OrderStatusDispatched:
		o.DispatchedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
		}
		o.CancelledAt = &now
		o.CancelReason = reason
	}
	from := o.Status
	o.Status = target
	o.UpdatedAt = now
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
	return nil
}

// CanModify reports whether items and counterparties may still change
func (o *Order) CanModify() bool {
	return o.Status == OrderStatusPending
}

// CanDelete reports whether the order may be removed
func (o *Order) CanDelete() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusCancelled
}

// TotalQuantity sums item quantities
func (o *Order) TotalQuantity() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

func (o *Order) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	o.Subtotal = subtotal
	if o.DiscountAmount.GreaterThan(subtotal) {
		o.DiscountAmount = subtotal
	}
	o.Total = subtotal.Sub(o.DiscountAmount)
}

func (o *Order) stateError(action string) error {
	return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot %s an order in %s status", action, o.Status))
}

func clean(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	v := *id
	return &v
}

// GenerateOrderNumber returns ORD-YYYYMMDD-XXXXXX using the first six
// hex characters of a fresh UUID
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
