package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/domain/trade"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// maxOrderNumberAttempts bounds the retries on an order number collision
const maxOrderNumberAttempts = 5

// OrderService handles order operations
type OrderService struct {
	orders       trade.OrderRepository
	products     catalog.ProductRepository
	parties      partner.PartyRepository
	distributors partner.DistributorRepository
	salesmen     partner.SalesmanRepository
	invoices     InvoiceRenderer
	publisher    shared.EventPublisher
	now          func() time.Time
}

// NewOrderService creates a new OrderService. invoices may be nil when PDF
// printing is disabled.
func NewOrderService(
	orders trade.OrderRepository,
	products catalog.ProductRepository,
	parties partner.PartyRepository,
	distributors partner.DistributorRepository,
	salesmen partner.SalesmanRepository,
	invoices InvoiceRenderer,
) *OrderService {
	return &OrderService{
		orders:       orders,
		products:     products,
		parties:      parties,
		distributors: distributors,
		salesmen:     salesmen,
		invoices:     invoices,
		now:          time.Now,
	}
}

func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create places a pending order. Item names and model numbers are copied
// from the current catalogue.
func (s *OrderService) Create(ctx context.Context, actor application.Actor, req CreateOrderRequest) (*OrderResponse, error) {
	owner, err := actor.OwnerFor(req.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCounterparties(ctx, req.PartyID, req.DistributorID, req.SalesmanID); err != nil {
		return nil, err
	}
	number, err := s.nextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	var orderDate time.Time
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}
	order, err := trade.NewOrder(owner, number, req.PartyID, req.DistributorID, req.SalesmanID, orderDate)
	if err != nil {
		return nil, err
	}
	items, err := s.buildItems(ctx, actor, order.ID, req.Items)
	if err != nil {
		return nil, err
	}
	if err := order.ReplaceItems(items); err != nil {
		return nil, err
	}
	if req.Discount != nil {
		if err := order.ApplyDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}
	if err := order.SetNotes(req.Notes); err != nil {
		return nil, err
	}
	if err := order.Place(); err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.Total.String()))
	application.PublishEvents(ctx, s.publisher, order)

	resp := ToOrderResponse(order)
	return &resp, nil
}

func (s *OrderService) GetByID(ctx context.Context, actor application.Actor, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List retrieves the orders visible to the actor, newest first by default
func (s *OrderService) List(ctx context.Context, actor application.Actor, filter OrderListFilter) ([]OrderResponse, int64, error) {
	f := filter.Filter()
	if f.OrderBy == "" {
		f.OrderBy = "order_date"
	}
	if err := filter.DateRangeQuery.ApplyTo(f.Filters); err != nil {
		return nil, 0, err
	}
	if filter.Status != "" {
		f.Filters["status"] = trade.OrderStatus(filter.Status)
	}
	application.SetUUIDFilter(f.Filters, "party_id", filter.PartyID)
	application.SetUUIDFilter(f.Filters, "distributor_id", filter.DistributorID)
	application.SetUUIDFilter(f.Filters, "salesman_id", filter.SalesmanID)

	orders, total, err := s.orders.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return lo.Map(orders, func(o *trade.Order, _ int) OrderResponse { return ToOrderResponse(o) }), total, nil
}

// Update edits a pending order
func (s *OrderService) Update(ctx context.Context, actor application.Actor, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !order.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only pending orders can be edited")
	}

	if req.PartyID.Set || req.DistributorID.Set || req.SalesmanID.Set {
		partyID := req.PartyID.Apply(order.PartyID)
		distributorID := req.DistributorID.Apply(order.DistributorID)
		salesmanID := req.SalesmanID.Apply(order.SalesmanID)
		if err := s.checkCounterparties(ctx, partyID, distributorID, salesmanID); err != nil {
			return nil, err
		}
		if err := order.SetCounterparties(partyID, distributorID, salesmanID); err != nil {
			return nil, err
		}
	}
	if req.OrderDate != nil && !req.OrderDate.IsZero() {
		order.OrderDate = *req.OrderDate
	}
	if req.Items != nil {
		items, err := s.buildItems(ctx, actor, order.ID, req.Items)
		if err != nil {
			return nil, err
		}
		if err := order.ReplaceItems(items); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		if err := order.ApplyDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		if err := order.SetNotes(*req.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// UpdateStatus moves the order along its lifecycle. Owners may cancel
// their own orders; every other transition needs admin or manager.
func (s *OrderService) UpdateStatus(ctx context.Context, actor application.Actor, id uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	target := trade.OrderStatus(req.Status)
	if target != trade.OrderStatusCancelled && !actor.SeesAll() {
		return nil, shared.NewDomainError("FORBIDDEN", fmt.Sprintf("Only admins and managers can mark an order %s", target))
	}
	order, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := order.TransitionTo(target, req.Reason); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	application.PublishEvents(ctx, s.publisher, order)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Delete removes a pending or cancelled order
func (s *OrderService) Delete(ctx context.Context, actor application.Actor, id uuid.UUID) error {
	order, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if !order.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot delete an order in %s status", order.Status))
	}
	return s.orders.Delete(ctx, id)
}

// buildItems prices each line from the catalogue. Unknown products are an
// invalid reference and inactive ones cannot be ordered. Only actors who see
// every record may set their own unit price; anyone else gets the list price.
func (s *OrderService) buildItems(ctx context.Context, actor application.Actor, orderID uuid.UUID, inputs []OrderItemInput) ([]trade.OrderItem, error) {
	ids := lo.Uniq(lo.Map(inputs, func(in OrderItemInput, _ int) uuid.UUID { return in.ProductID }))
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(products, func(p *catalog.Product) uuid.UUID { return p.ID })

	items := make([]trade.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		product, ok := byID[in.ProductID]
		if !ok {
			return nil, shared.NewDomainError("INVALID_REFERENCE", fmt.Sprintf("Product %s does not exist", in.ProductID))
		}
		if !product.Active {
			return nil, shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Product %s is not available", product.ModelNumber))
		}
		price := product.Price
		if in.UnitPrice != nil && actor.SeesAll() {
			price = *in.UnitPrice
		}
		item, err := trade.NewOrderItem(orderID, product.ID, product.Name, product.ModelNumber, in.Quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// checkCounterparties rejects ids that do not exist. Orders keep strict
// references since a null party would leave nobody to bill.
func (s *OrderService) checkCounterparties(ctx context.Context, partyID, distributorID, salesmanID *uuid.UUID) error {
	checks := []struct {
		field  string
		id     *uuid.UUID
		exists func(context.Context, uuid.UUID) (bool, error)
	}{
		{"party_id", partyID, s.parties.Exists},
		{"distributor_id", distributorID, s.distributors.Exists},
		{"salesman_id", salesmanID, s.salesmen.Exists},
	}
	for _, c := range checks {
		if c.id == nil || *c.id == uuid.Nil {
			continue
		}
		ok, err := c.exists(ctx, *c.id)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewDomainError("INVALID_REFERENCE", c.field+" does not reference an existing record")
		}
	}
	return nil
}

func (s *OrderService) nextOrderNumber(ctx context.Context) (string, error) {
	for range maxOrderNumberAttempts {
		number := trade.GenerateOrderNumber(s.now())
		taken, err := s.orders.ExistsByOrderNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
	}
	return "", shared.NewDomainError("ORDER_NUMBER_EXHAUSTED", "Could not allocate a unique order number")
}

func (s *OrderService) load(ctx context.Context, actor application.Actor, id uuid.UUID) (*trade.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(order.UserID) {
		return nil, shared.ErrNotFound
	}
	return order, nil
}
