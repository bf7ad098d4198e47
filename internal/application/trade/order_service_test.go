package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/domain/trade"
	"github.com/eyedist/backend/internal/infrastructure/printing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	orders       *MockOrderRepository
	products     *MockProductRepository
	parties      *MockPartyRepository
	distributors *MockDistributorRepository
	salesmen     *MockSalesmanRepository
	invoices     *MockInvoiceRenderer
	svc          *OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:       new(MockOrderRepository),
		products:     new(MockProductRepository),
		parties:      new(MockPartyRepository),
		distributors: new(MockDistributorRepository),
		salesmen:     new(MockSalesmanRepository),
		invoices:     new(MockInvoiceRenderer),
	}
	f.svc = NewOrderService(f.orders, f.products, f.parties, f.distributors, f.salesmen, f.invoices)
	f.svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }
	return f
}

func newProduct(t *testing.T, model string, price int64) *catalog.Product {
	p, err := catalog.NewProduct(model, "Frame "+model, decimal.NewFromInt(price))
	require.NoError(t, err)
	return p
}

func salesmanActor() application.Actor {
	return application.NewActor(uuid.New(), identity.RoleSalesman)
}

func pendingOrder(t *testing.T, owner uuid.UUID) *trade.Order {
	partyID := uuid.New()
	o, err := trade.NewOrder(owner, "ORD-20260314-ABCDEF", &partyID, nil, nil, time.Now())
	require.NoError(t, err)
	item, err := trade.NewOrderItem(o.ID, uuid.New(), "Frame", "F1", 2, decimal.NewFromInt(500))
	require.NoError(t, err)
	require.NoError(t, o.ReplaceItems([]trade.OrderItem{*item}))
	return o
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots products and totals", func(t *testing.T) {
		f := newOrderFixture()
		actor := salesmanActor()
		partyID := uuid.New()
		a := newProduct(t, "A1", 1200)
		b := newProduct(t, "B2", 800)

		f.parties.On("Exists", ctx, partyID).Return(true, nil)
		f.orders.On("ExistsByOrderNumber", ctx, mock.AnythingOfType("string")).Return(false, nil)
		f.products.On("FindByIDs", ctx, []uuid.UUID{a.ID, b.ID}).Return([]*catalog.Product{b, a}, nil)
		f.orders.On("Create", ctx, mock.AnythingOfType("*trade.Order")).Return(nil)

		publisher := &recordingPublisher{}
		f.svc.SetEventPublisher(publisher)
		discount := decimal.NewFromInt(200)
		resp, err := f.svc.Create(ctx, actor, CreateOrderRequest{
			PartyID: &partyID,
			Items: []OrderItemInput{
				{ProductID: a.ID, Quantity: 2},
				{ProductID: b.ID, Quantity: 1},
				{ProductID: a.ID, Quantity: 1},
			},
			Discount: &discount,
			Notes:    "deliver before diwali",
		})

		require.NoError(t, err)
		assert.Regexp(t, `^ORD-20260314-[0-9A-F]{6}$`, resp.OrderNumber)
		assert.Equal(t, actor.UserID, resp.UserID)
		assert.Equal(t, "pending", resp.Status)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "A1", resp.Items[0].ModelNumber)
		assert.Equal(t, 3, resp.Items[0].Quantity)
		assert.Equal(t, "4400", resp.Subtotal.String())
		assert.Equal(t, "4200", resp.Total.String())
		require.Len(t, publisher.events, 1)
		assert.Equal(t, trade.EventTypeOrderPlaced, publisher.events[0].EventType())
	})

	t.Run("unknown party", func(t *testing.T) {
		f := newOrderFixture()
		partyID := uuid.New()
		f.parties.On("Exists", ctx, partyID).Return(false, nil)

		_, err := f.svc.Create(ctx, salesmanActor(), CreateOrderRequest{
			PartyID: &partyID,
			Items:   []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidReference)
		f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newOrderFixture()
		distributorID := uuid.New()
		missing := uuid.New()
		f.distributors.On("Exists", ctx, distributorID).Return(true, nil)
		f.orders.On("ExistsByOrderNumber", ctx, mock.Anything).Return(false, nil)
		f.products.On("FindByIDs", ctx, []uuid.UUID{missing}).Return([]*catalog.Product{}, nil)

		_, err := f.svc.Create(ctx, salesmanActor(), CreateOrderRequest{
			DistributorID: &distributorID,
			Items:         []OrderItemInput{{ProductID: missing, Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidReference)
	})

	t.Run("inactive product", func(t *testing.T) {
		f := newOrderFixture()
		partyID := uuid.New()
		p := newProduct(t, "OLD", 100)
		p.SetActive(false)
		f.parties.On("Exists", ctx, partyID).Return(true, nil)
		f.orders.On("ExistsByOrderNumber", ctx, mock.Anything).Return(false, nil)
		f.products.On("FindByIDs", ctx, []uuid.UUID{p.ID}).Return([]*catalog.Product{p}, nil)

		_, err := f.svc.Create(ctx, salesmanActor(), CreateOrderRequest{
			PartyID: &partyID,
			Items:   []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
		})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_PRODUCT", de.Code)
	})

	t.Run("needs a counterparty", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("ExistsByOrderNumber", ctx, mock.Anything).Return(false, nil)

		_, err := f.svc.Create(ctx, salesmanActor(), CreateOrderRequest{
			Items: []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "MISSING_COUNTERPARTY", de.Code)
	})

	t.Run("retries an order number collision", func(t *testing.T) {
		f := newOrderFixture()
		partyID := uuid.New()
		p := newProduct(t, "A1", 100)
		f.parties.On("Exists", ctx, partyID).Return(true, nil)
		f.orders.On("ExistsByOrderNumber", ctx, mock.Anything).Return(true, nil).Once()
		f.orders.On("ExistsByOrderNumber", ctx, mock.Anything).Return(false, nil).Once()
		f.products.On("FindByIDs", ctx, []uuid.UUID{p.ID}).Return([]*catalog.Product{p}, nil)
		f.orders.On("Create", ctx, mock.Anything).Return(nil)

		_, err := f.svc.Create(ctx, salesmanActor(), CreateOrderRequest{
			PartyID: &partyID,
			Items:   []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		f.orders.AssertNumberOfCalls(t, "ExistsByOrderNumber", 2)
	})
}

func TestOrderService_Create_UnitPriceOverride(t *testing.T) {
	ctx := context.Background()
	special := decimal.NewFromInt(1)

	tests := []struct {
		name      string
		actor     application.Actor
		wantPrice string
	}{
		{"salesman gets the list price", salesmanActor(), "1200"},
		{"admin may set the price", application.NewActor(uuid.New(), identity.RoleAdmin), "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			partyID := uuid.New()
			p := newProduct(t, "A1", 1200)
			f.parties.On("Exists", ctx, partyID).Return(true, nil)
			f.orders.On("ExistsByOrderNumber", ctx, mock.Anything).Return(false, nil)
			f.products.On("FindByIDs", ctx, []uuid.UUID{p.ID}).Return([]*catalog.Product{p}, nil)
			f.orders.On("Create", ctx, mock.Anything).Return(nil)

			resp, err := f.svc.Create(ctx, tt.actor, CreateOrderRequest{
				PartyID: &partyID,
				Items:   []OrderItemInput{{ProductID: p.ID, Quantity: 2, UnitPrice: &special}},
			})
			require.NoError(t, err)
			require.Len(t, resp.Items, 1)
			assert.Equal(t, tt.wantPrice, resp.Items[0].UnitPrice.String())
		})
	}
}

func TestOrderService_Visibility(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	owner := salesmanActor()
	other := salesmanActor()
	manager := application.NewActor(uuid.New(), identity.RoleManager)
	order := pendingOrder(t, owner.UserID)
	f.orders.On("FindByID", ctx, order.ID).Return(order, nil)

	_, err := f.svc.GetByID(ctx, other, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	resp, err := f.svc.GetByID(ctx, manager, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, resp.OrderNumber)

	err = f.svc.Delete(ctx, other, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cannot confirm", func(t *testing.T) {
		f := newOrderFixture()
		owner := salesmanActor()
		_, err := f.svc.UpdateStatus(ctx, owner, uuid.New(), UpdateOrderStatusRequest{Status: "confirmed"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("owner cancels with a reason", func(t *testing.T) {
		f := newOrderFixture()
		owner := salesmanActor()
		order := pendingOrder(t, owner.UserID)
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
		f.orders.On("Update", ctx, order).Return(nil)

		resp, err := f.svc.UpdateStatus(ctx, owner, order.ID, UpdateOrderStatusRequest{Status: "cancelled", Reason: "duplicate"})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, "duplicate", resp.CancelReason)
		assert.NotNil(t, resp.CancelledAt)
	})

	t.Run("manager cannot skip a step", func(t *testing.T) {
		f := newOrderFixture()
		manager := application.NewActor(uuid.New(), identity.RoleManager)
		order := pendingOrder(t, uuid.New())
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := f.svc.UpdateStatus(ctx, manager, order.ID, UpdateOrderStatusRequest{Status: "delivered"})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestOrderService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces items and keeps the discount within the subtotal", func(t *testing.T) {
		f := newOrderFixture()
		owner := salesmanActor()
		order := pendingOrder(t, owner.UserID)
		require.NoError(t, order.ApplyDiscount(decimal.NewFromInt(900)))
		p := newProduct(t, "C3", 300)
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
		f.products.On("FindByIDs", ctx, []uuid.UUID{p.ID}).Return([]*catalog.Product{p}, nil)
		f.orders.On("Update", ctx, order).Return(nil)

		resp, err := f.svc.Update(ctx, owner, order.ID, UpdateOrderRequest{
			Items: []OrderItemInput{{ProductID: p.ID, Quantity: 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, "600", resp.Subtotal.String())
		assert.Equal(t, "600", resp.DiscountAmount.String())
		assert.True(t, resp.Total.IsZero())
	})

	t.Run("confirmed orders are frozen", func(t *testing.T) {
		f := newOrderFixture()
		owner := salesmanActor()
		order := pendingOrder(t, owner.UserID)
		require.NoError(t, order.TransitionTo(trade.OrderStatusConfirmed, ""))
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)

		notes := "late change"
		_, err := f.svc.Update(ctx, owner, order.ID, UpdateOrderRequest{Notes: &notes})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("clearing the only counterparty fails", func(t *testing.T) {
		f := newOrderFixture()
		owner := salesmanActor()
		order := pendingOrder(t, owner.UserID)
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)

		req := UpdateOrderRequest{}
		req.PartyID.Set = true
		_, err := f.svc.Update(ctx, owner, order.ID, req)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "MISSING_COUNTERPARTY", de.Code)
	})
}

func TestOrderService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	manager := application.NewActor(uuid.New(), identity.RoleAdmin)
	order := pendingOrder(t, uuid.New())
	require.NoError(t, order.TransitionTo(trade.OrderStatusConfirmed, ""))
	f.orders.On("FindByID", ctx, order.ID).Return(order, nil)

	err := f.svc.Delete(ctx, manager, order.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	partyID := uuid.New()

	f.orders.On("FindAll", ctx, mock.MatchedBy(func(filter shared.Filter) bool {
		from, _ := filter.Filters["from_date"].(time.Time)
		return filter.OrderBy == "order_date" &&
			filter.Filters["status"] == trade.OrderStatusPending &&
			filter.Filters["party_id"] == partyID &&
			from.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	})).Return([]*trade.Order{}, int64(0), nil)

	_, _, err := f.svc.List(ctx, salesmanActor(), OrderListFilter{
		DateRangeQuery: application.DateRangeQuery{FromDate: "2026-01-01"},
		Status:         "pending",
		PartyID:        partyID.String(),
	})
	require.NoError(t, err)
	f.orders.AssertExpectations(t)

	_, _, err = f.svc.List(ctx, salesmanActor(), OrderListFilter{
		DateRangeQuery: application.DateRangeQuery{FromDate: "2026-02-01", ToDate: "2026-01-01"},
	})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_DATE_RANGE", de.Code)
}

func TestOrderService_Invoice(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled printer", func(t *testing.T) {
		f := newOrderFixture()
		svc := NewOrderService(f.orders, f.products, f.parties, f.distributors, f.salesmen, nil)
		_, err := svc.Invoice(ctx, salesmanActor(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrServiceUnavailable)
	})

	t.Run("renders billing blocks", func(t *testing.T) {
		f := newOrderFixture()
		owner := salesmanActor()
		order := pendingOrder(t, owner.UserID)
		party, err := partner.NewParty(owner.UserID, "Vision Opticals", partner.PartyTypeRetail)
		require.NoError(t, err)
		party.ID = *order.PartyID

		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
		f.parties.On("FindByID", ctx, party.ID).Return(party, nil)
		f.invoices.On("Print", ctx, mock.MatchedBy(func(inv *printing.Invoice) bool {
			return inv.Party != nil && inv.Party.Name == "Vision Opticals" &&
				len(inv.Items) == 1 && inv.Total.Equal(decimal.NewFromInt(1000))
		})).Return([]byte("%PDF-1.7"), nil)

		doc, err := f.svc.Invoice(ctx, owner, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "invoice-ord-20260314-abcdef.pdf", doc.Filename)
		assert.Equal(t, []byte("%PDF-1.7"), doc.PDF)
	})

	t.Run("party hidden from caller is left off", func(t *testing.T) {
		f := newOrderFixture()
		owner := salesmanActor()
		order := pendingOrder(t, owner.UserID)
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
		f.parties.On("FindByID", ctx, *order.PartyID).Return(nil, shared.ErrNotFound)
		f.invoices.On("Print", ctx, mock.MatchedBy(func(inv *printing.Invoice) bool { return inv.Party == nil })).
			Return([]byte("pdf"), nil)

		_, err := f.svc.Invoice(ctx, owner, order.ID)
		require.NoError(t, err)
	})

	t.Run("renderer failure surfaces", func(t *testing.T) {
		f := newOrderFixture()
		owner := salesmanActor()
		order := pendingOrder(t, owner.UserID)
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
		f.parties.On("FindByID", ctx, *order.PartyID).Return(nil, shared.ErrNotFound)
		f.invoices.On("Print", ctx, mock.Anything).Return(nil, errors.New("chrome crashed"))

		_, err := f.svc.Invoice(ctx, owner, order.ID)
		assert.EqualError(t, err, "chrome crashed")
	})
}
