package telemetry

import (
	"context"

	"github.com/eyedist/backend/internal/domain/finance"
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/domain/trade"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics counts orders, expenses and new partners. It subscribes
// to the event bus, so services never call it directly.
type BusinessMetrics struct {
	ordersPlaced      *Counter
	orderAmount       *FloatCounter
	orderTransitions  *Counter
	expensesSubmitted *Counter
	expenseAmount     *FloatCounter
	expensesReviewed  *Counter
	partnersCreated   *Counter
}

func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	var (
		m   BusinessMetrics
		err error
	)
	if m.ordersPlaced, err = NewCounter(meter, "orders_placed_total", "Orders placed", "{order}"); err != nil {
		return nil, err
	}
	if m.orderAmount, err = NewFloatCounter(meter, "orders_amount_total", "Sum of placed order totals", "{currency}"); err != nil {
		return nil, err
	}
	if m.orderTransitions, err = NewCounter(meter, "order_status_transitions_total", "Order status changes by target status", "{transition}"); err != nil {
		return nil, err
	}
	if m.expensesSubmitted, err = NewCounter(meter, "expenses_submitted_total", "Expense claims filed", "{expense}"); err != nil {
		return nil, err
	}
	if m.expenseAmount, err = NewFloatCounter(meter, "expenses_amount_total", "Sum of claimed expense amounts", "{currency}"); err != nil {
		return nil, err
	}
	if m.expensesReviewed, err = NewCounter(meter, "expenses_reviewed_total", "Expense claims approved or rejected", "{expense}"); err != nil {
		return nil, err
	}
	if m.partnersCreated, err = NewCounter(meter, "partners_created_total", "Parties, distributors and salesmen created", "{partner}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// Handle implements shared.EventHandler
func (m *BusinessMetrics) Handle(ctx context.Context, ev shared.DomainEvent) error {
	switch e := ev.(type) {
	case *trade.OrderPlacedEvent:
		m.ordersPlaced.Inc(ctx)
		m.orderAmount.Add(ctx, e.Total.InexactFloat64())
	case *trade.OrderStatusChangedEvent:
		m.orderTransitions.Inc(ctx, AttrOrderStatus.String(string(e.To)))
	case *finance.ExpenseSubmittedEvent:
		m.expensesSubmitted.Inc(ctx, AttrExpenseType.String(string(e.ExpenseType)))
		m.expenseAmount.Add(ctx, e.Amount.InexactFloat64(), AttrExpenseType.String(string(e.ExpenseType)))
	case *finance.ExpenseReviewedEvent:
		m.expensesReviewed.Inc(ctx, AttrExpenseStatus.String(e.Status.String()))
	case *partner.PartyCreatedEvent:
		m.partnersCreated.Inc(ctx, AttrPartnerKind.String("party"))
	case *partner.DistributorCreatedEvent:
		m.partnersCreated.Inc(ctx, AttrPartnerKind.String("distributor"))
	case *partner.SalesmanCreatedEvent:
		m.partnersCreated.Inc(ctx, AttrPartnerKind.String("salesman"))
	}
	return nil
}

func (m *BusinessMetrics) EventTypes() []string {
	return []string{
		trade.EventTypeOrderPlaced,
		trade.EventTypeOrderStatusChanged,
		finance.EventTypeExpenseSubmitted,
		finance.EventTypeExpenseReviewed,
		partner.EventTypePartyCreated,
		partner.EventTypeDistributorCreated,
		partner.EventTypeSalesmanCreated,
	}
}

var _ shared.EventHandler = (*BusinessMetrics)(nil)
