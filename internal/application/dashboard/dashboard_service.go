// Package dashboard aggregates headline numbers for the home screen.
package dashboard

import (
	"context"
	"fmt"

	"github.com/eyedist/backend/internal/domain/finance"
	"github.com/eyedist/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// Counter is satisfied by the party, distributor and salesman repositories
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// OrderStats is the part of the order repository the dashboard reads
type OrderStats interface {
	CountByStatus(ctx context.Context) (map[trade.OrderStatus]int64, error)
	SumTotal(ctx context.Context, status trade.OrderStatus) (decimal.Decimal, error)
}

// ExpenseStats is the part of the expense repository the dashboard reads
type ExpenseStats interface {
	SumByStatus(ctx context.Context, status finance.ExpenseStatus) (decimal.Decimal, int64, error)
}

// EventStats is the part of the event repository the dashboard reads
type EventStats interface {
	CountUpcoming(ctx context.Context) (int64, error)
}

// Summary is the dashboard payload. Every number is limited to the rows
// the caller may see.
type Summary struct {
	Parties               int64            `json:"parties"`
	Distributors          int64            `json:"distributors"`
	Salesmen              int64            `json:"salesmen"`
	UpcomingEvents        int64            `json:"upcoming_events"`
	Orders                int64            `json:"orders"`
	OrdersByStatus        map[string]int64 `json:"orders_by_status"`
	DeliveredValue        decimal.Decimal  `json:"delivered_value"`
	PendingExpenses       int64            `json:"pending_expenses"`
	PendingExpenseAmount  decimal.Decimal  `json:"pending_expense_amount"`
	ApprovedExpenseAmount decimal.Decimal  `json:"approved_expense_amount"`
}

// Service builds the dashboard summary. The repositories apply the
// visibility scope carried by ctx.
type Service struct {
	parties      Counter
	distributors Counter
	salesmen     Counter
	orders       OrderStats
	expenses     ExpenseStats
	events       EventStats
}

func NewService(parties, distributors, salesmen Counter, orders OrderStats, expenses ExpenseStats, events EventStats) *Service {
	return &Service{
		parties:      parties,
		distributors: distributors,
		salesmen:     salesmen,
		orders:       orders,
		expenses:     expenses,
		events:       events,
	}
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	out := &Summary{OrdersByStatus: make(map[string]int64, len(trade.OrderStatuses))}

	counts := []struct {
		name string
		src  Counter
		dst  *int64
	}{
		{"parties", s.parties, &out.Parties},
		{"distributors", s.distributors, &out.Distributors},
		{"salesmen", s.salesmen, &out.Salesmen},
	}
	for _, c := range counts {
		n, err := c.src.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		*c.dst = n
	}

	upcoming, err := s.events.CountUpcoming(ctx)
	if err != nil {
		return nil, fmt.Errorf("count upcoming events: %w", err)
	}
	out.UpcomingEvents = upcoming

	byStatus, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	// every status is reported, zero included
	for _, st := range trade.OrderStatuses {
		n := byStatus[st]
		out.OrdersByStatus[st.String()] = n
		out.Orders += n
	}
	if out.DeliveredValue, err = s.orders.SumTotal(ctx, trade.OrderStatusDelivered); err != nil {
		return nil, fmt.Errorf("sum delivered orders: %w", err)
	}

	if out.PendingExpenseAmount, out.PendingExpenses, err = s.expenses.SumByStatus(ctx, finance.ExpenseStatusPending); err != nil {
		return nil, fmt.Errorf("sum pending expenses: %w", err)
	}
	if out.ApprovedExpenseAmount, _, err = s.expenses.SumByStatus(ctx, finance.ExpenseStatusApproved); err != nil {
		return nil, fmt.Errorf("sum approved expenses: %w", err)
	}
	return out, nil
}
