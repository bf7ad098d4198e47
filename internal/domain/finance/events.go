package finance

import (
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeExpense = "Expense"

	EventTypeExpenseSubmitted = "ExpenseSubmitted"
	EventTypeExpenseReviewed  = "ExpenseReviewed"
)

// ExpenseSubmittedEvent is published when a claim is filed
type ExpenseSubmittedEvent struct {
	shared.BaseDomainEvent
	ExpenseType ExpenseType     `json:"expense_type"`
	Amount      decimal.Decimal `json:"amount"`
}

func NewExpenseSubmittedEvent(e *Expense) *ExpenseSubmittedEvent {
	return &ExpenseSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseSubmitted, AggregateTypeExpense, e.ID, e.UserID),
		ExpenseType:     e.ExpenseType,
		Amount:          e.Amount,
	}
}

// ExpenseReviewedEvent is published when a claim is approved or rejected
type ExpenseReviewedEvent struct {
	shared.BaseDomainEvent
	OwnerID string          `json:"owner_id"`
	Status  ExpenseStatus   `json:"status"`
	Amount  decimal.Decimal `json:"amount"`
}

func NewExpenseReviewedEvent(e *Expense) *ExpenseReviewedEvent {
	actor := e.UserID
	if e.ReviewedBy != nil {
		actor = *e.ReviewedBy
	}
	return &ExpenseReviewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseReviewed, AggregateTypeExpense, e.ID, actor),
		OwnerID:         e.UserID.String(),
		Status:          e.Status,
		Amount:          e.Amount,
	}
}
