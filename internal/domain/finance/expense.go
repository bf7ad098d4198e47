package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseType is the fixed set of claimable expense categories
type ExpenseType string

const (
	ExpenseTypeTravel        ExpenseType = "travel"
	ExpenseTypeFood          ExpenseType = "food"
	ExpenseTypeAccommodation ExpenseType = "accommodation"
	ExpenseTypeFuel          ExpenseType = "fuel"
	ExpenseTypeCommunication ExpenseType = "communication"
	ExpenseTypeMiscellaneous ExpenseType = "miscellaneous"
)

// ExpenseTypes lists every valid type
var ExpenseTypes = []ExpenseType{
	ExpenseTypeTravel, ExpenseTypeFood, ExpenseTypeAccommodation,
	ExpenseTypeFuel, ExpenseTypeCommunication, ExpenseTypeMiscellaneous,
}

// ParseExpenseType validates a type name case-insensitively
func ParseExpenseType(s string) (ExpenseType, error) {
	t := ExpenseType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", shared.NewDomainError("INVALID_EXPENSE_TYPE",
			"Expense type must be one of travel, food, accommodation, fuel, communication, miscellaneous")
	}
	return t, nil
}

func (t ExpenseType) IsValid() bool {
	for _, v := range ExpenseTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ExpenseStatus is stored as a small integer: 0 pending, 1 approved, 2 rejected
type ExpenseStatus int

const (
	ExpenseStatusPending  ExpenseStatus = 0
	ExpenseStatusApproved ExpenseStatus = 1
	ExpenseStatusRejected ExpenseStatus = 2
)

// ParseExpenseStatus rejects anything outside {0,1,2}
func ParseExpenseStatus(v int) (ExpenseStatus, error) {
	s := ExpenseStatus(v)
	if !s.IsValid() {
		return 0, shared.NewDomainError("INVALID_EXPENSE_STATUS", fmt.Sprintf("Expense status must be 0, 1 or 2, got %d", v))
	}
	return s, nil
}

func (s ExpenseStatus) IsValid() bool {
	return s == ExpenseStatusPending || s == ExpenseStatusApproved || s == ExpenseStatusRejected
}

func (s ExpenseStatus) String() string {
	switch s {
	case ExpenseStatusPending:
		return "pending"
	case ExpenseStatusApproved:
		return "approved"
	case ExpenseStatusRejected:
		return "rejected"
	}
	return "unknown"
}

// Expense is a reimbursement claim filed by a user
type Expense struct {
	shared.OwnedAggregateRoot
	ExpenseType ExpenseType
	Amount      decimal.Decimal
	ExpenseDate time.Time
	Description string
	BillPath    string
	Status      ExpenseStatus
	ReviewedBy  *uuid.UUID
	ReviewedAt  *time.Time
	ReviewNote  string
}

// NewExpense creates a pending expense
func NewExpense(userID uuid.UUID, expenseType ExpenseType, amount decimal.Decimal, expenseDate time.Time, description string) (*Expense, error) {
	e := &Expense{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Status:             ExpenseStatusPending,
	}
	if err := e.apply(expenseType, amount, expenseDate, description); err != nil {
		return nil, err
	}
	e.AddDomainEvent(NewExpenseSubmittedEvent(e))
	return e, nil
}

// Edit changes the claim while it is still pending
func (e *Expense) Edit(expenseType ExpenseType, amount decimal.Decimal, expenseDate time.Time, description string) error {
	if e.Status != ExpenseStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending expenses can be edited")
	}
	return e.apply(expenseType, amount, expenseDate, description)
}

func (e *Expense) apply(expenseType ExpenseType, amount decimal.Decimal, expenseDate time.Time, description string) error {
	if !expenseType.IsValid() {
		return shared.NewDomainError("INVALID_EXPENSE_TYPE", "Invalid expense type")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if expenseDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Expense date is required")
	}
	if expenseDate.After(time.Now().Add(24 * time.Hour)) {
		return shared.NewDomainError("INVALID_DATE", "Expense date cannot be in the future")
	}
	description, err := shared.OptionalText("INVALID_DESCRIPTION", "Description", description, 1000)
	if err != nil {
		return err
	}
	e.ExpenseType = expenseType
	e.Amount = amount.Round(2)
	e.ExpenseDate = expenseDate
	e.Description = description
	e.Touch()
	return nil
}

// AttachBill records the uploaded bill and returns the previous path
func (e *Expense) AttachBill(path string) (string, error) {
	if e.Status != ExpenseStatusPending {
		return "", shared.NewDomainError("INVALID_STATE", "Bills can only be attached to pending expenses")
	}
	old := e.BillPath
	e.BillPath = path
	e.Touch()
	return old, nil
}

// Review moves a pending expense to approved or rejected
func (e *Expense) Review(reviewerID uuid.UUID, status ExpenseStatus, note string) error {
	if status != ExpenseStatusApproved && status != ExpenseStatusRejected {
		return shared.NewDomainError("INVALID_EXPENSE_STATUS", "Review must approve or reject")
	}
	if e.Status != ExpenseStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Expense is already %s", e.Status))
	}
	note, err := shared.OptionalText("INVALID_NOTE", "Review note", note, 500)
	if err != nil {
		return err
	}
	if status == ExpenseStatusRejected && note == "" {
		return shared.NewDomainError("INVALID_NOTE", "A rejection needs a note")
	}
	now := time.Now()
	e.Status = status
	e.ReviewedBy = &reviewerID
	e.ReviewedAt = &now
	e.ReviewNote = note
	e.UpdatedAt = now
	e.AddDomainEvent(NewExpenseReviewedEvent(e))
	return nil
}

// CanDelete reports whether the claim may be removed
func (e *Expense) CanDelete() bool {
	return e.Status == ExpenseStatusPending
}
