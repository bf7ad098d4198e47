package finance

import (
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest files a new expense claim
type CreateExpenseRequest struct {
	ExpenseType string          `json:"expense_type" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date" binding:"required,datetime=2006-01-02"`
	Description string          `json:"description" binding:"max=1000"`
	OwnerID     *uuid.UUID      `json:"user_id"`
}

// UpdateExpenseRequest edits a claim. Status is reserved for reviewers and
// must be 0, 1 or 2.
type UpdateExpenseRequest struct {
	ExpenseType *string          `json:"expense_type"`
	Amount      *decimal.Decimal `json:"amount"`
	ExpenseDate *string          `json:"expense_date" binding:"omitempty,datetime=2006-01-02"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	Status      *int             `json:"status"`
	ReviewNote  string           `json:"review_note" binding:"max=500"`
}

// ReviewExpenseRequest approves or rejects a pending claim
type ReviewExpenseRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// ExpenseListFilter holds the query parameters of the expense list
type ExpenseListFilter struct {
	application.ListQuery
	application.DateRangeQuery
	Status      *int   `form:"status"`
	ExpenseType string `form:"expense_type"`
	UserID      string `form:"user_id" binding:"omitempty,uuid"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	ExpenseType string          `json:"expense_type"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"`
	Description string          `json:"description,omitempty"`
	BillPath    string          `json:"bill_path,omitempty"`
	BillURL     string          `json:"bill_url,omitempty"`
	Status      int             `json:"status"`
	StatusName  string          `json:"status_name"`
	ReviewedBy  *uuid.UUID      `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time      `json:"reviewed_at,omitempty"`
	ReviewNote  string          `json:"review_note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ExpenseTypeResponse lists the selectable expense types
type ExpenseTypeResponse struct {
	Types []string `json:"types"`
}

func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		ExpenseType: string(e.ExpenseType),
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate.Format(time.DateOnly),
		Description: e.Description,
		BillPath:    e.BillPath,
		Status:      int(e.Status),
		StatusName:  e.Status.String(),
		ReviewedBy:  e.ReviewedBy,
		ReviewedAt:  e.ReviewedAt,
		ReviewNote:  e.ReviewNote,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Version:     e.Version,
	}
}
