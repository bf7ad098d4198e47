package finance

import (
	"context"
	"io"
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/finance"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/eyedist/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// BillStore keeps uploaded bill scans
type BillStore interface {
	Save(ctx context.Context, folder string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, key string) error
	URL(ctx context.Context, key string) string
}

// ExpenseService handles expense claims and their review
type ExpenseService struct {
	expenses  finance.ExpenseRepository
	bills     BillStore
	publisher shared.EventPublisher
}

func NewExpenseService(expenses finance.ExpenseRepository, bills BillStore) *ExpenseService {
	return &ExpenseService{expenses: expenses, bills: bills}
}

func (s *ExpenseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Types returns the selectable expense types
func (s *ExpenseService) Types() ExpenseTypeResponse {
	return ExpenseTypeResponse{
		Types: lo.Map(finance.ExpenseTypes, func(t finance.ExpenseType, _ int) string { return string(t) }),
	}
}

// Create files a pending expense
func (s *ExpenseService) Create(ctx context.Context, actor application.Actor, req CreateExpenseRequest) (*ExpenseResponse, error) {
	owner, err := actor.OwnerFor(req.OwnerID)
	if err != nil {
		return nil, err
	}
	expenseType, err := finance.ParseExpenseType(req.ExpenseType)
	if err != nil {
		return nil, err
	}
	date, err := parseExpenseDate(req.ExpenseDate)
	if err != nil {
		return nil, err
	}
	expense, err := finance.NewExpense(owner, expenseType, req.Amount, date, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	application.PublishEvents(ctx, s.publisher, expense)
	return s.response(ctx, expense), nil
}

func (s *ExpenseService) GetByID(ctx context.Context, actor application.Actor, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.response(ctx, expense), nil
}

func (s *ExpenseService) List(ctx context.Context, actor application.Actor, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	f := filter.Filter()
	if f.OrderBy == "" {
		f.OrderBy = "expense_date"
	}
	if err := filter.DateRangeQuery.ApplyTo(f.Filters); err != nil {
		return nil, 0, err
	}
	if filter.Status != nil {
		status, err := finance.ParseExpenseStatus(*filter.Status)
		if err != nil {
			return nil, 0, err
		}
		f.Filters["status"] = status
	}
	if filter.ExpenseType != "" {
		t, err := finance.ParseExpenseType(filter.ExpenseType)
		if err != nil {
			return nil, 0, err
		}
		f.Filters["expense_type"] = t
	}
	application.SetUUIDFilter(f.Filters, "user_id", filter.UserID)

	expenses, total, err := s.expenses.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return lo.Map(expenses, func(e *finance.Expense, _ int) ExpenseResponse { return *s.response(ctx, e) }), total, nil
}

// Update edits a pending claim. A status in the request is a review and
// needs admin or manager.
func (s *ExpenseService) Update(ctx context.Context, actor application.Actor, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	var status *finance.ExpenseStatus
	if req.Status != nil {
		st, err := finance.ParseExpenseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		status = &st
	}

	expense, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.ExpenseType != nil || req.Amount != nil || req.ExpenseDate != nil || req.Description != nil {
		expenseType, amount, date, desc := expense.ExpenseType, expense.Amount, expense.ExpenseDate, expense.Description
		if req.ExpenseType != nil {
			if expenseType, err = finance.ParseExpenseType(*req.ExpenseType); err != nil {
				return nil, err
			}
		}
		if req.Amount != nil {
			amount = *req.Amount
		}
		if req.ExpenseDate != nil {
			if date, err = parseExpenseDate(*req.ExpenseDate); err != nil {
				return nil, err
			}
		}
		if req.Description != nil {
			desc = *req.Description
		}
		if err := expense.Edit(expenseType, amount, date, desc); err != nil {
			return nil, err
		}
	}
	if status != nil && *status != expense.Status {
		if !actor.SeesAll() {
			return nil, shared.NewDomainError("FORBIDDEN", "Only admins and managers can review expenses")
		}
		if err := expense.Review(actor.UserID, *status, req.ReviewNote); err != nil {
			return nil, err
		}
	}

	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, err
	}
	application.PublishEvents(ctx, s.publisher, expense)
	return s.response(ctx, expense), nil
}

// Approve marks a pending claim approved
func (s *ExpenseService) Approve(ctx context.Context, actor application.Actor, id uuid.UUID, req ReviewExpenseRequest) (*ExpenseResponse, error) {
	return s.review(ctx, actor, id, finance.ExpenseStatusApproved, req.Note)
}

// Reject marks a pending claim rejected; the note is required
func (s *ExpenseService) Reject(ctx context.Context, actor application.Actor, id uuid.UUID, req ReviewExpenseRequest) (*ExpenseResponse, error) {
	return s.review(ctx, actor, id, finance.ExpenseStatusRejected, req.Note)
}

func (s *ExpenseService) review(ctx context.Context, actor application.Actor, id uuid.UUID, status finance.ExpenseStatus, note string) (*ExpenseResponse, error) {
	if !actor.SeesAll() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only admins and managers can review expenses")
	}
	expense, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := expense.Review(actor.UserID, status, note); err != nil {
		return nil, err
	}
	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Expense reviewed",
		zap.String("expense_id", expense.ID.String()),
		zap.String("status", status.String()))
	application.PublishEvents(ctx, s.publisher, expense)
	return s.response(ctx, expense), nil
}

// UploadBill stores the bill scan of a pending claim, replacing any earlier one
func (s *ExpenseService) UploadBill(ctx context.Context, actor application.Actor, id uuid.UUID, r io.Reader, size int64) (*ExpenseResponse, error) {
	if s.bills == nil {
		return nil, shared.ErrServiceUnavailable
	}
	expense, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !expense.CanDelete() {
		return nil, shared.NewDomainError("INVALID_STATE", "Bills can only be attached to pending expenses")
	}
	path, err := s.bills.Save(ctx, storage.FolderBills, r, size)
	if err != nil {
		return nil, err
	}
	old, err := expense.AttachBill(path)
	if err != nil {
		s.removeBill(ctx, path)
		return nil, err
	}
	if err := s.expenses.Update(ctx, expense); err != nil {
		s.removeBill(ctx, path)
		return nil, err
	}
	s.removeBill(ctx, old)
	return s.response(ctx, expense), nil
}

// Delete removes a pending claim and its bill
func (s *ExpenseService) Delete(ctx context.Context, actor application.Actor, id uuid.UUID) error {
	expense, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if !expense.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only pending expenses can be deleted")
	}
	if err := s.expenses.Delete(ctx, id); err != nil {
		return err
	}
	s.removeBill(ctx, expense.BillPath)
	return nil
}

func (s *ExpenseService) load(ctx context.Context, actor application.Actor, id uuid.UUID) (*finance.Expense, error) {
	expense, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(expense.UserID) {
		return nil, shared.ErrNotFound
	}
	return expense, nil
}

func (s *ExpenseService) removeBill(ctx context.Context, path string) {
	if s.bills == nil || path == "" {
		return
	}
	if err := s.bills.Remove(ctx, path); err != nil {
		logger.L(ctx).Warn("Failed to remove bill", zap.String("path", path), zap.Error(err))
	}
}

func (s *ExpenseService) response(ctx context.Context, e *finance.Expense) *ExpenseResponse {
	resp := ToExpenseResponse(e)
	if s.bills != nil {
		resp.BillURL = s.bills.URL(ctx, e.BillPath)
	}
	return &resp
}

func parseExpenseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "expense_date must be YYYY-MM-DD")
	}
	return t, nil
}
