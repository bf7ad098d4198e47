package handler

import (
	"context"

	"github.com/eyedist/backend/internal/application"
	financeapp "github.com/eyedist/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExpenseHandler handles expense claims
type ExpenseHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Types godoc
// @Summary      List expense types
// @Tags         expenses
// @Produce      json
// @Success      200 {object} dto.Response{data=financeapp.ExpenseTypeResponse}
// @Security     BearerAuth
// @Router       /expenses/types [get]
func (h *ExpenseHandler) Types(c *gin.Context) {
	h.Success(c, h.expenseService.Types())
}

// Create godoc
// @Summary      File expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateExpenseRequest true "Expense"
// @Success      201 {object} dto.Response{data=financeapp.ExpenseResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req financeapp.CreateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	expense, err := h.expenseService.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// GetByID godoc
// @Summary      Get expense
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.ExpenseResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.GetByID(c.Request.Context(), actor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// List godoc
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Param        page         query int    false "Page"
// @Param        page_size    query int    false "Page size"
// @Param        status       query int    false "0 pending, 1 approved, 2 rejected"
// @Param        expense_type query string false "Expense type"
// @Param        user_id      query string false "Owner (admins and managers)" format(uuid)
// @Param        from_date    query string false "From (YYYY-MM-DD)"
// @Param        to_date      query string false "To (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]financeapp.ExpenseResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter financeapp.ExpenseListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	expenses, total, err := h.expenseService.List(c.Request.Context(), actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, expenses, total, filter.ListQuery)
}

// Update godoc
// @Summary      Update expense
// @Description  Owners edit pending claims only. status (0, 1 or 2) is reserved for admins and managers.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id      path string true "Expense ID" format(uuid)
// @Param        request body financeapp.UpdateExpenseRequest true "Changes"
// @Success      200 {object} dto.Response{data=financeapp.ExpenseResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req financeapp.UpdateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	expense, err := h.expenseService.Update(c.Request.Context(), actor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// Approve godoc
// @Summary      Approve expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id      path string true "Expense ID" format(uuid)
// @Param        request body financeapp.ReviewExpenseRequest false "Review note"
// @Success      200 {object} dto.Response{data=financeapp.ExpenseResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /expenses/{id}/approve [post]
func (h *ExpenseHandler) Approve(c *gin.Context) {
	h.review(c, h.expenseService.Approve)
}

// Reject godoc
// @Summary      Reject expense
// @Description  A note explaining the rejection is required
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id      path string true "Expense ID" format(uuid)
// @Param        request body financeapp.ReviewExpenseRequest true "Review note"
// @Success      200 {object} dto.Response{data=financeapp.ExpenseResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /expenses/{id}/reject [post]
func (h *ExpenseHandler) Reject(c *gin.Context) {
	h.review(c, h.expenseService.Reject)
}

type reviewFunc func(context.Context, application.Actor, uuid.UUID, financeapp.ReviewExpenseRequest) (*financeapp.ExpenseResponse, error)

func (h *ExpenseHandler) review(c *gin.Context, decide reviewFunc) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req financeapp.ReviewExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	expense, err := decide(c.Request.Context(), actor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// UploadBill godoc
// @Summary      Upload expense bill
// @Description  Attaches a receipt image or PDF to the claim
// @Tags         expenses
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path     string true "Expense ID" format(uuid)
// @Param        bill formData file   true "Bill"
// @Success      200 {object} dto.Response{data=financeapp.ExpenseResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /expenses/{id}/bill [post]
func (h *ExpenseHandler) UploadBill(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	file, size, ok := h.formFile(c, "bill")
	if !ok {
		return
	}
	defer file.Close()

	expense, err := h.expenseService.UploadBill(c.Request.Context(), actor(c), id, file, size)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// Delete godoc
// @Summary      Delete expense
// @Tags         expenses
// @Param        id path string true "Expense ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.expenseService.Delete(c.Request.Context(), actor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
