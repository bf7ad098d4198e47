package handler

import (
	"fmt"
	"net/http"

	tradeapp "github.com/eyedist/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create godoc
// @Summary      Place order
// @Description  At least one of party_id and distributor_id is required. Item prices default to the product list price.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateOrderRequest true "Order"
// @Success      201 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetByID(c.Request.Context(), actor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        page           query int    false "Page"
// @Param        page_size      query int    false "Page size"
// @Param        search         query string false "Order number"
// @Param        status         query string false "Status" Enums(pending,confirmed,dispatched,delivered,cancelled)
// @Param        party_id       query string false "Party" format(uuid)
// @Param        distributor_id query string false "Distributor" format(uuid)
// @Param        salesman_id    query string false "Salesman" format(uuid)
// @Param        from_date      query string false "From (YYYY-MM-DD)"
// @Param        to_date        query string false "To (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]tradeapp.OrderResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter tradeapp.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	orders, total, err := h.orderService.List(c.Request.Context(), actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.ListQuery)
}

// Update godoc
// @Summary      Update order
// @Description  Only pending orders can be edited. Sending items replaces every line.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path string true "Order ID" format(uuid)
// @Param        request body tradeapp.UpdateOrderRequest true "Changes"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req tradeapp.UpdateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.Update(c.Request.Context(), actor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus godoc
// @Summary      Change order status
// @Description  pending → confirmed → dispatched → delivered; pending or confirmed → cancelled. Owners may only cancel.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path string true "Order ID" format(uuid)
// @Param        request body tradeapp.UpdateOrderStatusRequest true "Status"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req tradeapp.UpdateOrderStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.UpdateStatus(c.Request.Context(), actor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete order
// @Description  Only pending or cancelled orders can be deleted
// @Tags         orders
// @Param        id path string true "Order ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), actor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Invoice godoc
// @Summary      Download invoice
// @Description  Renders the order as a PDF invoice
// @Tags         orders
// @Produce      application/pdf
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/invoice [get]
func (h *OrderHandler) Invoice(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	doc, err := h.orderService.Invoice(c.Request.Context(), actor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.PDF)
}
