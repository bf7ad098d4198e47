package handler

import (
	"github.com/eyedist/backend/internal/application/dashboard"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the home screen summary
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboard.Service
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary godoc
// @Summary      Dashboard summary
// @Description  Counts and totals over the rows the caller can see
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=dashboard.Summary}
// @Security     BearerAuth
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
