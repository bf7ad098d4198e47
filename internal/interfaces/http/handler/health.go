package handler

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/eyedist/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// HealthCheck tests one dependency. It returns nil when the dependency is usable.
type HealthCheck func(ctx context.Context) error

// HealthResponse reports service and dependency status
type HealthResponse struct {
	Status    string            `json:"status" example:"ok"`
	Version   string            `json:"version" example:"1.0.0"`
	GoVersion string            `json:"go_version" example:"go1.25.5"`
	Uptime    string            `json:"uptime" example:"1h30m45s"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandler handles liveness and readiness checks
type HealthHandler struct {
	BaseHandler
	version   string
	startTime time.Time
	checks    map[string]HealthCheck
	timeout   time.Duration
}

// NewHealthHandler creates a HealthHandler with the given dependency checks
func NewHealthHandler(version string, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startTime: time.Now(),
		checks:    checks,
		timeout:   2 * time.Second,
	}
}

// Health godoc
// @Summary      Health check
// @Description  Reports "degraded" with status 503 when a dependency check fails
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      503 {object} dto.Response{data=HealthResponse}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "ok",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	if len(names) > 0 {
		resp.Checks = make(map[string]string, len(names))
	}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			resp.Checks[name] = "down: " + err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}

	c.JSON(status, dto.Response{Success: status == http.StatusOK, Data: resp})
}
