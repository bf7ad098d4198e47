package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: connection refused") }

	t.Run("all checks up", func(t *testing.T) {
		h := NewHealthHandler("1.2.3", map[string]HealthCheck{"database": up, "redis": up})
		engine := gin.New()
		engine.GET("/health", h.Health)

		w := doJSON(t, engine, http.MethodGet, "/health", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var got HealthResponse
		decodeData(t, w, &got)
		assert.Equal(t, "ok", got.Status)
		assert.Equal(t, "1.2.3", got.Version)
		assert.Equal(t, map[string]string{"database": "up", "redis": "up"}, got.Checks)
	})

	t.Run("failing check degrades", func(t *testing.T) {
		h := NewHealthHandler("1.2.3", map[string]HealthCheck{"database": up, "redis": down})
		engine := gin.New()
		engine.GET("/health", h.Health)

		w := doJSON(t, engine, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		var got HealthResponse
		decodeData(t, w, &got)
		assert.Equal(t, "degraded", got.Status)
		assert.Contains(t, got.Checks["redis"], "connection refused")
	})

	t.Run("no checks", func(t *testing.T) {
		h := NewHealthHandler("dev", nil)
		engine := gin.New()
		engine.GET("/health", h.Health)

		w := doJSON(t, engine, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
