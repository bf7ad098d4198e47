package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	t.Run("generates an id", func(t *testing.T) {
		r := gin.New()
		var fromCtx string
		r.Use(RequestID())
		r.GET("/", func(c *gin.Context) {
			fromCtx = logger.RequestID(c.Request.Context())
			c.Status(http.StatusOK)
		})

		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		id := w.Header().Get(RequestIDKey)
		assert.Len(t, id, 32)
		assert.Equal(t, id, fromCtx)
	})

	t.Run("keeps the client id", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestID())
		r.GET("/", okHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDKey, "client-abc")
		assert.Equal(t, "client-abc", serve(r, req).Header().Get(RequestIDKey))
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestID())
		r.GET("/", okHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDKey, strings.Repeat("x", MaxRequestIDLength+1))
		assert.Len(t, serve(r, req).Header().Get(RequestIDKey), 32)
	})
}

func TestCORS(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://app.example.com"}

	r := gin.New()
	r.Use(CORS(cfg))
	r.GET("/", okHandler)

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := serve(r, req)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("other origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := serve(r, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})
}

func TestSecure(t *testing.T) {
	cfg := DefaultSecurityConfig()
	cfg.HSTSEnabled = true

	r := gin.New()
	r.Use(Secure(cfg))
	r.GET("/", okHandler)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(100))
	r.POST("/", okHandler)

	small := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("small body")))
	assert.Equal(t, http.StatusOK, serve(r, small).Code)

	big := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(strings.Repeat("x", 200))))
	w := serve(r, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOO_LARGE")
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := NewRateLimiter(ctx, 2, time.Minute)
	r := gin.New()
	r.Use(RateLimit(limiter))
	r.GET("/", okHandler)

	req := func() *httptest.ResponseRecorder {
		rq := httptest.NewRequest(http.MethodGet, "/", nil)
		rq.RemoteAddr = "10.1.1.1:5000"
		return serve(r, rq)
	}

	first := req()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, req().Code)

	blocked := req()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Contains(t, blocked.Body.String(), "ERR_RATE_LIMITED")

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.2.2.2:5000"
	assert.Equal(t, http.StatusOK, serve(r, other).Code)
}

func TestSwaggerProtection(t *testing.T) {
	build := func(cfg SwaggerConfig, jwt gin.HandlerFunc) *gin.Engine {
		r := gin.New()
		r.GET("/swagger/index.html", SwaggerProtection(cfg, jwt), okHandler)
		return r
	}
	req := func(ip string) *http.Request {
		rq := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		rq.RemoteAddr = ip + ":1234"
		return rq
	}

	assert.Equal(t, http.StatusNotFound, serve(build(SwaggerConfig{}, nil), req("10.0.0.1")).Code)

	restricted := build(SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16", "10.0.0.5"}}, nil)
	assert.Equal(t, http.StatusOK, serve(restricted, req("192.168.4.20")).Code)
	assert.Equal(t, http.StatusOK, serve(restricted, req("10.0.0.5")).Code)
	assert.Equal(t, http.StatusForbidden, serve(restricted, req("10.0.0.6")).Code)

	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	authed := build(SwaggerConfig{Enabled: true, RequireAuth: true}, deny)
	assert.Equal(t, http.StatusUnauthorized, serve(authed, req("10.0.0.1")).Code)
}

func TestHTTPMetricsStatusGroup(t *testing.T) {
	assert.Equal(t, "2xx", HTTPMetricsStatusGroup(201))
	assert.Equal(t, "4xx", HTTPMetricsStatusGroup(404))
	assert.Equal(t, "5xx", HTTPMetricsStatusGroup(503))
	assert.Equal(t, "other", HTTPMetricsStatusGroup(101))
}
