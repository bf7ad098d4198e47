// Package middleware holds the gin middleware chain of the API server.
package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/eyedist/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequestIDKey is both the header and the gin context key of the request id
const RequestIDKey = "X-Request-ID"

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig returns the default CORS configuration. No origin is
// allowed until one is configured.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-ID", "Idempotency-Key", "Accept", "Origin", "Cache-Control"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORS returns a CORS middleware for cfg
func CORS(cfg CORSConfig) gin.HandlerFunc {
	allowWildcard := slices.Contains(cfg.AllowOrigins, "*")

	allowed := func(origin string) string {
		if allowWildcard {
			return "*"
		}
		if origin != "" && slices.Contains(cfg.AllowOrigins, origin) {
			return origin
		}
		return ""
	}

	return func(c *gin.Context) {
		origin := allowed(c.Request.Header.Get("Origin"))
		if origin != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			if cfg.AllowCredentials && origin != "*" {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			setCORSHeaders(c, cfg)
		}

		// preflight always ends here, with or without CORS headers
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func setCORSHeaders(c *gin.Context, cfg CORSConfig) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
	h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
	if len(cfg.ExposeHeaders) > 0 {
		h.Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
	}
	if cfg.MaxAge > 0 {
		h.Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
	}
}

// RequestID assigns every request an id, taken from the X-Request-ID
// header when the client sent a sane one. The id is echoed in the
// response and attached to the request logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDKey)
		if requestID == "" || len(requestID) > MaxRequestIDLength {
			requestID = generateRequestID()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDKey, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// GetRequestID returns the id RequestID stored
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDKey)
}

func generateRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b)
}

// SecurityConfig holds configuration for security headers
type SecurityConfig struct {
	HSTSEnabled           bool
	HSTSMaxAge            int // seconds
	HSTSIncludeSubdomains bool

	CSPDirective               string
	PermissionsPolicyDirective string
}

// DefaultSecurityConfig returns the default header set. HSTS needs HTTPS
// and stays off until enabled.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSMaxAge:                 31536000,
		HSTSIncludeSubdomains:      true,
		CSPDirective:               "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' data:; connect-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",
		PermissionsPolicyDirective: "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
	}
}

// Secure adds security headers to responses
func Secure(cfg SecurityConfig) gin.HandlerFunc {
	var hsts string
	if cfg.HSTSEnabled {
		hsts = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if cfg.CSPDirective != "" {
			h.Set("Content-Security-Policy", cfg.CSPDirective)
		}
		if hsts != "" {
			h.Set("Strict-Transport-Security", hsts)
		}
		if cfg.PermissionsPolicyDirective != "" {
			h.Set("Permissions-Policy", cfg.PermissionsPolicyDirective)
		}
		c.Next()
	}
}

// abortWithError writes the standard error envelope and stops the chain
func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
