package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength caps client supplied request ids
const MaxRequestIDLength = 128

// Tracing wraps otelgin. Spans are named after the route pattern.
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}
	return otelgin.Middleware(serviceName)
}

// SpanAttributes tags the current span with the request id and the caller.
// It runs after JWTAuth and marks 4xx/5xx responses as errors.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		if id := GetRequestID(c); id != "" {
			span.SetAttributes(attribute.String("request_id", id))
		}
		if role := GetJWTRole(c); role != "" {
			span.SetAttributes(
				attribute.String("user_id", GetJWTUserID(c).String()),
				attribute.String("user_role", role.String()),
			)
		}

		c.Next()

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(status))
			span.SetAttributes(attribute.Int("http.status_code", status))
		}
	}
}
