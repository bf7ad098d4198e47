package logger

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinMiddleware attaches the logger to the request context and writes one
// access log line per request. It expects the request ID middleware to run first.
func GinMiddleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		ctx := WithContext(c.Request.Context(), base)
		if id := c.GetString("request_id"); id != "" {
			ctx = WithRequestID(ctx, id)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		// c.Request may have been replaced downstream (auth adds the user ID)
		l := L(c.Request.Context())
		switch {
		case status >= http.StatusInternalServerError:
			l.Error("HTTP Request", fields...)
		case status >= http.StatusBadRequest:
			l.Warn("HTTP Request", fields...)
		default:
			l.Info("HTTP Request", fields...)
		}
	}
}

// Recovery turns panics into 500 responses and logs the stack
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l := loggerOr(c.Request.Context(), base)
				l.Error("Panic recovered",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", rec),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   gin.H{"code": "INTERNAL_ERROR", "message": "internal server error"},
				})
			}
		}()
		c.Next()
	}
}

func loggerOr(ctx context.Context, base *zap.Logger) *zap.Logger {
	if _, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return L(ctx)
	}
	return L(WithContext(ctx, base))
}
