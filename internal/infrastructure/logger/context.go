package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves the logger from context, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithRequestID stores the request ID for later correlation
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithUserID stores the authenticated user ID for later correlation
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// RequestID returns the request ID stored in ctx, if any
func RequestID(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}

// UserID returns the user ID stored in ctx, if any
func UserID(ctx context.Context) string {
	s, _ := ctx.Value(userIDKey).(string)
	return s
}

// L returns the context logger enriched with trace_id, span_id,
// request_id and user_id when they are present.
//
//	logger.L(ctx).Info("order placed", zap.String("order_number", n))
func L(ctx context.Context) *zap.Logger {
	l := FromContext(ctx)

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		l = l.With(
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	if id := RequestID(ctx); id != "" {
		l = l.With(zap.String("request_id", id))
	}
	if id := UserID(ctx); id != "" {
		l = l.With(zap.String("user_id", id))
	}
	return l
}
