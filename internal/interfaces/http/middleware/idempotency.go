package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/eyedist/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the client-chosen key of a write request
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// RequestKeys claims idempotency keys; see cache.RequestKeyStore
type RequestKeys interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Idempotency refuses a replayed write carrying an Idempotency-Key the same
// caller already used on the same route within ttl. Requests without the
// header pass through. A key is released again when the request fails or
// panics, so the client may retry with it.
func Idempotency(keys RequestKeys, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(IdempotencyKeyHeader)
		if raw == "" {
			c.Next()
			return
		}
		if len(raw) > maxIdempotencyKeyLen {
			abortWithError(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Idempotency-Key is too long")
			return
		}

		key := GetJWTUserID(c).String() + ":" + c.Request.Method + ":" + c.FullPath() + ":" + raw
		ctx := c.Request.Context()
		claimed, err := keys.Claim(ctx, key, ttl)
		if err != nil {
			// the store is an optimisation; serve the request without it
			logger.L(ctx).Warn("Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			abortWithError(c, http.StatusConflict, dto.ErrCodeDuplicateRequest, "A request with this Idempotency-Key was already processed")
			return
		}

		release := func() {
			if err := keys.Release(context.WithoutCancel(ctx), key); err != nil {
				logger.L(ctx).Warn("Failed to release idempotency key", zap.Error(err))
			}
		}
		defer func() {
			if r := recover(); r != nil {
				release()
				panic(r)
			}
		}()

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			release()
		}
	}
}
