package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/eyedist/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RateLimiter is an in-memory fixed-window limiter keyed by client
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
}

type client struct {
	tokens    int
	lastReset time.Time
}

// NewRateLimiter allows limit requests per window per key. Expired keys
// are swept until ctx is done.
func NewRateLimiter(ctx context.Context, limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
	}
	go rl.cleanup(ctx)
	return rl
}

func (rl *RateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for key, c := range rl.clients {
				if now.Sub(c.lastReset) > rl.window*2 {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Allow consumes one request for key and returns whether it is allowed
// and how many remain in the window
func (rl *RateLimiter) Allow(key string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.clients[key]
	if !ok || now.Sub(c.lastReset) >= rl.window {
		rl.clients[key] = &client{tokens: rl.limit - 1, lastReset: now}
		return true, rl.limit - 1
	}
	if c.tokens > 0 {
		c.tokens--
		return true, c.tokens
	}
	return false, 0
}

// RateLimit limits requests per client IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string { return c.ClientIP() })
}

// RateLimitByKey limits requests per key returned by keyFunc
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, remaining := limiter.Allow(keyFunc(c))
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !ok {
			abortWithError(c, http.StatusTooManyRequests, dto.ErrCodeRateLimited, "Too many requests. Please try again later.")
			return
		}
		c.Next()
	}
}
