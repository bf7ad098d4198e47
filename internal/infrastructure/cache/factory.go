package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/eyedist/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis and pings it
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// NewRegionCache returns a Redis-backed cache when client is non-nil and
// an in-memory one otherwise.
func NewRegionCache(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) RegionCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		logger.Info("Using in-memory geography cache")
		return NewInMemoryRegionCache(ttl)
	}
	return NewRedisRegionCache(client, ttl, logger)
}
