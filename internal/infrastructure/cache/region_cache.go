package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultRegionTTL = 30 * time.Minute

// Generation identifies the cache contents between two invalidations.
// Children reports the generation it looked in; SetChildren stores a list
// only if no invalidation happened since, so a list read from the database
// before a write can never be cached after it.
type Generation int64

// NoGeneration tells SetChildren not to store anything
const NoGeneration Generation = -1

// RegionCache holds the cascading dropdown lists: the regions of one level
// under one parent. Countries are keyed by uuid.Nil. Invalidate drops
// every list at once.
type RegionCache interface {
	Children(ctx context.Context, level geography.Level, parentID uuid.UUID) ([]*geography.Region, Generation, bool)
	SetChildren(ctx context.Context, gen Generation, level geography.Level, parentID uuid.UUID, regions []*geography.Region)
	Invalidate(ctx context.Context) error
}

// cachedRegion is the stored form; domain events are never cached
type cachedRegion struct {
	ID        uuid.UUID  `json:"id"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Name      string     `json:"name"`
	Code      string     `json:"code,omitempty"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func toCached(regions []*geography.Region) []cachedRegion {
	out := make([]cachedRegion, len(regions))
	for i, r := range regions {
		out[i] = cachedRegion{
			ID: r.ID, ParentID: r.ParentID, Name: r.Name, Code: r.Code,
			Version: r.Version, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
		}
	}
	return out
}

func fromCached(level geography.Level, rows []cachedRegion) []*geography.Region {
	out := make([]*geography.Region, len(rows))
	for i, c := range rows {
		out[i] = &geography.Region{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{ID: c.ID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt},
				Version:    c.Version,
			},
			Level:    level,
			ParentID: c.ParentID,
			Name:     c.Name,
			Code:     c.Code,
		}
	}
	return out
}

// RedisRegionCache stores lists under a generation number. Invalidate
// bumps the generation so stale keys, including late fills for an old
// generation, are never read again and expire on their own.
type RedisRegionCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
	prefix string
}

func NewRedisRegionCache(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *RedisRegionCache {
	if ttl <= 0 {
		ttl = defaultRegionTTL
	}
	return &RedisRegionCache{client: client, ttl: ttl, logger: logger, prefix: "eyedist:geo:"}
}

func (c *RedisRegionCache) generation(ctx context.Context) (Generation, error) {
	gen, err := c.client.Get(ctx, c.prefix+"gen").Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return NoGeneration, err
	}
	return Generation(gen), nil
}

func (c *RedisRegionCache) key(gen Generation, level geography.Level, parentID uuid.UUID) string {
	return fmt.Sprintf("%s%d:%s:%s", c.prefix, gen, level, parentID)
}

// Children returns the cached list. Redis errors count as a miss.
func (c *RedisRegionCache) Children(ctx context.Context, level geography.Level, parentID uuid.UUID) ([]*geography.Region, Generation, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		c.logger.Warn("Geography cache unavailable", zap.Error(err))
		return nil, NoGeneration, false
	}
	raw, err := c.client.Get(ctx, c.key(gen, level, parentID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Geography cache read failed", zap.Error(err))
		}
		return nil, gen, false
	}
	var rows []cachedRegion
	if err := json.Unmarshal(raw, &rows); err != nil {
		c.logger.Warn("Discarding corrupt geography cache entry", zap.Error(err))
		return nil, gen, false
	}
	return fromCached(level, rows), gen, true
}

// SetChildren writes under gen, the generation Children reported
func (c *RedisRegionCache) SetChildren(ctx context.Context, gen Generation, level geography.Level, parentID uuid.UUID, regions []*geography.Region) {
	if gen < 0 {
		return
	}
	raw, err := json.Marshal(toCached(regions))
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(gen, level, parentID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Geography cache write failed", zap.Error(err))
	}
}

func (c *RedisRegionCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.prefix+"gen").Err(); err != nil {
		return fmt.Errorf("failed to invalidate geography cache: %w", err)
	}
	return nil
}

var _ RegionCache = (*RedisRegionCache)(nil)
