package cache

import (
	"context"
	"sync"
	"time"

	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/google/uuid"
)

type regionKey struct {
	level  geography.Level
	parent uuid.UUID
}

type regionEntry struct {
	rows      []cachedRegion
	expiresAt time.Time
}

// InMemoryRegionCache is the single-instance RegionCache used when Redis
// is disabled.
type InMemoryRegionCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	gen     Generation
	entries map[regionKey]regionEntry
	now     func() time.Time
}

func NewInMemoryRegionCache(ttl time.Duration) *InMemoryRegionCache {
	if ttl <= 0 {
		ttl = defaultRegionTTL
	}
	return &InMemoryRegionCache{
		ttl:     ttl,
		entries: make(map[regionKey]regionEntry),
		now:     time.Now,
	}
}

func (c *InMemoryRegionCache) Children(_ context.Context, level geography.Level, parentID uuid.UUID) ([]*geography.Region, Generation, bool) {
	c.mu.RLock()
	e, ok := c.entries[regionKey{level, parentID}]
	gen := c.gen
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return nil, gen, false
	}
	return fromCached(level, e.rows), gen, true
}

// SetChildren drops the list when an invalidation happened after gen was read
func (c *InMemoryRegionCache) SetChildren(_ context.Context, gen Generation, level geography.Level, parentID uuid.UUID, regions []*geography.Region) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.entries[regionKey{level, parentID}] = regionEntry{rows: toCached(regions), expiresAt: c.now().Add(c.ttl)}
}

func (c *InMemoryRegionCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	clear(c.entries)
	return nil
}

var _ RegionCache = (*InMemoryRegionCache)(nil)
