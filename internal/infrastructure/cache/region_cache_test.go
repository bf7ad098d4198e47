package cache

import (
	"context"
	"testing"
	"time"

	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRegionCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryRegionCache(time.Minute)
	country := uuid.New()

	_, gen, ok := c.Children(ctx, geography.LevelState, country)
	assert.False(t, ok)

	state, err := geography.NewRegion(geography.LevelState, &country, "gujarat", "GJ")
	require.NoError(t, err)
	c.SetChildren(ctx, gen, geography.LevelState, country, []*geography.Region{state})

	got, _, ok := c.Children(ctx, geography.LevelState, country)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, state.ID, got[0].ID)
	assert.Equal(t, geography.LevelState, got[0].Level)
	assert.Equal(t, "Gujarat", got[0].Name)
	assert.Empty(t, got[0].GetDomainEvents())

	_, _, ok = c.Children(ctx, geography.LevelCity, country)
	assert.False(t, ok, "keys include the level")

	require.NoError(t, c.Invalidate(ctx))
	_, _, ok = c.Children(ctx, geography.LevelState, country)
	assert.False(t, ok)
}

func TestInMemoryRegionCache_FillAfterInvalidateIsDropped(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryRegionCache(time.Minute)
	country := uuid.New()
	old, err := geography.NewRegion(geography.LevelState, &country, "Bombay State", "BS")
	require.NoError(t, err)

	_, gen, ok := c.Children(ctx, geography.LevelState, country)
	require.False(t, ok)
	require.NoError(t, c.Invalidate(ctx))
	c.SetChildren(ctx, gen, geography.LevelState, country, []*geography.Region{old})

	_, fresh, ok := c.Children(ctx, geography.LevelState, country)
	assert.False(t, ok, "a list read before the write must not be cached")
	assert.NotEqual(t, gen, fresh)

	c.SetChildren(ctx, fresh, geography.LevelState, country, nil)
	_, _, ok = c.Children(ctx, geography.LevelState, country)
	assert.True(t, ok)
}

func TestInMemoryRegionCache_NoGenerationIsNotStored(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryRegionCache(time.Minute)

	c.SetChildren(ctx, NoGeneration, geography.LevelCountry, uuid.Nil, nil)
	_, _, ok := c.Children(ctx, geography.LevelCountry, uuid.Nil)
	assert.False(t, ok)
}

func TestInMemoryRegionCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryRegionCache(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.SetChildren(ctx, 0, geography.LevelCountry, uuid.Nil, nil)
	_, _, ok := c.Children(ctx, geography.LevelCountry, uuid.Nil)
	assert.True(t, ok, "an empty list is still a hit")

	now = now.Add(2 * time.Minute)
	_, _, ok = c.Children(ctx, geography.LevelCountry, uuid.Nil)
	assert.False(t, ok)
}

func TestNewRegionCache_FallsBackToMemory(t *testing.T) {
	c := NewRegionCache(nil, 0, nil)
	_, isMem := c.(*InMemoryRegionCache)
	assert.True(t, isMem)
}
