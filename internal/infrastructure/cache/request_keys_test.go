package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRequestKeyStore_Claim(t *testing.T) {
	store := NewInMemoryRequestKeyStore()
	defer store.Close()
	ctx := context.Background()

	t.Run("first claim wins", func(t *testing.T) {
		ok, err := store.Claim(ctx, "user-1:order-a", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Claim(ctx, "user-1:order-a", time.Hour)
		require.NoError(t, err)
		assert.False(t, ok, "replayed key must be refused")
	})

	t.Run("keys are independent", func(t *testing.T) {
		ok, err := store.Claim(ctx, "user-2:order-a", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("expired key can be claimed again", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return now }

		ok, _ := store.Claim(ctx, "user-3:expense", time.Minute)
		assert.True(t, ok)

		now = now.Add(2 * time.Minute)
		ok, err := store.Claim(ctx, "user-3:expense", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInMemoryRequestKeyStore_Release(t *testing.T) {
	store := NewInMemoryRequestKeyStore()
	defer store.Close()
	ctx := context.Background()

	ok, _ := store.Claim(ctx, "k", time.Hour)
	require.True(t, ok)
	require.NoError(t, store.Release(ctx, "k"))

	ok, err := store.Claim(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "released key is free again")
}

func TestInMemoryRequestKeyStore_Sweep(t *testing.T) {
	store := NewInMemoryRequestKeyStore()
	defer store.Close()
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_, _ = store.Claim(ctx, "short", time.Second)
	_, _ = store.Claim(ctx, "long", time.Hour)
	assert.Equal(t, 2, store.Len())

	now = now.Add(time.Minute)
	store.sweep()
	assert.Equal(t, 1, store.Len())
}

func TestInMemoryRequestKeyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryRequestKeyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestNewRequestKeyStore_FallsBackToMemory(t *testing.T) {
	store := NewRequestKeyStore(nil)
	mem, ok := store.(*InMemoryRequestKeyStore)
	require.True(t, ok)
	_ = mem.Close()
}
