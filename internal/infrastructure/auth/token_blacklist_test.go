package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/eyedist/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_Revoke(t *testing.T) {
	bl := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_RevokeOnce(t *testing.T) {
	bl := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	tests := []struct {
		name string
		jti  string
		want bool
	}{
		{"first redemption", "refresh-1", true},
		{"second redemption", "refresh-1", false},
		{"other token", "refresh-2", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := bl.RevokeOnce(ctx, tt.jti, time.Hour)
			require.NoError(t, err)
			assert.Equal(t, tt.want, first)
		})
	}

	revoked, err := bl.IsRevoked(ctx, "refresh-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestInMemoryTokenBlacklist_EntriesExpire(t *testing.T) {
	bl := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "short", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	revoked, err := bl.IsRevoked(ctx, "short")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_RevokeUser(t *testing.T) {
	bl := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()
	issued := time.Now().Add(-time.Hour)

	revoked, err := bl.IsUserRevoked(ctx, "user-1", issued)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.RevokeUser(ctx, "user-1", time.Hour))

	revoked, err = bl.IsUserRevoked(ctx, "user-1", issued)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsUserRevoked(ctx, "user-1", time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.False(t, revoked, "tokens issued after the cutoff stay valid")

	revoked, err = bl.IsUserRevoked(ctx, "user-2", issued)
	require.NoError(t, err)
	assert.False(t, revoked)
}
