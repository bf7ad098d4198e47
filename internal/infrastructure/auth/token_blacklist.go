package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist revokes tokens before they expire
type TokenBlacklist interface {
	// Revoke rejects the token with this jti for ttl
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	// RevokeOnce revokes like Revoke and reports whether this call did it.
	// Of several concurrent calls for one jti exactly one gets true.
	RevokeOnce(ctx context.Context, jti string, ttl time.Duration) (bool, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// RevokeUser rejects every token issued to userID before the current
	// second. iat has second precision, so a login in the same second survives.
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error
	IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

const blacklistPrefix = "eyedist:token:revoked:"

// RedisTokenBlacklist shares revocations across server instances
type RedisTokenBlacklist struct {
	client redis.UniversalClient
}

func NewRedisTokenBlacklist(client redis.UniversalClient) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, blacklistPrefix+"jti:"+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) RevokeOnce(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	ok, err := b.client.SetNX(ctx, blacklistPrefix+"jti:"+jti, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}
	return ok, nil
}

func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistPrefix+"jti:"+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}

func (b *RedisTokenBlacklist) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	err := b.client.Set(ctx, blacklistPrefix+"user:"+userID, time.Now().Unix(), ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	v, err := b.client.Get(ctx, blacklistPrefix+"user:"+userID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user revocation: %w", err)
	}
	cutoff, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return false, fmt.Errorf("bad revocation timestamp %q: %w", v, err)
	}
	return issuedAt.Unix() < cutoff, nil
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist is for single-instance deployments and tests
type InMemoryTokenBlacklist struct {
	mu    sync.Mutex
	jtis  map[string]time.Time
	users map[string]time.Time
}

func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		jtis:  make(map[string]time.Time),
		users: make(map[string]time.Time),
	}
}

func (b *InMemoryTokenBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = time.Now().Add(ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) RevokeOnce(_ context.Context, jti string, ttl time.Duration) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.revokedLocked(jti) {
		return false, nil
	}
	b.jtis[jti] = time.Now().Add(ttl)
	return true, nil
}

func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revokedLocked(jti), nil
}

func (b *InMemoryTokenBlacklist) revokedLocked(jti string) bool {
	exp, ok := b.jtis[jti]
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		delete(b.jtis, jti)
		return false
	}
	return true
}

func (b *InMemoryTokenBlacklist) RevokeUser(_ context.Context, userID string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[userID] = time.Now()
	return nil
}

func (b *InMemoryTokenBlacklist) IsUserRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cutoff, ok := b.users[userID]
	if !ok {
		return false, nil
	}
	return issuedAt.Unix() < cutoff.Unix(), nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
