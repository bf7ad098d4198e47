package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RequestKeyStore remembers idempotency keys of write requests for a while.
// Claim returns true only for the first caller of a live key.
type RequestKeyStore interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// NewRequestKeyStore returns a Redis-backed store when client is non-nil
// and an in-memory one otherwise
func NewRequestKeyStore(client redis.UniversalClient) RequestKeyStore {
	if client == nil {
		return NewInMemoryRequestKeyStore()
	}
	return NewRedisRequestKeyStore(client, "")
}

type keyEntry struct {
	expiresAt time.Time
}

// InMemoryRequestKeyStore keeps keys in process memory. Fine for a single
// instance; replicas need the Redis store.
type InMemoryRequestKeyStore struct {
	mu        sync.Mutex
	entries   map[string]keyEntry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryRequestKeyStore starts a store with a background sweeper.
// Call Close to stop it.
func NewInMemoryRequestKeyStore() *InMemoryRequestKeyStore {
	s := &InMemoryRequestKeyStore{
		entries:  make(map[string]keyEntry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	s.wg.Add(1)
	go s.sweepLoop()
	return s
}

func (s *InMemoryRequestKeyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[key]; ok && now.Before(e.expiresAt) {
		return false, nil
	}
	s.entries[key] = keyEntry{expiresAt: now.Add(ttl)}
	return true, nil
}

func (s *InMemoryRequestKeyStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Close stops the sweeper; safe to call more than once
func (s *InMemoryRequestKeyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Len reports how many keys are held, expired ones included
func (s *InMemoryRequestKeyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *InMemoryRequestKeyStore) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *InMemoryRequestKeyStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

const defaultRequestKeyPrefix = "eyedist:reqkey:"

// RedisRequestKeyStore shares keys between replicas using SET NX
type RedisRequestKeyStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisRequestKeyStore(client redis.UniversalClient, prefix string) *RedisRequestKeyStore {
	if prefix == "" {
		prefix = defaultRequestKeyPrefix
	}
	return &RedisRequestKeyStore{client: client, prefix: prefix}
}

func (s *RedisRequestKeyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim request key: %w", err)
	}
	return ok, nil
}

func (s *RedisRequestKeyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release request key: %w", err)
	}
	return nil
}
