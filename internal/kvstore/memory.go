package kvstore

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// MemoryStore is an in-memory KVStore used in tests and by the server
// when no token database path is configured. TTL semantics match the
// persistent store: an expired key is absent, not an error of its own.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem

	// now is the clock; tests may replace it to drive expiry.
	now func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

// SetClock replaces the store's clock. Intended for tests.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) expired(it memoryItem) bool {
	return !it.expiresAt.IsZero() && s.now().After(it.expiresAt)
}

// Set stores value under key with the given TTL.
func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it := memoryItem{value: value}
	if ttl > 0 {
		it.expiresAt = s.now().Add(ttl)
	}
	s.items[key] = it
	return nil
}

// Get returns the value under key, or ErrNotFound when absent or expired.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[key]
	if !ok {
		return "", ErrNotFound
	}
	if s.expired(it) {
		delete(s.items, key)
		return "", ErrNotFound
	}
	return it.value, nil
}

// Del removes key, reporting ErrNotFound when it was absent or expired.
func (s *MemoryStore) Del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[key]
	if !ok || s.expired(it) {
		delete(s.items, key)
		return ErrNotFound
	}
	delete(s.items, key)
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
