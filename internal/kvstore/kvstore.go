// Package kvstore provides the key-value store abstraction used for
// session tokens, together with a BadgerDB-backed implementation and an
// in-memory implementation for tests.
//
// Expiry is a first-class part of the contract: a key set with a TTL
// becomes absent once the TTL elapses, and Get reports absence the same
// way for expired and never-set keys.
package kvstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get and Del when the key is absent,
// whether it was never set, expired, or already deleted.
var ErrNotFound = errors.New("kvstore: key not found")

// KVStore is a minimal key-value store with per-key TTL.
type KVStore interface {
	// Set stores value under key. A positive ttl makes the key expire
	// after that duration; a zero ttl stores the key without expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the value stored under key, or ErrNotFound when the
	// key is absent or expired.
	Get(ctx context.Context, key string) (string, error)

	// Del removes key from the store. Returns ErrNotFound when the key
	// was absent, so callers can distinguish a real deletion.
	Del(ctx context.Context, key string) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
