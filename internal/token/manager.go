// Package token issues, resolves, and revokes opaque session tokens
// backed by a TTL key-value store.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/filebox/internal/kvstore"
)

// ErrUnauthorized is returned when a token is unknown, expired, or
// already revoked. The three cases are deliberately indistinguishable.
var ErrUnauthorized = errors.New("token: unauthorized")

// keyPrefix namespaces session tokens inside the key-value store.
const keyPrefix = "auth_"

// DefaultTTL is the session lifetime applied to every issued token.
const DefaultTTL = 24 * time.Hour

// Manager maps opaque bearer tokens to owner identifiers. Expiry is
// passive: the backing store enforces the TTL and the manager never
// sweeps.
type Manager struct {
	store kvstore.KVStore
	ttl   time.Duration
}

// NewManager constructs a Manager over the given store with DefaultTTL.
func NewManager(store kvstore.KVStore) *Manager {
	return &Manager{store: store, ttl: DefaultTTL}
}

// NewManagerTTL constructs a Manager with a custom session lifetime.
func NewManagerTTL(store kvstore.KVStore, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Issue generates a fresh opaque token for ownerID and stores the
// mapping with the session TTL. Tokens are random UUIDs, so concurrent
// issuance needs no coordination to stay unique.
func (m *Manager) Issue(ctx context.Context, ownerID string) (string, error) {
	tok := uuid.NewString()
	if err := m.store.Set(ctx, keyPrefix+tok, ownerID, m.ttl); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return tok, nil
}

// Resolve returns the owner identifier for tok, or ErrUnauthorized when
// the token is empty, unknown, or expired.
func (m *Manager) Resolve(ctx context.Context, tok string) (string, error) {
	if tok == "" {
		return "", ErrUnauthorized
	}
	ownerID, err := m.store.Get(ctx, keyPrefix+tok)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("resolve token: %w", err)
	}
	return ownerID, nil
}

// Revoke deletes tok from the store. Revoking a token that is absent,
// expired, or already revoked reports ErrUnauthorized, the same as any
// other invalid token.
func (m *Manager) Revoke(ctx context.Context, tok string) error {
	if tok == "" {
		return ErrUnauthorized
	}
	err := m.store.Del(ctx, keyPrefix+tok)
	if errors.Is(err, kvstore.ErrNotFound) {
		return ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Ping reports whether the backing token store is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}
