// Package blob persists opaque binary payloads under generated names
// and returns stable locators for them. It knows nothing about the
// metadata hierarchy; callers store the locator on their own records.
package blob

import (
	"context"
	"errors"
)

// ErrStorageUnavailable is returned when a payload could not be written
// to the backing storage.
var ErrStorageUnavailable = errors.New("blob: storage unavailable")

// Store writes payloads to durable storage. Implementations must make
// writes atomic from the caller's point of view: no locator is returned
// for a partially written blob.
type Store interface {
	// Save persists data under a fresh unique name and returns its
	// locator. Saved blobs are never rolled back; a blob whose metadata
	// insert later fails is an acceptable orphan.
	Save(ctx context.Context, data []byte) (string, error)
}
