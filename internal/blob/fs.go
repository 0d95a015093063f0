package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultRoot is the blob directory used when none is configured.
const DefaultRoot = "/tmp/files_manager"

// FSStore implements Store on the local filesystem. Each payload is
// written to a uuid-named file under the root directory; the locator is
// the absolute path of that file.
type FSStore struct {
	root string
}

// NewFSStore returns a filesystem store rooted at root, falling back to
// DefaultRoot when root is empty. The directory is created lazily on
// first save, so constructing the store never touches the disk.
func NewFSStore(root string) *FSStore {
	if root == "" {
		root = DefaultRoot
	}
	return &FSStore{root: root}
}

// Save writes data to a fresh uuid-named file and returns its path.
// The payload goes to a temporary file first and is renamed into place,
// so a reader never observes a partially written blob.
func (s *FSStore) Save(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// MkdirAll is idempotent; calling it on every save keeps the store
	// usable even if the root is removed out from under us.
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("%w: create root %s: %v", ErrStorageUnavailable, s.root, err)
	}

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: write payload: %v", ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: close payload: %v", ErrStorageUnavailable, err)
	}

	locator := filepath.Join(s.root, uuid.NewString())
	if err := os.Rename(tmpName, locator); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: publish payload: %v", ErrStorageUnavailable, err)
	}
	return locator, nil
}
