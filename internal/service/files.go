package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkov/filebox/internal/access"
	"github.com/avolkov/filebox/internal/blob"
	"github.com/avolkov/filebox/internal/models"
	"github.com/avolkov/filebox/internal/repository"
)

// PageSize is the fixed window applied to listings.
const PageSize = 20

// EntryRepository defines the metadata graph operations required by the
// file service.
type EntryRepository interface {
	// Insert stores an entry and returns it with its assigned id.
	Insert(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	// GetByID returns an entry regardless of visibility, or
	// repository.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Entry, error)
	// ListByOwnerAndParent returns the owner's children of parentID in
	// insertion order, windowed by skip and limit.
	ListByOwnerAndParent(ctx context.Context, ownerID, parentID string, skip, limit int) ([]models.Entry, error)
}

// BlobStore persists opaque payloads; see blob.Store.
type BlobStore interface {
	Save(ctx context.Context, data []byte) (string, error)
}

// UploadRequest carries a validated-shape upload. Data holds the
// decoded payload for files and images; HasData distinguishes an empty
// payload from an absent one.
type UploadRequest struct {
	Name     string
	Kind     models.EntryKind
	ParentID string
	IsPublic bool
	Data     []byte
	HasData  bool
}

// FileService implements upload, fetch, and listing over the metadata
// graph and the blob store.
type FileService struct {
	entries EntryRepository
	blobs   BlobStore
}

// NewFileService constructs a FileService over the given stores.
func NewFileService(entries EntryRepository, blobs BlobStore) *FileService {
	return &FileService{entries: entries, blobs: blobs}
}

// Upload creates a folder, file, or image entry for ownerID.
//
// The steps run strictly in order: shape validation, parent validation,
// blob write (leaves only), metadata insert. A failed blob write
// returns before any metadata mutation, so a leaf entry always carries
// a locator for a fully written blob. A blob whose insert then fails is
// left behind as an orphan; the sweeper reclaims it later.
func (s *FileService) Upload(ctx context.Context, ownerID string, req UploadRequest) (*models.Entry, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if !req.Kind.Valid() {
		return nil, ErrMissingType
	}
	if req.Kind != models.KindFolder && !req.HasData {
		return nil, ErrMissingData
	}

	parentID := req.ParentID
	if parentID == "" {
		parentID = models.RootParentID
	}
	if parentID != models.RootParentID {
		// The parent must exist and be a folder. Its owner may differ:
		// parenting under another owner's folder is allowed.
		parent, err := s.entries.GetByID(ctx, parentID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidParent
		}
		if err != nil {
			return nil, fmt.Errorf("fetch parent: %w", err)
		}
		if !parent.IsFolder() {
			return nil, ErrParentNotFolder
		}
	}

	entry := &models.Entry{
		OwnerID:  ownerID,
		Name:     req.Name,
		Kind:     req.Kind,
		ParentID: parentID,
		IsPublic: req.IsPublic,
	}

	if req.Kind != models.KindFolder {
		locator, err := s.blobs.Save(ctx, req.Data)
		if err != nil {
			if errors.Is(err, blob.ErrStorageUnavailable) {
				return nil, ErrStorageUnavailable
			}
			return nil, fmt.Errorf("save blob: %w", err)
		}
		entry.BlobLocator = locator
	}

	stored, err := s.entries.Insert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	return stored, nil
}

// Get fetches an entry by id on behalf of ownerID. An entry that does
// not exist and one the owner may not read produce the same ErrNotFound
// so callers cannot probe for existence.
func (s *FileService) Get(ctx context.Context, ownerID, id string) (*models.Entry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch entry: %w", err)
	}
	if !access.CanRead(ownerID, entry) {
		return nil, ErrNotFound
	}
	return entry, nil
}

// List returns page of ownerID's entries under parentID, in insertion
// order. Out-of-range pages yield an empty sequence.
func (s *FileService) List(ctx context.Context, ownerID, parentID string, page int) ([]models.Entry, error) {
	if parentID == "" {
		parentID = models.RootParentID
	}
	if page < 0 {
		page = 0
	}
	return s.entries.ListByOwnerAndParent(ctx, ownerID, parentID, page*PageSize, PageSize)
}
