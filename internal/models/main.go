// Package models defines the core data structures for users and
// filesystem entries.
package models

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Email is the unique login address chosen by the user.
	Email string `json:"email"`
	// PasswordHash is the hashed password of the user. Never serialized.
	PasswordHash []byte `json:"-"`
}

// EntryKind defines the set of valid entry type identifiers.
type EntryKind string

const (
	// KindFolder represents a folder entry; folders carry no blob.
	KindFolder EntryKind = "folder"
	// KindFile represents a regular file entry backed by a blob.
	KindFile EntryKind = "file"
	// KindImage represents an image entry backed by a blob.
	KindImage EntryKind = "image"
)

// Valid reports whether k is one of the known entry kinds.
func (k EntryKind) Valid() bool {
	return k == KindFolder || k == KindFile || k == KindImage
}

// RootParentID marks an entry that lives at the root of the hierarchy.
const RootParentID = "0"

// Entry represents a single node in the file hierarchy: a folder,
// a file, or an image. Files and images reference their payload through
// BlobLocator; folders never do.
type Entry struct {
	// ID is the unique identifier for the entry.
	ID string `json:"id"`
	// OwnerID is the identifier of the user who created the entry.
	// Ownership never changes after creation.
	OwnerID string `json:"userId"`
	// Name is the display name of the entry. Always non-empty.
	Name string `json:"name"`
	// Kind discriminates folders from files and images.
	Kind EntryKind `json:"type"`
	// ParentID references the containing folder, or RootParentID.
	ParentID string `json:"parentId"`
	// IsPublic makes the entry readable by any token holder.
	IsPublic bool `json:"isPublic"`
	// BlobLocator is the opaque reference to the stored payload.
	// Empty for folders, always set for files and images.
	BlobLocator string `json:"localPath,omitempty"`
}

// IsFolder reports whether the entry is a folder.
func (e *Entry) IsFolder() bool {
	return e.Kind == KindFolder
}
