// Package service implements the business logic of the file store:
// registration, session handling, and the upload/fetch/list operations
// over the metadata graph and blob storage.
package service

import "errors"

// Sentinel errors surfaced to the transport layer. Each maps to exactly
// one HTTP status; none is ever retried internally.
var (
	// ErrUnauthorized covers missing, invalid, and expired tokens as
	// well as bad login credentials. The cases are indistinguishable on
	// purpose.
	ErrUnauthorized = errors.New("unauthorized")

	// Registration failures.
	ErrMissingEmail    = errors.New("missing email")
	ErrMissingPassword = errors.New("missing password")
	ErrAlreadyExists   = errors.New("already exist")

	// Upload validation failures.
	ErrMissingName     = errors.New("missing name")
	ErrMissingType     = errors.New("missing type")
	ErrMissingData     = errors.New("missing data")
	ErrInvalidParent   = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")

	// ErrNotFound is reported both for entries that do not exist and
	// for entries the caller may not see.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable indicates a failed blob or document write.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
