// Package access holds the pure authorization predicates applied to
// entries once a token has been resolved to an owner identity.
package access

import "github.com/avolkov/filebox/internal/models"

// CanRead reports whether ownerID may read entry: the entry's owner
// always can, anyone else only when the entry is public.
func CanRead(ownerID string, entry *models.Entry) bool {
	if entry == nil {
		return false
	}
	return entry.OwnerID == ownerID || entry.IsPublic
}

// CanWrite reports whether ownerID may mutate entry. Public visibility
// never grants write access.
func CanWrite(ownerID string, entry *models.Entry) bool {
	if entry == nil {
		return false
	}
	return entry.OwnerID == ownerID
}
