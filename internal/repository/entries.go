package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkov/filebox/internal/models"
)

// PostgresEntryRepository implements the metadata graph storage over a
// PostgreSQL database. Listing order follows the seq column, which
// records insertion order.
type PostgresEntryRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresEntryRepository creates a repository bound to db.
func NewPostgresEntryRepository(db *sql.DB) *PostgresEntryRepository {
	return &PostgresEntryRepository{DB: db}
}

// Insert stores entry under a freshly assigned identifier and returns
// the stored record.
func (r *PostgresEntryRepository) Insert(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	stored := *entry
	stored.ID = uuid.NewString()
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO entries (id, owner_id, name, kind, parent_id, is_public, blob_locator)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		stored.ID, stored.OwnerID, stored.Name, string(stored.Kind),
		stored.ParentID, stored.IsPublic, stored.BlobLocator,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	return &stored, nil
}

// GetByID fetches the entry with the given identifier, or ErrNotFound.
// No visibility check happens here; the service layer decides who may
// see the result.
func (r *PostgresEntryRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	// Ids arrive from clients. The id column is a uuid, so anything
	// else cannot match a row; querying with it would trip a syntax
	// error instead of returning no rows.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var entry models.Entry
	var kind string
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, owner_id, name, kind, parent_id, is_public, blob_locator
		 FROM entries WHERE id = $1`,
		id,
	).Scan(&entry.ID, &entry.OwnerID, &entry.Name, &kind,
		&entry.ParentID, &entry.IsPublic, &entry.BlobLocator)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry by id: %w", err)
	}
	entry.Kind = models.EntryKind(kind)
	return &entry, nil
}

// ListByOwnerAndParent returns the owner's entries under parentID in
// insertion order, windowed by skip and limit. The owner filter is
// mandatory: another owner's entries never appear, public or not.
func (r *PostgresEntryRepository) ListByOwnerAndParent(ctx context.Context, ownerID, parentID string, skip, limit int) ([]models.Entry, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT id, owner_id, name, kind, parent_id, is_public, blob_locator
		 FROM entries WHERE owner_id = $1 AND parent_id = $2
		 ORDER BY seq OFFSET $3 LIMIT $4`,
		ownerID, parentID, skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.Entry, 0, limit)
	for rows.Next() {
		var entry models.Entry
		var kind string
		if err := rows.Scan(&entry.ID, &entry.OwnerID, &entry.Name, &kind,
			&entry.ParentID, &entry.IsPublic, &entry.BlobLocator); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entry.Kind = models.EntryKind(kind)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Count returns the number of stored entries.
func (r *PostgresEntryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}
