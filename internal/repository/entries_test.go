package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/avolkov/filebox/internal/models"
)

func setupEntryMock(t *testing.T) (*PostgresEntryRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresEntryRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

const insertEntrySQL = `INSERT INTO entries (id, owner_id, name, kind, parent_id, is_public, blob_locator)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`

func TestInsertEntry(t *testing.T) {
	repo, mock, cleanup := setupEntryMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertEntrySQL)).
		WithArgs(sqlmock.AnyArg(), "u-1", "Photos", "folder", "0", false, "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry := &models.Entry{
		OwnerID:  "u-1",
		Name:     "Photos",
		Kind:     models.KindFolder,
		ParentID: models.RootParentID,
	}
	stored, err := repo.Insert(context.Background(), entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID == "" {
		t.Errorf("expected assigned id, got empty string")
	}
	if entry.ID != "" {
		t.Errorf("Insert mutated its argument: id = %q", entry.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestInsertEntry_Error(t *testing.T) {
	repo, mock, cleanup := setupEntryMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertEntrySQL)).
		WillReturnError(errors.New("insert failed"))

	_, err := repo.Insert(context.Background(), &models.Entry{
		OwnerID: "u-1", Name: "x", Kind: models.KindFile, ParentID: "0", BlobLocator: "/tmp/x",
	})
	if err == nil {
		t.Errorf("expected error, got nil")
	}
}

func TestGetEntryByID(t *testing.T) {
	repo, mock, cleanup := setupEntryMock(t)
	defer cleanup()

	id := "3f9e2a64-1b7c-4d5e-8f90-a1b2c3d4e5f6"
	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "kind", "parent_id", "is_public", "blob_locator"}).
		AddRow(id, "u-1", "cat.png", "image", "0", true, "/tmp/files_manager/abc")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, owner_id, name, kind, parent_id, is_public, blob_locator
		 FROM entries WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(rows)

	entry, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Kind != models.KindImage {
		t.Errorf("Kind = %q; want %q", entry.Kind, models.KindImage)
	}
	if entry.BlobLocator == "" {
		t.Errorf("expected blob locator on image entry")
	}
}

func TestGetEntryByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupEntryMock(t)
	defer cleanup()

	id := "00000000-0000-0000-0000-000000000404"
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, owner_id, name, kind, parent_id, is_public, blob_locator
		 FROM entries WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "kind", "parent_id", "is_public", "blob_locator"}))

	_, err := repo.GetByID(context.Background(), id)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
}

func TestGetEntryByID_MalformedID(t *testing.T) {
	repo, mock, cleanup := setupEntryMock(t)
	defer cleanup()

	// A non-uuid id can never match a row; it must read as not found
	// without ever reaching the database, where it would be a type
	// error rather than an empty result.
	for _, id := range []string{"abc", "7", "", "e-1; DROP TABLE entries"} {
		if _, err := repo.GetByID(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetByID(%q) error = %v; want ErrNotFound", id, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database access: %v", err)
	}
}

func TestListByOwnerAndParent(t *testing.T) {
	repo, mock, cleanup := setupEntryMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "kind", "parent_id", "is_public", "blob_locator"}).
		AddRow("e-1", "u-1", "a", "file", "p-1", false, "/tmp/a").
		AddRow("e-2", "u-1", "b", "folder", "p-1", false, "")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, owner_id, name, kind, parent_id, is_public, blob_locator
		 FROM entries WHERE owner_id = $1 AND parent_id = $2
		 ORDER BY seq OFFSET $3 LIMIT $4`)).
		WithArgs("u-1", "p-1", 0, 20).
		WillReturnRows(rows)

	entries, err := repo.ListByOwnerAndParent(context.Background(), "u-1", "p-1", 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d; want 2", len(entries))
	}
	if entries[0].ID != "e-1" || entries[1].ID != "e-2" {
		t.Errorf("unexpected order: %q, %q", entries[0].ID, entries[1].ID)
	}
}

func TestListByOwnerAndParent_Empty(t *testing.T) {
	repo, mock, cleanup := setupEntryMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY seq OFFSET $3 LIMIT $4`)).
		WithArgs("u-1", "0", 100, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "kind", "parent_id", "is_public", "blob_locator"}))

	entries, err := repo.ListByOwnerAndParent(context.Background(), "u-1", "0", 100, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Errorf("len = %d; want 0", len(entries))
	}
}

func TestCountEntries(t *testing.T) {
	repo, mock, cleanup := setupEntryMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM entries`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("Count = %d; want 42", n)
	}
}
