package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// StartOrphanBlobSweeper periodically removes blob files under root
// that no entry references. Uploads write the blob before the metadata
// row, so a failed upload can leave such a file behind; the retention
// window keeps the sweeper from racing an upload that is between the
// two steps.
func StartOrphanBlobSweeper(
	ctx context.Context,
	db *sql.DB,
	root string,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := sweepOrphanBlobs(ctx, db, root, retention)
				if err != nil {
					log.Error("failed to sweep orphaned blobs", zap.Error(err))
					continue
				}
				if removed > 0 {
					log.Info("removed orphaned blobs", zap.Int("removed", removed))
				}
			}
		}
	}()
}

func sweepOrphanBlobs(ctx context.Context, db *sql.DB, root string, retention time.Duration) (int, error) {
	files, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-retention)
	removed := 0
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		info, err := f.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		locator := filepath.Join(root, f.Name())
		var referenced bool
		err = db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM entries WHERE blob_locator = $1)`,
			locator,
		).Scan(&referenced)
		if err != nil {
			return removed, err
		}
		if referenced {
			continue
		}
		if err := os.Remove(locator); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
