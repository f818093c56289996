package index

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"curator/internal/container"
	"curator/internal/logging"
)

// Refresh rebuilds the index rows for every container under root. Containers
// that no longer exist are dropped; unreadable ones are logged and skipped
// so one corrupt file never blocks the scan.
func (s *Store) Refresh(ctx context.Context, root string) (int, error) {
	seen := make(map[string]struct{})
	indexed := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || filepath.Ext(path) != container.Extension {
			return nil
		}
		seen[path] = struct{}{}
		n, indexErr := s.indexContainer(ctx, path)
		if indexErr != nil {
			s.logger.Warn("skipping unreadable container",
				logging.String(logging.FieldContainer, path),
				logging.Error(indexErr))
			return nil
		}
		indexed += n
		return nil
	})
	if err != nil {
		return indexed, fmt.Errorf("scan library: %w", err)
	}

	if err := s.pruneMissing(ctx, root, seen); err != nil {
		return indexed, err
	}
	return indexed, nil
}

// InvalidateContainer drops the rows for one container, typically after a
// repackaging operation rewrote or removed it.
func (s *Store) InvalidateContainer(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM assets WHERE container = ?", path); err != nil {
		return fmt.Errorf("invalidate container rows: %w", err)
	}
	return nil
}

func (s *Store) indexContainer(ctx context.Context, path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	entries, err := container.List(path)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin refresh tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM assets WHERE container = ?", path); err != nil {
		return 0, fmt.Errorf("clear container rows: %w", err)
	}

	modified := info.ModTime().UTC().Format(time.RFC3339Nano)
	count := 0
	for _, entry := range entries {
		if !entry.IsAsset {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO assets (container, kind, name, catalog_id, tags, modified_at)
             VALUES (?, ?, ?, ?, ?, ?)`,
			path,
			string(entry.Kind),
			entry.Name,
			entry.CatalogID.String(),
			joinTags(entry.Tags),
			modified,
		)
		if err != nil {
			return 0, fmt.Errorf("insert asset row: %w", err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit refresh tx: %w", err)
	}
	return count, nil
}

func (s *Store) pruneMissing(ctx context.Context, root string, seen map[string]struct{}) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT container FROM assets WHERE container LIKE ?", root+"%")
	if err != nil {
		return fmt.Errorf("list indexed containers: %w", err)
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return fmt.Errorf("scan container path: %w", err)
		}
		if _, ok := seen[path]; !ok {
			stale = append(stale, path)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate containers: %w", err)
	}

	for _, path := range stale {
		if err := s.InvalidateContainer(ctx, path); err != nil {
			return err
		}
	}
	return nil
}
