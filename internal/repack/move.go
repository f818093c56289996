package repack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"curator/internal/fileutil"
	"curator/internal/library"
	"curator/internal/logging"
	"curator/internal/services"
)

// moveWholeFile relocates an entire container into destDir, rewriting the
// catalog assignment of every asset inside the copy before the original is
// discarded. Files that carry companions (thumbnails, notes) land in a
// per-asset subfolder so the companions travel with them.
func (e *Engine) moveWholeFile(ctx context.Context, src, destDir string, catalogID uuid.UUID, policy library.CollisionPolicy) error {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	targetDir := destDir
	if library.HasCompanions(src) {
		targetDir = filepath.Join(destDir, stem)
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return services.Wrap(services.ErrWriteFailed, "repack", "move", "create destination directory", err)
	}

	dest, skip, err := library.ResolveCollision(targetDir, stem, ext, policy)
	if err != nil {
		return err
	}
	if skip {
		e.logger.Info("destination exists, skipping",
			logging.String(logging.FieldContainer, src),
			logging.String("destination", targetDir))
		return services.Wrap(services.ErrDestinationExists, "repack", "move", "destination file exists", nil)
	}
	if dest == src {
		// Already in place; only the catalog assignment needs updating.
		return e.updateCatalogInPlace(ctx, src, catalogID, nil)
	}

	if err := fileutil.CopyFileVerified(src, dest); err != nil {
		return services.Wrap(services.ErrWriteFailed, "repack", "move", "copy container", err)
	}

	if err := e.updateCatalogInPlace(ctx, dest, catalogID, nil); err != nil {
		if !services.Skippable(err) {
			os.Remove(dest)
			return err
		}
		// A container with no marked assets still moves; it just has no
		// catalog to rewrite.
		e.logger.Warn("no assets to reassign in moved container",
			logging.String(logging.FieldContainer, dest))
	}

	library.CopyCompanions(src, dest, e.logger)

	if _, err := os.Stat(dest); err != nil {
		return services.Wrap(services.ErrWriteFailed, "repack", "move",
			fmt.Sprintf("destination missing after copy: %s", dest), err)
	}

	if err := e.trash.DiscardWithCompanions(src); err != nil {
		e.logger.Warn("failed to remove source after move",
			logging.String(logging.FieldContainer, src),
			logging.Error(err))
	}
	e.cleanupSourceDir(filepath.Dir(src))

	e.logger.Info("moved container",
		logging.String(logging.FieldContainer, src),
		logging.String("destination", dest))
	return nil
}

// cleanupSourceDir removes the source's parent directory when the move left
// it effectively empty. Directories holding a catalog definition file are
// never removed.
func (e *Engine) cleanupSourceDir(dir string) {
	if !library.ShouldCleanupEmptyDir(dir) {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		e.logger.Warn("failed to clean up empty source directory",
			logging.String("directory", dir),
			logging.Error(err))
	}
}
