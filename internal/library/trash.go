package library

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"curator/internal/logging"
)

// Trash relocates discarded files so a move or delete is recoverable. With
// no directory configured it deletes permanently instead.
type Trash struct {
	dir    string
	logger *slog.Logger
}

// NewTrash builds a trash bound to the configured directory; empty means
// permanent deletion.
func NewTrash(dir string, logger *slog.Logger) *Trash {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Trash{dir: dir, logger: logger}
}

// Discard moves path into the trash directory, incrementing the name on
// collision, or removes it permanently when no trash is configured.
// Discarding a missing path is a no-op.
func (t *Trash) Discard(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if t.dir == "" {
		return os.RemoveAll(path)
	}
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return fmt.Errorf("ensure trash directory: %w", err)
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	dest, err := IncrementFilename(t.dir, stem, ext)
	if err != nil {
		return err
	}
	if err := os.Rename(path, dest); err != nil {
		// Cross-device moves cannot rename; fall back to permanent removal
		// rather than leaving the source in place.
		t.logger.Warn("trash rename failed, removing permanently",
			logging.String("path", path),
			logging.Error(err),
		)
		return os.RemoveAll(path)
	}
	return nil
}

// DiscardWithCompanions discards the container at path along with its
// companion files and folders. Individual failures are logged; the first
// error on the container itself is returned.
func (t *Trash) DiscardWithCompanions(path string) error {
	err := t.Discard(path)
	for _, companion := range CompanionPaths(path) {
		if companionErr := t.Discard(companion); companionErr != nil {
			t.logger.Warn("could not discard companion",
				logging.String("path", companion),
				logging.Error(companionErr),
			)
		}
	}
	return err
}
