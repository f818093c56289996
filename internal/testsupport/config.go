package testsupport

import (
	"path/filepath"
	"testing"

	"curator/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Library.Root = filepath.Join(base, "library")
	cfg.Library.TrashDir = filepath.Join(base, "trash")
	cfg.Index.Dir = filepath.Join(base, "index")
	cfg.Logging.Dir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithCatalogSubfolders toggles catalog subfolder mirroring on the test config.
func WithCatalogSubfolders(enabled bool) ConfigOption {
	return func(c *config.Config) {
		c.Library.UseCatalogSubfolders = enabled
	}
}

// WithNaming overrides the file naming section on the test config.
func WithNaming(naming config.Naming) ConfigOption {
	return func(c *config.Config) {
		c.Naming = naming
	}
}

// WithPermanentDelete disables the trash so removals delete outright.
func WithPermanentDelete() ConfigOption {
	return func(c *config.Config) {
		c.Library.TrashDir = ""
	}
}
