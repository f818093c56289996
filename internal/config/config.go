package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Library contains configuration for asset library layout.
type Library struct {
	// Root is the default library root used when a command does not name one.
	Root string `toml:"root"`
	// UseCatalogSubfolders mirrors catalog paths as directories when moving
	// assets into a library.
	UseCatalogSubfolders bool `toml:"use_catalog_subfolders"`
	// TrashDir receives removed containers and companion files. Empty means
	// delete permanently.
	TrashDir string `toml:"trash_dir"`
}

// Naming contains configuration for generated container file names.
type Naming struct {
	Prefix      string `toml:"prefix"`
	Suffix      string `toml:"suffix"`
	IncludeDate bool   `toml:"include_date"`
	MaxLength   int    `toml:"max_length"`
}

// Bundle contains configuration for combining containers into one file.
type Bundle struct {
	MaxSizeMiB  int  `toml:"max_size_mib"`
	WarnSizeMiB int  `toml:"warn_size_mib"`
	CopyCatalog bool `toml:"copy_catalog"`
}

// Index contains configuration for the per-library asset index.
type Index struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for curator.
//
// Configuration sections by subsystem:
//   - Library: default root, catalog subfolder mirroring, trash location
//   - Naming: prefix/suffix/date parts for generated file names
//   - Bundle: size limits and catalog copying for bundle output
//   - Index: asset index cache location
//   - Logging: log format, level, and directory
type Config struct {
	Library Library `toml:"library"`
	Naming  Naming  `toml:"naming"`
	Bundle  Bundle  `toml:"bundle"`
	Index   Index   `toml:"index"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/curator/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return value
// is the resolved path; the third reports whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config already exists at %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// EnsureDirectories creates the directories the configuration references.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Library.Root, c.Logging.Dir, c.Index.Dir}
	if c.Library.TrashDir != "" {
		dirs = append(dirs, c.Library.TrashDir)
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
