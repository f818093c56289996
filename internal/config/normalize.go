package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// normalize expands and absolutizes every path field so later code never
// sees "~" or relative paths.
func (c *Config) normalize() error {
	paths := []*string{
		&c.Library.Root,
		&c.Library.TrashDir,
		&c.Index.Dir,
		&c.Logging.Dir,
	}
	for _, field := range paths {
		value := strings.TrimSpace(*field)
		if value == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(value)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Naming.Prefix = strings.TrimSpace(c.Naming.Prefix)
	c.Naming.Suffix = strings.TrimSpace(c.Naming.Suffix)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolutize %s: %w", path, err)
	}
	return abs, nil
}
