package catalog

import (
	"log/slog"
	"sync"
)

// Cache memoizes the parsed catalog definitions of one library root. It is
// an explicitly owned object rather than a package global: callers construct
// it, pass it by reference, and invalidate it when the definition file may
// have changed on disk.
type Cache struct {
	mu     sync.Mutex
	root   string
	logger *slog.Logger
	defs   *Definitions
}

// NewCache returns an empty cache bound to a library root.
func NewCache(root string, logger *slog.Logger) *Cache {
	return &Cache{root: root, logger: logger}
}

// Definitions returns the cached definitions, parsing the file on first use
// or after an Invalidate.
func (c *Cache) Definitions() (*Definitions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.defs != nil {
		return c.defs, nil
	}
	defs, err := ParseDefinitions(c.root, c.logger)
	if err != nil {
		return nil, err
	}
	c.defs = defs
	return defs, nil
}

// Invalidate drops the cached parse so the next Definitions call re-reads
// the file.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.defs = nil
	c.mu.Unlock()
}
