package catalog

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"curator/internal/logging"
)

// DefinitionFilename is the fixed name of the catalog definition file inside
// a library root. The file is consumed, never owned: curator reads it but
// leaves writing to the host application.
const DefinitionFilename = "blender_assets.cats.txt"

// Entry is one catalog definition: a stable UUID, a slash-separated
// hierarchy path, and a display name.
type Entry struct {
	ID          uuid.UUID
	Path        string
	DisplayName string
}

// Definitions holds the parsed catalog set of one library root.
type Definitions struct {
	entries []Entry
	byID    map[uuid.UUID]Entry
	byPath  map[string]Entry
}

// ParseDefinitions reads the catalog definition file under root. A missing
// file yields an empty (usable) definition set. Malformed lines (non-UUID
// first fields, missing separators, empty paths) are logged and skipped,
// never fatal to the whole parse.
func ParseDefinitions(root string, logger *slog.Logger) (*Definitions, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	defs := &Definitions{
		byID:   make(map[uuid.UUID]Entry),
		byPath: make(map[string]Entry),
	}

	path := filepath.Join(root, DefinitionFilename)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defs, nil
		}
		return nil, fmt.Errorf("open catalog definitions: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "VERSION") {
			continue
		}
		parts := strings.SplitN(line, ":", 3)
		if len(parts) < 2 {
			logger.Warn("malformed catalog entry",
				logging.Int("line", lineNum),
				logging.String("file", path),
			)
			continue
		}
		id, err := uuid.Parse(strings.TrimSpace(parts[0]))
		if err != nil {
			logger.Warn("catalog entry has invalid UUID",
				logging.Int("line", lineNum),
				logging.String("value", strings.TrimSpace(parts[0])),
			)
			continue
		}
		catalogPath := strings.TrimSpace(parts[1])
		if catalogPath == "" {
			logger.Warn("catalog entry has empty path", logging.Int("line", lineNum))
			continue
		}
		display := catalogPath
		if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
			display = strings.TrimSpace(parts[2])
		}
		entry := Entry{ID: id, Path: catalogPath, DisplayName: display}
		defs.entries = append(defs.entries, entry)
		defs.byID[id] = entry
		defs.byPath[catalogPath] = entry
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog definitions: %w", err)
	}
	return defs, nil
}

// Entries returns all catalogs in file order.
func (d *Definitions) Entries() []Entry {
	return append([]Entry(nil), d.entries...)
}

// PathForID returns the hierarchy path of a catalog UUID.
func (d *Definitions) PathForID(id uuid.UUID) (string, bool) {
	entry, ok := d.byID[id]
	return entry.Path, ok
}

// IDForPath returns the UUID of a catalog hierarchy path.
func (d *Definitions) IDForPath(path string) (uuid.UUID, bool) {
	entry, ok := d.byPath[path]
	return entry.ID, ok
}

// Len reports the number of parsed catalogs.
func (d *Definitions) Len() int {
	return len(d.entries)
}
