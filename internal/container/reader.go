package container

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"curator/internal/entity"
	"curator/internal/services"
)

type body struct {
	Entities []*entity.Entity `json:"entities"`
}

// Entry summarizes one entity in a container without materializing it for
// the live document.
type Entry struct {
	Name      string
	Kind      entity.Kind
	IsAsset   bool
	CatalogID uuid.UUID
	Tags      []string
}

// Selection names the entities a selective load should consider, keyed by
// kind. A nil selection means "everything in the file".
type Selection map[entity.Kind][]string

// Contains reports whether the selection includes the given kind and name.
func (s Selection) Contains(kind entity.Kind, name string) bool {
	if s == nil {
		return true
	}
	for _, candidate := range s[kind] {
		if candidate == name {
			return true
		}
	}
	return false
}

// List returns an entry per entity in the container. The source file is
// never mutated by a read.
func List(path string) ([]Entry, error) {
	entities, err := decode(path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(entities))
	for _, e := range entities {
		entry := Entry{Name: e.Name, Kind: e.Kind, IsAsset: e.IsAsset()}
		if e.Asset != nil {
			entry.CatalogID = e.Asset.CatalogID
			entry.Tags = append([]string(nil), e.Asset.Tags...)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Load reads the container at path and returns clones of the selected
// entities, expanded to include every entity they reference within the file
// so the returned set has no dangling references. With assetsOnly set, only
// asset-marked entities seed the selection (their dependencies come along
// regardless of marking).
func Load(path string, sel Selection, assetsOnly bool) ([]*entity.Entity, error) {
	entities, err := decode(path)
	if err != nil {
		return nil, err
	}

	index := make(map[entity.Ref]*entity.Entity, len(entities))
	for _, e := range entities {
		index[e.Ref()] = e
	}

	picked := make(map[*entity.Entity]struct{})
	var order []*entity.Entity
	var include func(e *entity.Entity)
	include = func(e *entity.Entity) {
		if _, done := picked[e]; done {
			return
		}
		picked[e] = struct{}{}
		order = append(order, e)
		for _, ref := range e.References() {
			if dep, ok := index[ref]; ok {
				include(dep)
			}
		}
	}

	for _, e := range entities {
		if !sel.Contains(e.Kind, e.Name) {
			continue
		}
		if assetsOnly && !e.IsAsset() {
			continue
		}
		include(e)
	}

	out := make([]*entity.Entity, 0, len(order))
	for _, e := range order {
		out = append(out, e.Clone())
	}
	return out, nil
}

func decode(path string) ([]*entity.Entity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, services.Wrap(services.ErrUnreadable, "container", "stat", path, err)
	}
	if info.IsDir() || info.Size() < MinFileSize {
		return nil, services.Wrap(services.ErrUnreadable, "container", "open", fmt.Sprintf("%s is not a container file", path), nil)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrUnreadable, "container", "read", path, err)
	}
	if len(raw) < headerSize || !bytes.Equal(raw[:len(magic)], magic[:]) {
		return nil, services.Wrap(services.ErrUnreadable, "container", "parse header", path, nil)
	}
	version := binary.BigEndian.Uint16(raw[len(magic):headerSize])
	if version > FormatVersion {
		return nil, services.Wrap(
			services.ErrIncompatibleVersion,
			"container", "parse header",
			fmt.Sprintf("%s has format version %d, newest readable is %d", path, version, FormatVersion),
			nil,
		)
	}

	zr, err := gzip.NewReader(bytes.NewReader(raw[headerSize:]))
	if err != nil {
		return nil, services.Wrap(services.ErrUnreadable, "container", "decompress", path, err)
	}
	defer zr.Close()
	// Files may carry zero padding after the stream to satisfy the size
	// floor; do not treat it as a second gzip member.
	zr.Multistream(false)

	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, services.Wrap(services.ErrUnreadable, "container", "decompress", path, err)
	}

	var doc body
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, services.Wrap(services.ErrUnreadable, "container", "decode", path, err)
	}
	return doc.Entities, nil
}
