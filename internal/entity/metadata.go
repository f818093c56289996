package entity

import (
	"strings"

	"github.com/google/uuid"
)

// Metadata is the asset metadata record attached to entities that have been
// marked as reusable assets. An entity either has no record or exactly one.
type Metadata struct {
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
	License     string    `json:"license,omitempty"`
	Copyright   string    `json:"copyright,omitempty"`
	CatalogID   uuid.UUID `json:"catalog_id"`
	Tags        []string  `json:"tags,omitempty"`
	Preview     []byte    `json:"preview,omitempty"`
}

// Unassigned reports whether the record has no catalog assignment. The
// container format defines "unassigned" as the all-zero UUID, never an empty
// string.
func (m *Metadata) Unassigned() bool {
	return m == nil || m.CatalogID == uuid.Nil
}

// Clone returns a deep copy of the record.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	clone := *m
	clone.Tags = append([]string(nil), m.Tags...)
	clone.Preview = append([]byte(nil), m.Preview...)
	return &clone
}

// NormalizeTags drops empty and duplicate entries from the given tag list,
// preserving the order of first occurrence.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
