package packer

import (
	"log/slog"
	"os"

	"curator/internal/deps"
	"curator/internal/entity"
	"curator/internal/logging"
)

// Record remembers which resources were temporarily embedded so they can be
// returned to their prior external-reference state after the write.
type Record struct {
	packed   []*entity.Entity
	restored bool
}

// Pack embeds the bytes of every external resource in the closure so the
// entities become self-contained for writing. Resources that are already
// embedded, have no real path, or are builtin placeholders are left alone.
// Volumetric resources cannot be embedded by the container format; they keep
// their external references and a warning is logged. A single unreadable
// resource is likewise a warning, not a failure: it stays unembedded and the
// operation proceeds.
func Pack(closure deps.Closure, logger *slog.Logger) *Record {
	if logger == nil {
		logger = logging.NewNop()
	}
	record := &Record{}

	for _, volumetric := range closure.Volumetrics {
		if res := volumetric.Resource; res != nil && res.Storage == entity.StorageExternal && res.Path != "" {
			logger.Warn("volumetric resource cannot be embedded; keeping external reference",
				logging.String(logging.FieldEntity, volumetric.Name),
				logging.String("path", res.Path),
			)
		}
	}

	embeddable := make([]*entity.Entity, 0)
	embeddable = append(embeddable, closure.Images...)
	embeddable = append(embeddable, closure.Fonts...)
	embeddable = append(embeddable, closure.Sounds...)
	embeddable = append(embeddable, closure.Clips...)

	for _, e := range embeddable {
		res := e.Resource
		if res == nil || res.Storage != entity.StorageExternal {
			continue
		}
		if res.Path == "" || res.Path == entity.BuiltinPath {
			continue
		}
		data, err := os.ReadFile(res.Path)
		if err != nil {
			logger.Warn("could not pack resource; leaving external reference",
				logging.String(logging.FieldEntity, e.Name),
				logging.String(logging.FieldKind, string(e.Kind)),
				logging.String("path", res.Path),
				logging.Error(err),
			)
			continue
		}
		res.Data = data
		res.Storage = entity.StorageEmbedded
		record.packed = append(record.packed, e)
	}
	return record
}

// Restore unembeds every resource the record tracked, returning each to its
// external-reference state. The original path was kept through packing, so
// this is "restore from original source", not "keep the embedded copy".
// Restore is idempotent and must run whether or not the write succeeded.
func (r *Record) Restore(logger *slog.Logger) {
	if r == nil || r.restored {
		return
	}
	r.restored = true
	if logger == nil {
		logger = logging.NewNop()
	}
	for _, e := range r.packed {
		res := e.Resource
		if res == nil || res.Storage != entity.StorageEmbedded {
			continue
		}
		res.Data = nil
		res.Storage = entity.StorageExternal
		logger.Debug("restored resource to external reference",
			logging.String(logging.FieldEntity, e.Name),
			logging.String("path", res.Path),
		)
	}
	r.packed = nil
}

// Count reports how many resources were embedded.
func (r *Record) Count() int {
	if r == nil {
		return 0
	}
	return len(r.packed)
}
