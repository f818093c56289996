package repack

import (
	"context"

	"curator/internal/entity"
	"curator/internal/logging"
	"curator/internal/services"
)

// MetadataEdit describes a metadata update for a single asset. Nil pointer
// fields are left untouched; a pointer to the empty string clears the field.
type MetadataEdit struct {
	Name        *string
	Author      *string
	Description *string
	License     *string
	Copyright   *string
	Tags        []string
}

// UpdateMetadata applies edit to the named asset inside the container at
// path and rewrites the file. Renames go through the document so the new
// name is checked against every other entity of the same kind.
func (e *Engine) UpdateMetadata(ctx context.Context, path string, ref entity.Ref, edit MetadataEdit) error {
	return e.rewriteInPlace(ctx, path, func(ents []*entity.Entity) error {
		target, ok := e.doc.Resolve(ref)
		if !ok || !target.IsAsset() {
			return services.Wrap(services.ErrNotFound, "repack", "update metadata",
				"asset not present in container: "+ref.Name, nil)
		}
		if edit.Name != nil && *edit.Name != target.Name {
			old := target.Ref()
			if err := e.doc.Rename(target, *edit.Name); err != nil {
				return services.Wrap(services.ErrValidation, "repack", "update metadata", "rename asset", err)
			}
			// Sibling entities reference the asset by name; redirect them or
			// the rewritten container carries dangling references.
			for _, ent := range ents {
				if ent.RewriteReferences(old, target.Name) {
					e.logger.Debug("redirected references after rename",
						logging.String(logging.FieldEntity, ent.Name),
						logging.String("renamed_to", target.Name))
				}
			}
		}
		meta := target.Asset
		if edit.Author != nil {
			meta.Author = *edit.Author
		}
		if edit.Description != nil {
			meta.Description = *edit.Description
		}
		if edit.License != nil {
			meta.License = *edit.License
		}
		if edit.Copyright != nil {
			meta.Copyright = *edit.Copyright
		}
		if edit.Tags != nil {
			meta.Tags = entity.NormalizeTags(edit.Tags)
		}
		e.logger.Debug("updated asset metadata",
			logging.String(logging.FieldContainer, path),
			logging.String(logging.FieldEntity, target.Name))
		return nil
	})
}
