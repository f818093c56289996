package repack

import (
	"context"

	"github.com/google/uuid"

	"curator/internal/container"
	"curator/internal/entity"
	"curator/internal/logging"
	"curator/internal/services"
)

// rewriteInPlace loads every entity from path into the engine's document,
// applies mutate to the imported set, and writes the whole container back
// atomically. The staged residents and imports are always released, even
// when mutate fails.
func (e *Engine) rewriteInPlace(ctx context.Context, path string, mutate func([]*entity.Entity) error) error {
	trace := newOpTrace(e.logger)

	loaded, err := container.Load(path, nil, false)
	if err != nil {
		return services.Wrap(err, "repack", "rewrite", "load container", nil)
	}

	// Colliding residents are staged aside before the imports go live in
	// the document, so the trace enters Staged first.
	session, err := e.beginImport(loaded)
	if err != nil {
		trace.to(StateAborted)
		return err
	}
	defer session.Close()
	trace.to(StateStaged)
	trace.to(StateLoaded)

	if err := mutate(loaded); err != nil {
		trace.to(StateAborted)
		return err
	}

	if err := container.Write(path, loaded, e.doc); err != nil {
		trace.to(StateAborted)
		return err
	}
	trace.to(StateWritten)
	trace.to(StateDone)
	return nil
}

// updateCatalogInPlace reassigns the catalog of assets inside path without
// relocating the file. A nil names slice targets every asset in the
// container; otherwise every name must match a marked asset.
func (e *Engine) updateCatalogInPlace(ctx context.Context, path string, catalogID uuid.UUID, names []string) error {
	return e.rewriteInPlace(ctx, path, func(ents []*entity.Entity) error {
		matched := 0
		for _, ent := range ents {
			if !ent.IsAsset() {
				continue
			}
			if names != nil && !containsName(names, ent.Name) {
				continue
			}
			ent.Asset.CatalogID = catalogID
			matched++
			e.logger.Debug("reassigned catalog",
				logging.String(logging.FieldEntity, ent.Name),
				logging.String(logging.FieldKind, string(ent.Kind)),
				logging.String("catalog_id", catalogID.String()))
		}
		if matched == 0 {
			return services.Wrap(services.ErrNotFound, "repack", "update catalog", "no matching assets in container", nil)
		}
		return nil
	})
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
