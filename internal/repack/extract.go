package repack

import (
	"context"
	"os"

	"github.com/google/uuid"

	"curator/internal/catalog"
	"curator/internal/container"
	"curator/internal/deps"
	"curator/internal/entity"
	"curator/internal/library"
	"curator/internal/logging"
	"curator/internal/packer"
	"curator/internal/services"
)

// extractAsset pulls the named asset out of src into its own container under
// destDir, carrying the asset's full dependency chain along and embedding
// its external resources. The source file keeps the entity but loses the
// asset marking, so the library never lists it twice.
func (e *Engine) extractAsset(ctx context.Context, src, name string, destDir string, catalogID uuid.UUID, policy library.CollisionPolicy) error {
	trace := newOpTrace(e.logger)

	entries, err := container.List(src)
	if err != nil {
		return services.Wrap(err, "repack", "extract", "list container", nil)
	}
	var kind entity.Kind
	found := false
	for _, entry := range entries {
		if entry.IsAsset && entry.Name == name {
			kind = entry.Kind
			found = true
			break
		}
	}
	if !found {
		return services.Wrap(services.ErrNotFound, "repack", "extract",
			"asset not present in container: "+name, nil)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return services.Wrap(services.ErrWriteFailed, "repack", "extract", "create destination directory", err)
	}
	stem := library.SanitizeName(name, e.cfg.Naming.MaxLength)
	dest, skip, err := library.ResolveCollision(destDir, stem, container.Extension, policy)
	if err != nil {
		return err
	}
	if skip {
		return services.Wrap(services.ErrDestinationExists, "repack", "extract", "destination file exists", nil)
	}

	sel := container.Selection{kind: []string{name}}
	loaded, err := container.Load(src, sel, false)
	if err != nil {
		return services.Wrap(err, "repack", "extract", "load selection", nil)
	}

	session, err := e.beginImport(loaded)
	if err != nil {
		trace.to(StateAborted)
		return err
	}
	defer session.Close()
	trace.to(StateStaged)
	trace.to(StateLoaded)

	target, ok := e.doc.Get(kind, name)
	if !ok || !target.IsAsset() {
		trace.to(StateAborted)
		return services.Wrap(services.ErrNotFound, "repack", "extract",
			"asset not marked after load: "+name, nil)
	}
	if err := catalog.SetCatalog(target, catalogID); err != nil {
		trace.to(StateAborted)
		return err
	}

	closure := deps.Collect(target, e.doc)
	record := packer.Pack(closure, e.logger)
	defer func() {
		record.Restore(e.logger)
		trace.to(StateUnpacked)
	}()
	trace.to(StatePacked)

	if err := container.Write(dest, []*entity.Entity{target}, e.doc); err != nil {
		trace.to(StateAborted)
		return err
	}
	trace.to(StateWritten)

	// The asset now lives in its own file; strip the marking from the
	// source so it stops appearing in the library twice.
	if err := e.clearAssetMark(ctx, src, kind, name); err != nil {
		e.logger.Warn("extracted but failed to unmark source asset",
			logging.String(logging.FieldContainer, src),
			logging.String(logging.FieldEntity, name),
			logging.Error(err))
	}

	e.logger.Info("extracted asset",
		logging.String(logging.FieldEntity, name),
		logging.String(logging.FieldKind, string(kind)),
		logging.String(logging.FieldContainer, src),
		logging.String("destination", dest))
	trace.to(StateDone)
	return nil
}

func (e *Engine) clearAssetMark(ctx context.Context, path string, kind entity.Kind, name string) error {
	return e.rewriteInPlace(ctx, path, func(ents []*entity.Entity) error {
		for _, ent := range ents {
			if ent.Kind == kind && ent.Name == name {
				ent.Asset = nil
				return nil
			}
		}
		return services.Wrap(services.ErrNotFound, "repack", "unmark",
			"entity missing from source container: "+name, nil)
	})
}
