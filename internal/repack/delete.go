package repack

import (
	"context"

	"curator/internal/container"
	"curator/internal/entity"
	"curator/internal/logging"
	"curator/internal/services"
)

// deleteAssets removes the named assets from the container at path. A nil
// names slice removes every asset. When nothing marked would remain, the
// whole file is discarded along with its companions rather than rewritten.
func (e *Engine) deleteAssets(ctx context.Context, path string, names []string) error {
	trace := newOpTrace(e.logger)

	entries, err := container.List(path)
	if err != nil {
		return services.Wrap(err, "repack", "delete", "list container", nil)
	}
	assets := make(map[string]entity.Kind)
	for _, entry := range entries {
		if entry.IsAsset {
			assets[entry.Name] = entry.Kind
		}
	}
	if len(assets) == 0 {
		return services.Wrap(services.ErrNotFound, "repack", "delete", "container holds no assets", nil)
	}

	if names == nil {
		for name := range assets {
			names = append(names, name)
		}
	} else {
		for _, name := range names {
			if _, ok := assets[name]; !ok {
				return services.Wrap(services.ErrNotFound, "repack", "delete",
					"asset not present in container: "+name, nil)
			}
		}
	}

	if len(names) == len(assets) {
		// Nothing marked would survive the rewrite; drop the file.
		if err := e.trash.DiscardWithCompanions(path); err != nil {
			return services.Wrap(services.ErrWriteFailed, "repack", "delete", "discard container", err)
		}
		e.logger.Info("discarded container",
			logging.String(logging.FieldContainer, path),
			logging.Int("assets", len(names)))
		trace.to(StateDone)
		return nil
	}

	loaded, err := container.Load(path, nil, false)
	if err != nil {
		return services.Wrap(err, "repack", "delete", "load container", nil)
	}

	session, err := e.beginImport(loaded)
	if err != nil {
		trace.to(StateAborted)
		return err
	}
	defer session.Close()
	trace.to(StateStaged)
	trace.to(StateLoaded)

	doomed := make(map[entity.Ref]struct{}, len(names))
	for _, name := range names {
		doomed[entity.Ref{Kind: assets[name], Name: name}] = struct{}{}
	}
	remainder := make([]*entity.Entity, 0, len(loaded)-len(names))
	for _, ent := range loaded {
		if _, gone := doomed[ent.Ref()]; gone {
			e.doc.Remove(ent)
			continue
		}
		remainder = append(remainder, ent)
	}

	if err := container.Write(path, remainder, e.doc); err != nil {
		trace.to(StateAborted)
		return err
	}
	trace.to(StateWritten)

	e.logger.Info("removed assets from container",
		logging.String(logging.FieldContainer, path),
		logging.Int("removed", len(names)))
	trace.to(StateDone)
	return nil
}
