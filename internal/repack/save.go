package repack

import (
	"context"
	"os"

	"github.com/google/uuid"

	"curator/internal/container"
	"curator/internal/deps"
	"curator/internal/entity"
	"curator/internal/library"
	"curator/internal/logging"
	"curator/internal/packer"
	"curator/internal/services"
)

// SaveOptions controls how in-session entities are written out as a new
// library container.
type SaveOptions struct {
	DestDir   string
	BaseName  string
	CatalogID uuid.UUID
	Tags      []string
	Author    string
	Policy    library.CollisionPolicy
}

// Save writes the referenced entities from the engine's document into a
// fresh container under opts.DestDir, marking each one as an asset if it is
// not already. The entities remain in the document afterwards; Save copies
// them out rather than moving them.
func (e *Engine) Save(ctx context.Context, refs []entity.Ref, opts SaveOptions) (string, error) {
	if len(refs) == 0 {
		return "", services.Wrap(services.ErrValidation, "repack", "save", "no entities selected", nil)
	}
	trace := newOpTrace(e.logger)

	targets := make([]*entity.Entity, 0, len(refs))
	for _, ref := range refs {
		ent, ok := e.doc.Resolve(ref)
		if !ok {
			return "", services.Wrap(services.ErrNotFound, "repack", "save",
				"entity not in session: "+ref.Name, nil)
		}
		targets = append(targets, ent)
	}

	for _, ent := range targets {
		if ent.Asset == nil {
			ent.Asset = &entity.Metadata{}
		}
		ent.Asset.CatalogID = opts.CatalogID
		if len(opts.Tags) > 0 {
			ent.Asset.Tags = entity.NormalizeTags(append(ent.Asset.Tags, opts.Tags...))
		}
		if opts.Author != "" {
			ent.Asset.Author = opts.Author
		}
	}

	base := opts.BaseName
	if base == "" {
		base = targets[0].Name
	}
	stem := library.BuildFileName(library.SanitizeName(base, e.cfg.Naming.MaxLength), e.cfg.Naming)
	if err := os.MkdirAll(opts.DestDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrWriteFailed, "repack", "save", "create destination directory", err)
	}
	dest, skip, err := library.ResolveCollision(opts.DestDir, stem, container.Extension, opts.Policy)
	if err != nil {
		return "", err
	}
	if skip {
		return "", services.Wrap(services.ErrDestinationExists, "repack", "save", "destination file exists", nil)
	}

	closure := deps.Closure{}
	for _, ent := range targets {
		part := deps.Collect(ent, e.doc)
		closure.Images = append(closure.Images, part.Images...)
		closure.Fonts = append(closure.Fonts, part.Fonts...)
		closure.Sounds = append(closure.Sounds, part.Sounds...)
		closure.Clips = append(closure.Clips, part.Clips...)
		closure.Volumetrics = append(closure.Volumetrics, part.Volumetrics...)
	}
	record := packer.Pack(closure, e.logger)
	defer func() {
		record.Restore(e.logger)
		trace.to(StateUnpacked)
	}()
	trace.to(StatePacked)

	if err := container.Write(dest, targets, e.doc); err != nil {
		trace.to(StateAborted)
		return "", err
	}
	trace.to(StateWritten)

	e.logger.Info("saved entities to container",
		logging.String("destination", dest),
		logging.Int("entities", len(targets)))
	trace.to(StateDone)
	return dest, nil
}
