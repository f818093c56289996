package repack

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"curator/internal/catalog"
	"curator/internal/container"
	"curator/internal/entity"
	"curator/internal/library"
	"curator/internal/logging"
	"curator/internal/services"
)

// catalogSegmentMaxLength bounds each directory segment derived from a
// catalog path so deep catalog trees cannot produce unusable paths.
const catalogSegmentMaxLength = 64

// Target names a container and optionally a subset of its assets. An empty
// Names slice addresses every asset in the file.
type Target struct {
	Path  string
	Names []string
}

// MoveOptions parameterizes a batch move into the library.
type MoveOptions struct {
	LibraryRoot          string
	Defs                 *catalog.Definitions
	CatalogID            uuid.UUID
	UseCatalogSubfolders bool
	Policy               library.CollisionPolicy
	Progress             func(done, total int)
}

// Move relocates the targeted assets to the catalog's place in the library.
// Per target it picks the cheapest viable strategy: containers already at
// the destination are rewritten in place, containers whose assets are all
// targeted move whole, and partial selections are extracted into new files.
// Unreadable or missing containers are skipped, not fatal.
func (e *Engine) Move(ctx context.Context, targets []Target, opts MoveOptions) Summary {
	var summary Summary
	destDir := e.destinationDir(opts)

	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			summary.Failed += len(targets) - i
			summary.addProblem("operation canceled")
			break
		}
		if err := e.moveOne(ctx, target, destDir, opts, &summary); err != nil {
			summary.addProblem(filepath.Base(target.Path))
			if services.Skippable(err) {
				summary.Skipped++
				e.logger.Warn("skipping container",
					logging.String(logging.FieldContainer, target.Path),
					logging.Error(err))
			} else {
				summary.Failed++
				e.logger.Error("move failed",
					logging.String(logging.FieldContainer, target.Path),
					logging.Error(err))
			}
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(targets))
		}
	}
	return summary
}

func (e *Engine) moveOne(ctx context.Context, target Target, destDir string, opts MoveOptions, summary *Summary) error {
	entries, err := container.List(target.Path)
	if err != nil {
		return services.Wrap(err, "repack", "move", "list container", nil)
	}

	assetKinds := make(map[string]entity.Kind)
	for _, entry := range entries {
		if entry.IsAsset {
			assetKinds[entry.Name] = entry.Kind
		}
	}
	if len(assetKinds) == 0 {
		return services.Wrap(services.ErrNotFound, "repack", "move", "container holds no assets", nil)
	}

	names := target.Names
	if len(names) == 0 {
		names = make([]string, 0, len(assetKinds))
		for name := range assetKinds {
			names = append(names, name)
		}
	} else {
		for _, name := range names {
			if _, ok := assetKinds[name]; !ok {
				return services.Wrap(services.ErrNotFound, "repack", "move",
					"asset not present in container: "+name, nil)
			}
		}
	}

	samePath := sameDir(filepath.Dir(target.Path), destDir)
	if samePath && library.HasCompanions(target.Path) {
		// Files with companions live one level deeper than the catalog
		// directory; check that layout too.
		samePath = false
	}

	switch ChooseStrategy(samePath, len(names), len(assetKinds)) {
	case StrategyInPlace:
		sel := names
		if len(names) == len(assetKinds) {
			sel = nil
		}
		if err := e.updateCatalogInPlace(ctx, target.Path, opts.CatalogID, sel); err != nil {
			return err
		}
		summary.Updated++
	case StrategyMoveFile:
		if err := e.moveWholeFile(ctx, target.Path, destDir, opts.CatalogID, opts.Policy); err != nil {
			return err
		}
		summary.Moved++
	case StrategyExtract:
		for _, name := range names {
			if err := e.extractAsset(ctx, target.Path, name, destDir, opts.CatalogID, opts.Policy); err != nil {
				return err
			}
			summary.Extracted++
		}
	}
	return nil
}

// Delete removes the targeted assets from their containers. Containers left
// without any marked asset are discarded whole.
func (e *Engine) Delete(ctx context.Context, targets []Target) Summary {
	var summary Summary
	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			summary.Failed += len(targets) - i
			summary.addProblem("operation canceled")
			break
		}
		var names []string
		if len(target.Names) > 0 {
			names = target.Names
		}
		err := e.deleteAssets(ctx, target.Path, names)
		switch {
		case err == nil:
			summary.Removed++
		case services.Skippable(err):
			summary.Skipped++
			summary.addProblem(filepath.Base(target.Path))
			e.logger.Warn("skipping container",
				logging.String(logging.FieldContainer, target.Path),
				logging.Error(err))
		default:
			summary.Failed++
			summary.addProblem(filepath.Base(target.Path))
			e.logger.Error("delete failed",
				logging.String(logging.FieldContainer, target.Path),
				logging.Error(err))
		}
	}
	return summary
}

// destinationDir maps the catalog assignment to a directory under the
// library root. Unassigned assets and flat layouts land in the root itself.
func (e *Engine) destinationDir(opts MoveOptions) string {
	root := opts.LibraryRoot
	if root == "" {
		root = e.cfg.Library.Root
	}
	if !opts.UseCatalogSubfolders || opts.CatalogID == uuid.Nil || opts.Defs == nil {
		return root
	}
	catalogPath, ok := opts.Defs.PathForID(opts.CatalogID)
	if !ok || catalogPath == "" {
		return root
	}
	parts := strings.Split(catalogPath, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := library.SanitizeName(part, catalogSegmentMaxLength)
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return filepath.Join(append([]string{root}, segments...)...)
}

func sameDir(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
