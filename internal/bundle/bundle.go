package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"curator/internal/catalog"
	"curator/internal/container"
	"curator/internal/document"
	"curator/internal/fileutil"
	"curator/internal/library"
	"curator/internal/logging"
	"curator/internal/services"
)

// DuplicatePolicy decides what happens when two source containers carry an
// entity with the same kind and name.
type DuplicatePolicy string

const (
	// DuplicateSkip keeps the first occurrence and drops later ones.
	DuplicateSkip DuplicatePolicy = "skip"
	// DuplicateOverwrite lets later occurrences replace earlier ones.
	DuplicateOverwrite DuplicatePolicy = "overwrite"
)

// ParseDuplicatePolicy validates a policy string from config or flags.
func ParseDuplicatePolicy(value string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(value))) {
	case DuplicateSkip:
		return DuplicateSkip, nil
	case DuplicateOverwrite:
		return DuplicateOverwrite, nil
	default:
		return "", services.Wrap(services.ErrValidation, "bundle", "parse policy",
			fmt.Sprintf("unknown duplicate policy %q", value), nil)
	}
}

// Options parameterizes a bundling run.
type Options struct {
	Paths       []string
	OutputDir   string
	Name        string
	LibraryRoot string
	Duplicates  DuplicatePolicy
	MaxSizeMiB  int
	WarnSizeMiB int
	CopyCatalog bool
	Progress    func(done, total int)
}

// Result reports what a bundling run produced.
type Result struct {
	Output      string
	CatalogCopy string
	Entities    int
	Imported    int
	Skipped     int
	Failed      int
	Duplicates  int
	Problems    []string
}

// Bundler merges many library containers into one shareable container.
type Bundler struct {
	logger *slog.Logger
	statfs func(path string) (total, free uint64, err error)
}

// New builds a bundler.
func New(logger *slog.Logger) *Bundler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Bundler{
		logger: logger.With(logging.String(logging.FieldComponent, "bundle")),
		statfs: realStatfs,
	}
}

// Bundle merges opts.Paths into a single dated container under
// opts.OutputDir. Unreadable or undersized sources are skipped; a size
// ceiling or insufficient destination space aborts before anything is
// written.
func (b *Bundler) Bundle(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Paths) == 0 {
		return nil, services.Wrap(services.ErrValidation, "bundle", "bundle", "no source containers", nil)
	}
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = "bundle"
	}
	if opts.Duplicates == "" {
		opts.Duplicates = DuplicateSkip
	}

	result := &Result{}
	sources, totalBytes := b.validateSources(opts.Paths, result)
	if len(sources) == 0 {
		return result, services.Wrap(services.ErrValidation, "bundle", "bundle", "no usable source containers", nil)
	}

	if opts.MaxSizeMiB > 0 && totalBytes > int64(opts.MaxSizeMiB)*1024*1024 {
		return result, services.Wrap(services.ErrValidation, "bundle", "bundle",
			fmt.Sprintf("sources total %d MiB, limit is %d MiB", totalBytes/1024/1024, opts.MaxSizeMiB), nil)
	}
	if opts.WarnSizeMiB > 0 && totalBytes > int64(opts.WarnSizeMiB)*1024*1024 {
		b.logger.Warn("bundle will be large",
			logging.Int64("total_bytes", totalBytes),
			logging.Int("warn_mib", opts.WarnSizeMiB))
	}
	if err := b.checkFreeSpace(opts.OutputDir, totalBytes); err != nil {
		return result, err
	}

	doc := document.New()
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			result.Failed += len(sources) - i
			return result, services.Wrap(services.ErrWriteFailed, "bundle", "bundle", "operation canceled", err)
		}
		if err := b.mergeOne(src, doc, opts.Duplicates, result); err != nil {
			if len(result.Problems) < 5 {
				result.Problems = append(result.Problems, filepath.Base(src))
			}
			if services.Skippable(err) {
				result.Skipped++
				b.logger.Warn("skipping container",
					logging.String(logging.FieldContainer, src),
					logging.Error(err))
			} else {
				result.Failed++
				b.logger.Error("merge failed",
					logging.String(logging.FieldContainer, src),
					logging.Error(err))
			}
		} else {
			result.Imported++
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(sources))
		}
	}
	if doc.Len() == 0 {
		return result, services.Wrap(services.ErrValidation, "bundle", "bundle", "nothing to bundle", nil)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return result, services.Wrap(services.ErrWriteFailed, "bundle", "bundle", "create output directory", err)
	}
	stem := fmt.Sprintf("%s_%s", library.SanitizeName(name, 128), time.Now().Format("2006-01-02"))
	output, err := library.IncrementFilename(opts.OutputDir, stem, container.Extension)
	if err != nil {
		return result, err
	}
	if err := container.Write(output, doc.All(), doc); err != nil {
		return result, err
	}
	result.Output = output
	result.Entities = doc.Len()

	if opts.CopyCatalog && opts.LibraryRoot != "" {
		result.CatalogCopy = b.copyCatalogDefinitions(opts.LibraryRoot, opts.OutputDir, name)
	}

	b.logger.Info("bundle written",
		logging.String(logging.FieldContainer, output),
		logging.Int("entities", result.Entities),
		logging.Int("sources", result.Imported))
	return result, nil
}

// validateSources filters opts.Paths down to real container files and sums
// their sizes. Rejected paths count as skipped.
func (b *Bundler) validateSources(paths []string, result *Result) ([]string, int64) {
	sources := make([]string, 0, len(paths))
	var total int64
	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			result.Skipped++
			b.logger.Warn("source not found", logging.String(logging.FieldContainer, path))
		case filepath.Ext(path) != container.Extension:
			result.Skipped++
			b.logger.Warn("not a container file", logging.String(logging.FieldContainer, path))
		case info.Size() < container.MinFileSize:
			result.Skipped++
			b.logger.Warn("file too small to be a container", logging.String(logging.FieldContainer, path))
		default:
			sources = append(sources, path)
			total += info.Size()
		}
	}
	return sources, total
}

func (b *Bundler) mergeOne(src string, doc *document.Document, policy DuplicatePolicy, result *Result) error {
	loaded, err := container.Load(src, nil, false)
	if err != nil {
		return err
	}
	for _, ent := range loaded {
		existing, dup := doc.Resolve(ent.Ref())
		if dup {
			result.Duplicates++
			if policy == DuplicateSkip {
				continue
			}
			doc.Remove(existing)
		}
		if err := doc.Add(ent); err != nil {
			return services.Wrap(services.ErrWriteFailed, "bundle", "merge", "add entity", err)
		}
	}
	return nil
}

// copyCatalogDefinitions places a copy of the library's catalog definition
// file beside the bundle so the receiver sees the same catalog tree. Best
// effort; a failure is logged, never fatal.
func (b *Bundler) copyCatalogDefinitions(libraryRoot, outputDir, name string) string {
	src := filepath.Join(libraryRoot, catalog.DefinitionFilename)
	if _, err := os.Stat(src); err != nil {
		return ""
	}
	stem := fmt.Sprintf("%s.blender_assets.cats", library.SanitizeName(name, 128))
	dest, err := library.IncrementFilename(outputDir, stem, ".txt")
	if err == nil {
		err = fileutil.CopyFile(src, dest)
	}
	if err != nil {
		b.logger.Warn("failed to copy catalog definitions", logging.Error(err))
		return ""
	}
	return dest
}

// checkFreeSpace refuses to start when the destination filesystem cannot
// hold the merged container. The merged file is never larger than the sum
// of its sources.
func (b *Bundler) checkFreeSpace(outputDir string, needed int64) error {
	probe := outputDir
	if _, err := os.Stat(probe); err != nil {
		probe = filepath.Dir(probe)
	}
	_, free, err := b.statfs(probe)
	if err != nil {
		b.logger.Warn("could not determine free space", logging.Error(err))
		return nil
	}
	if free < uint64(needed) {
		return services.Wrap(services.ErrWriteFailed, "bundle", "bundle",
			fmt.Sprintf("insufficient space at destination: need %d bytes, have %d", needed, free), nil)
	}
	return nil
}

func realStatfs(path string) (uint64, uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0, err
	}
	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	return total, free, nil
}
