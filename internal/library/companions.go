package library

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"curator/internal/catalog"
	"curator/internal/fileutil"
	"curator/internal/logging"
)

// Companion files travel with a container when it moves: thumbnails, an
// asset-named subfolder, and stem-matched metadata files. The catalog
// definition file belongs to the library, never to an asset, and is always
// protected.

var thumbnailExtensions = []string{".png", ".webp", ".jpg", ".jpeg"}

var metadataExtensions = []string{".json", ".txt", ".md", ".xml"}

func protectedFile(name string) bool {
	return name == catalog.DefinitionFilename
}

// HasCompanions reports whether the container at path has any asset-specific
// companion files or folders. Generic sibling folders (textures/, maps/) are
// deliberately not treated as companions here; they may be catalog folders.
func HasCompanions(path string) bool {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parent := filepath.Dir(path)

	for _, ext := range thumbnailExtensions {
		if fileExists(filepath.Join(parent, stem+ext)) {
			return true
		}
		if fileExists(filepath.Join(parent, "thumbnail"+ext)) {
			return true
		}
	}
	if info, err := os.Stat(filepath.Join(parent, stem)); err == nil && info.IsDir() {
		return true
	}
	for _, ext := range metadataExtensions {
		if fileExists(filepath.Join(parent, stem+ext)) {
			return true
		}
		matches, _ := filepath.Glob(filepath.Join(parent, stem+"_*"+ext))
		for _, match := range matches {
			if !protectedFile(filepath.Base(match)) && fileExists(match) {
				return true
			}
		}
	}
	return false
}

// CopyCompanions copies thumbnails, the asset-named subfolder, and
// stem-matched metadata files from beside src to beside dst, renaming stems
// to match. Individual copy failures are logged and skipped; companions are
// best effort by design.
func CopyCompanions(src, dst string, logger *slog.Logger) {
	if logger == nil {
		logger = logging.NewNop()
	}
	srcStem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	dstStem := strings.TrimSuffix(filepath.Base(dst), filepath.Ext(dst))
	srcParent := filepath.Dir(src)
	dstParent := filepath.Dir(dst)

	copyOne := func(from, to string) {
		if err := fileutil.CopyFile(from, to); err != nil {
			logger.Warn("could not copy companion file",
				logging.String("from", from),
				logging.Error(err),
			)
		}
	}

	for _, ext := range thumbnailExtensions {
		if from := filepath.Join(srcParent, srcStem+ext); fileExists(from) {
			copyOne(from, filepath.Join(dstParent, dstStem+ext))
		}
		if from := filepath.Join(srcParent, "thumbnail"+ext); fileExists(from) {
			copyOne(from, filepath.Join(dstParent, "thumbnail"+ext))
		}
	}

	srcFolder := filepath.Join(srcParent, srcStem)
	if info, err := os.Stat(srcFolder); err == nil && info.IsDir() {
		if err := fileutil.CopyDir(srcFolder, filepath.Join(dstParent, dstStem)); err != nil {
			logger.Warn("could not copy companion folder",
				logging.String("from", srcFolder),
				logging.Error(err),
			)
		}
	}

	for _, ext := range metadataExtensions {
		if from := filepath.Join(srcParent, srcStem+ext); fileExists(from) {
			copyOne(from, filepath.Join(dstParent, dstStem+ext))
		}
		matches, _ := filepath.Glob(filepath.Join(srcParent, srcStem+"_*"+ext))
		for _, from := range matches {
			base := filepath.Base(from)
			if protectedFile(base) {
				continue
			}
			suffix := strings.TrimPrefix(base, srcStem)
			copyOne(from, filepath.Join(dstParent, dstStem+suffix))
		}
	}
}

// CompanionPaths lists the companion files and folders of the container at
// path, for removal alongside it. The catalog definition file is excluded.
func CompanionPaths(path string) []string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parent := filepath.Dir(path)
	var out []string

	for _, ext := range thumbnailExtensions {
		if p := filepath.Join(parent, stem+ext); fileExists(p) {
			out = append(out, p)
		}
		if p := filepath.Join(parent, "thumbnail"+ext); fileExists(p) {
			out = append(out, p)
		}
	}
	if info, err := os.Stat(filepath.Join(parent, stem)); err == nil && info.IsDir() {
		out = append(out, filepath.Join(parent, stem))
	}
	for _, ext := range metadataExtensions {
		if p := filepath.Join(parent, stem+ext); fileExists(p) {
			out = append(out, p)
		}
		matches, _ := filepath.Glob(filepath.Join(parent, stem+"_*"+ext))
		for _, match := range matches {
			if !protectedFile(filepath.Base(match)) {
				out = append(out, match)
			}
		}
	}
	return out
}

// ShouldCleanupEmptyDir reports whether a directory left behind by a move
// can be removed: it must be empty apart from hidden or OS junk files, and
// it must never hold a catalog definition file, which marks a library root.
func ShouldCleanupEmptyDir(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	if fileExists(filepath.Join(dir, catalog.DefinitionFilename)) {
		return false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") {
			continue
		}
		switch name {
		case "desktop.ini", "Thumbs.db":
			continue
		}
		return false
	}
	return true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
