package bundle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"curator/internal/container"
	"curator/internal/entity"
	"curator/internal/services"
	"curator/internal/testsupport"
)

func TestBundleMergesContainers(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	chair := filepath.Join(srcDir, "chair"+container.Extension)
	table := filepath.Join(srcDir, "table"+container.Extension)
	testsupport.WriteContainer(t, chair, testsupport.AssetChain(t, srcDir, "Chair")...)
	testsupport.WriteContainer(t, table, testsupport.AssetChain(t, srcDir, "Table")...)

	result, err := New(nil).Bundle(context.Background(), Options{
		Paths:     []string{chair, table},
		OutputDir: outDir,
		Name:      "furniture",
	})
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	if result.Imported != 2 || result.Entities != 8 {
		t.Fatalf("result = %+v", result)
	}

	wantStem := "furniture_" + time.Now().Format("2006-01-02")
	if base := filepath.Base(result.Output); !strings.HasPrefix(base, wantStem) {
		t.Fatalf("output name %q lacks dated stem %q", base, wantStem)
	}
	entries, err := container.List(result.Output)
	if err != nil {
		t.Fatalf("list bundle: %v", err)
	}
	if len(entries) != 8 {
		t.Fatalf("bundle carries %d entities, want 8", len(entries))
	}
}

func TestBundleDuplicatePolicies(t *testing.T) {
	srcDir := t.TempDir()
	first := filepath.Join(srcDir, "first"+container.Extension)
	second := filepath.Join(srcDir, "second"+container.Extension)

	a := testsupport.MarkAsset(testsupport.NewObject("Chair"), uuid.Nil, "original")
	testsupport.WriteContainer(t, first, a)

	b := testsupport.MarkAsset(testsupport.NewObject("Chair"), uuid.Nil, "replacement")
	testsupport.WriteContainer(t, second, b)

	t.Run("skip keeps the first occurrence", func(t *testing.T) {
		outDir := t.TempDir()
		result, err := New(nil).Bundle(context.Background(), Options{
			Paths:      []string{first, second},
			OutputDir:  outDir,
			Duplicates: DuplicateSkip,
		})
		if err != nil {
			t.Fatalf("bundle: %v", err)
		}
		if result.Duplicates != 1 || result.Entities != 1 {
			t.Fatalf("result = %+v", result)
		}
		if tags := loadTags(t, result.Output, "Chair"); len(tags) != 1 || tags[0] != "original" {
			t.Fatalf("tags = %v, want the first occurrence", tags)
		}
	})

	t.Run("overwrite keeps the last occurrence", func(t *testing.T) {
		outDir := t.TempDir()
		result, err := New(nil).Bundle(context.Background(), Options{
			Paths:      []string{first, second},
			OutputDir:  outDir,
			Duplicates: DuplicateOverwrite,
		})
		if err != nil {
			t.Fatalf("bundle: %v", err)
		}
		if result.Duplicates != 1 || result.Entities != 1 {
			t.Fatalf("result = %+v", result)
		}
		if tags := loadTags(t, result.Output, "Chair"); len(tags) != 1 || tags[0] != "replacement" {
			t.Fatalf("tags = %v, want the last occurrence", tags)
		}
	})
}

func loadTags(t *testing.T, path, name string) []string {
	t.Helper()
	loaded, err := container.Load(path, nil, false)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	for _, e := range loaded {
		if e.Name == name && e.Asset != nil {
			return e.Asset.Tags
		}
	}
	t.Fatalf("%s not found in %s", name, path)
	return nil
}

func TestBundleSkipsBadSources(t *testing.T) {
	srcDir := t.TempDir()
	good := filepath.Join(srcDir, "good"+container.Extension)
	testsupport.WriteContainer(t, good, testsupport.AssetChain(t, srcDir, "Chair")...)
	tiny := filepath.Join(srcDir, "tiny"+container.Extension)
	testsupport.WriteFile(t, tiny, container.MinFileSize-1)
	garbage := filepath.Join(srcDir, "garbage"+container.Extension)
	testsupport.WriteFile(t, garbage, 4096)
	missing := filepath.Join(srcDir, "missing"+container.Extension)

	result, err := New(nil).Bundle(context.Background(), Options{
		Paths:     []string{good, tiny, garbage, missing},
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	if result.Imported != 1 || result.Skipped != 3 || result.Failed != 0 {
		t.Fatalf("result = %+v", result)
	}
}

func TestBundleNoUsableSources(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing"+container.Extension)
	_, err := New(nil).Bundle(context.Background(), Options{
		Paths:     []string{missing},
		OutputDir: t.TempDir(),
	})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation failure", err)
	}
}

func TestBundleSizeCeiling(t *testing.T) {
	srcDir := t.TempDir()
	big := filepath.Join(srcDir, "big"+container.Extension)
	// Incompressible payload so the on-disk file really exceeds the limit.
	data := make([]byte, 2*1024*1024)
	state := uint32(0x9e3779b9)
	for i := range data {
		state = state*1664525 + 1013904223
		data[i] = byte(state >> 24)
	}
	payload := &entity.Entity{
		Kind: entity.KindImage,
		Name: "Huge",
		Resource: &entity.Resource{
			Storage: entity.StorageEmbedded,
			Data:    data,
		},
	}
	testsupport.MarkAsset(payload, uuid.Nil)
	testsupport.WriteContainer(t, big, payload)

	_, err := New(nil).Bundle(context.Background(), Options{
		Paths:      []string{big},
		OutputDir:  t.TempDir(),
		MaxSizeMiB: 1,
	})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want size ceiling rejection", err)
	}
}

func TestBundleInsufficientSpace(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "chair"+container.Extension)
	testsupport.WriteContainer(t, src, testsupport.AssetChain(t, srcDir, "Chair")...)

	b := New(nil)
	b.statfs = func(string) (uint64, uint64, error) {
		return 1 << 30, 0, nil
	}
	_, err := b.Bundle(context.Background(), Options{
		Paths:     []string{src},
		OutputDir: t.TempDir(),
	})
	if !errors.Is(err, services.ErrWriteFailed) {
		t.Fatalf("err = %v, want write failure for full disk", err)
	}

	// A statfs probe failure must not abort the run.
	b.statfs = func(string) (uint64, uint64, error) {
		return 0, 0, errors.New("statfs unavailable")
	}
	result, err := b.Bundle(context.Background(), Options{
		Paths:     []string{src},
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("bundle after statfs failure: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("result = %+v", result)
	}
}

func TestBundleCopiesCatalogDefinitions(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "blender_assets.cats.txt"),
		[]byte("VERSION 1\n"), 0o644); err != nil {
		t.Fatalf("write definitions: %v", err)
	}
	src := filepath.Join(root, "chair"+container.Extension)
	testsupport.WriteContainer(t, src, testsupport.AssetChain(t, root, "Chair")...)

	outDir := t.TempDir()
	result, err := New(nil).Bundle(context.Background(), Options{
		Paths:       []string{src},
		OutputDir:   outDir,
		Name:        "share",
		LibraryRoot: root,
		CopyCatalog: true,
	})
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	if result.CatalogCopy == "" {
		t.Fatalf("catalog copy not produced")
	}
	if filepath.Base(result.CatalogCopy) != "share.blender_assets.cats.txt" {
		t.Fatalf("catalog copy name = %q", filepath.Base(result.CatalogCopy))
	}
	if _, err := os.Stat(result.CatalogCopy); err != nil {
		t.Fatalf("catalog copy missing: %v", err)
	}
}

func TestBundleOutputNameIncrements(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "chair"+container.Extension)
	testsupport.WriteContainer(t, src, testsupport.AssetChain(t, srcDir, "Chair")...)

	outDir := t.TempDir()
	first, err := New(nil).Bundle(context.Background(), Options{
		Paths: []string{src}, OutputDir: outDir, Name: "pack",
	})
	if err != nil {
		t.Fatalf("first bundle: %v", err)
	}
	second, err := New(nil).Bundle(context.Background(), Options{
		Paths: []string{src}, OutputDir: outDir, Name: "pack",
	})
	if err != nil {
		t.Fatalf("second bundle: %v", err)
	}
	if first.Output == second.Output {
		t.Fatalf("second bundle overwrote the first: %s", first.Output)
	}
	if !strings.HasSuffix(second.Output, "_001"+container.Extension) {
		t.Fatalf("second output %q not incremented", second.Output)
	}
}
