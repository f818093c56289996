package container_test

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"curator/internal/container"
	"curator/internal/entity"
	"curator/internal/services"
	"curator/internal/testsupport"
)

func TestWriteThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chair"+container.Extension)
	chain := testsupport.AssetChain(t, dir, "Chair")
	testsupport.WriteContainer(t, path, chain...)

	loaded, err := container.Load(path, nil, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != len(chain) {
		t.Fatalf("loaded %d entities, want %d", len(loaded), len(chain))
	}
	byRef := make(map[entity.Ref]*entity.Entity)
	for _, e := range loaded {
		byRef[e.Ref()] = e
	}
	object, ok := byRef[entity.Ref{Kind: entity.KindObject, Name: "Chair"}]
	if !ok {
		t.Fatalf("object missing after round trip")
	}
	if !object.IsAsset() {
		t.Fatalf("asset marking lost in round trip")
	}
}

func TestLoadSelectionPullsInFileClosure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib"+container.Extension)
	chair := testsupport.AssetChain(t, dir, "Chair")
	table := testsupport.AssetChain(t, dir, "Table")
	testsupport.WriteContainer(t, path, append(chair, table...)...)

	sel := container.Selection{entity.KindObject: []string{"Chair"}}
	loaded, err := container.Load(path, sel, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 4 {
		t.Fatalf("loaded %d entities, want the chair chain of 4", len(loaded))
	}
	for _, e := range loaded {
		if e.Name == "Table" || e.Name == "Table_mat" {
			t.Fatalf("selection leaked unrelated entity %q", e.Name)
		}
	}
}

func TestLoadAssetsOnlySkipsUnmarkedSeeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mixed"+container.Extension)
	chain := testsupport.AssetChain(t, dir, "Chair")
	loose := &entity.Entity{Kind: entity.KindMaterial, Name: "Loose"}
	testsupport.WriteContainer(t, path, append(chain, loose)...)

	loaded, err := container.Load(path, nil, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, e := range loaded {
		if e.Name == "Loose" {
			t.Fatalf("assetsOnly load included the unmarked loose material")
		}
	}
	// The asset's unmarked dependencies still come along.
	if len(loaded) != 4 {
		t.Fatalf("loaded %d entities, want 4", len(loaded))
	}
}

func TestLoadReturnsClones(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c"+container.Extension)
	chain := testsupport.AssetChain(t, dir, "Chair")
	testsupport.WriteContainer(t, path, chain...)

	first, err := container.Load(path, nil, false)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	first[0].Name = "Mutated"

	second, err := container.Load(path, nil, false)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	for _, e := range second {
		if e.Name == "Mutated" {
			t.Fatalf("mutating a loaded entity leaked into a later load")
		}
	}
}

func TestListReportsAssetMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c"+container.Extension)
	catalogID := uuid.New()
	object := testsupport.MarkAsset(testsupport.NewObject("Chair"), catalogID, "wood")
	testsupport.WriteContainer(t, path, object)

	entries, err := container.List(path)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	entry := entries[0]
	if !entry.IsAsset || entry.CatalogID != catalogID || len(entry.Tags) != 1 {
		t.Fatalf("entry lost asset metadata: %+v", entry)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk"+container.Extension)
	testsupport.WriteFile(t, path, 4096)

	_, err := container.Load(path, nil, false)
	if !errors.Is(err, services.ErrUnreadable) {
		t.Fatalf("err = %v, want ErrUnreadable", err)
	}
}

func TestLoadRejectsUndersizedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny"+container.Extension)
	testsupport.WriteFile(t, path, container.MinFileSize-1)

	_, err := container.List(path)
	if !errors.Is(err, services.ErrUnreadable) {
		t.Fatalf("err = %v, want ErrUnreadable", err)
	}
}

func TestLoadRejectsNewerFormatVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "future"+container.Extension)
	writeVersioned(t, path, container.FormatVersion+1)

	_, err := container.Load(path, nil, false)
	if !errors.Is(err, services.ErrIncompatibleVersion) {
		t.Fatalf("err = %v, want ErrIncompatibleVersion", err)
	}
}

func TestWriteEmptySetFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty"+container.Extension)
	err := container.Write(path, nil, testsupport.NewDocument(t))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("failed write left a file behind")
	}
}

func TestWriteReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c"+container.Extension)
	testsupport.WriteContainer(t, path, testsupport.NewObject("First"))
	testsupport.WriteContainer(t, path, testsupport.NewObject("Second"))

	entries, err := container.List(path)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Second" {
		t.Fatalf("destination not replaced: %+v", entries)
	}
	leftovers, err := filepath.Glob(filepath.Join(dir, ".tmp_*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestWriteAutoIncludesClosure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c"+container.Extension)
	chain := testsupport.AssetChain(t, dir, "Chair")
	doc := testsupport.NewDocument(t, chain...)

	// Request only the object; its chain must come along.
	if err := container.Write(path, chain[:1], doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := container.List(path)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("wrote %d entities, want the full chain of 4", len(entries))
	}
}

// writeVersioned crafts a structurally valid container carrying an arbitrary
// format version.
func writeVersioned(t *testing.T, path string, version uint16) {
	t.Helper()

	var buf bytes.Buffer
	buf.Write([]byte("BSHELF\x00\x00"))
	var verBytes [2]byte
	binary.BigEndian.PutUint16(verBytes[:], version)
	buf.Write(verBytes[:])
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(`{"entities":[]}`)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if pad := int(container.MinFileSize) - buf.Len(); pad > 0 {
		buf.Write(make([]byte, pad))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write crafted container: %v", err)
	}
}
