package index_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"curator/internal/config"
	"curator/internal/container"
	"curator/internal/index"
	"curator/internal/testsupport"
)

func openStore(t *testing.T) (*index.Store, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	store, err := index.Open(cfg, nil)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, cfg
}

func TestOpenRequiresEnabledIndex(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Index.Enabled = false
	if _, err := index.Open(cfg, nil); err == nil {
		t.Fatalf("expected error for disabled index")
	}
}

func TestRefreshIndexesAssets(t *testing.T) {
	store, cfg := openStore(t)
	root := cfg.Library.Root
	catalogID := uuid.New()

	chair := filepath.Join(root, "chair"+container.Extension)
	chain := testsupport.AssetChain(t, root, "Chair")
	chain[0].Asset.CatalogID = catalogID
	chain[0].Asset.Tags = []string{"furniture", "wood"}
	testsupport.WriteContainer(t, chair, chain...)

	propsDir := filepath.Join(root, "props")
	if err := os.MkdirAll(propsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	nested := filepath.Join(propsDir, "table"+container.Extension)
	testsupport.WriteContainer(t, nested, testsupport.AssetChain(t, propsDir, "Table")...)

	garbage := filepath.Join(root, "garbage"+container.Extension)
	testsupport.WriteFile(t, garbage, 4096)

	ctx := context.Background()
	indexed, err := store.Refresh(ctx, root)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if indexed != 2 {
		t.Fatalf("indexed %d assets, want 2 (garbage skipped)", indexed)
	}

	records, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("all returned %d records", len(records))
	}
	if records[0].Name != "Chair" || records[0].CatalogID != catalogID {
		t.Fatalf("first record = %+v", records[0])
	}
	if len(records[0].Tags) != 2 || records[0].Tags[0] != "furniture" {
		t.Fatalf("tags = %v", records[0].Tags)
	}
	if records[0].ModifiedAt.IsZero() {
		t.Fatalf("modified timestamp not recorded")
	}
}

func TestSearchMatchesNameAndTags(t *testing.T) {
	store, cfg := openStore(t)
	root := cfg.Library.Root

	chair := filepath.Join(root, "chair"+container.Extension)
	chain := testsupport.AssetChain(t, root, "Chair")
	chain[0].Asset.Tags = []string{"seating"}
	testsupport.WriteContainer(t, chair, chain...)

	lamp := filepath.Join(root, "lamp"+container.Extension)
	testsupport.WriteContainer(t, lamp, testsupport.AssetChain(t, root, "Lamp")...)

	ctx := context.Background()
	if _, err := store.Refresh(ctx, root); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	byName, err := store.Search(ctx, "Lamp")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Lamp" {
		t.Fatalf("search by name = %+v", byName)
	}

	byTag, err := store.Search(ctx, "seating")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byTag) != 1 || byTag[0].Name != "Chair" {
		t.Fatalf("search by tag = %+v", byTag)
	}
}

func TestByCatalog(t *testing.T) {
	store, cfg := openStore(t)
	root := cfg.Library.Root
	catalogID := uuid.New()

	assigned := filepath.Join(root, "chair"+container.Extension)
	chain := testsupport.AssetChain(t, root, "Chair")
	chain[0].Asset.CatalogID = catalogID
	testsupport.WriteContainer(t, assigned, chain...)

	unassigned := filepath.Join(root, "lamp"+container.Extension)
	testsupport.WriteContainer(t, unassigned, testsupport.AssetChain(t, root, "Lamp")...)

	ctx := context.Background()
	if _, err := store.Refresh(ctx, root); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	records, err := store.ByCatalog(ctx, catalogID)
	if err != nil {
		t.Fatalf("by catalog: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Chair" {
		t.Fatalf("by catalog = %+v", records)
	}
}

func TestRefreshPrunesDeletedContainers(t *testing.T) {
	store, cfg := openStore(t)
	root := cfg.Library.Root

	chair := filepath.Join(root, "chair"+container.Extension)
	testsupport.WriteContainer(t, chair, testsupport.AssetChain(t, root, "Chair")...)

	ctx := context.Background()
	if _, err := store.Refresh(ctx, root); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := os.Remove(chair); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Refresh(ctx, root); err != nil {
		t.Fatalf("second refresh: %v", err)
	}

	records, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("stale records survived the prune: %+v", records)
	}
}

func TestInvalidateContainer(t *testing.T) {
	store, cfg := openStore(t)
	root := cfg.Library.Root

	chair := filepath.Join(root, "chair"+container.Extension)
	testsupport.WriteContainer(t, chair, testsupport.AssetChain(t, root, "Chair")...)
	lamp := filepath.Join(root, "lamp"+container.Extension)
	testsupport.WriteContainer(t, lamp, testsupport.AssetChain(t, root, "Lamp")...)

	ctx := context.Background()
	if _, err := store.Refresh(ctx, root); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := store.InvalidateContainer(ctx, chair); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	records, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Lamp" {
		t.Fatalf("records after invalidate = %+v", records)
	}
}

func TestRefreshReplacesRowsForRewrittenContainer(t *testing.T) {
	store, cfg := openStore(t)
	root := cfg.Library.Root

	path := filepath.Join(root, "lib"+container.Extension)
	testsupport.WriteContainer(t, path, testsupport.AssetChain(t, root, "Chair")...)

	ctx := context.Background()
	if _, err := store.Refresh(ctx, root); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	testsupport.WriteContainer(t, path, testsupport.AssetChain(t, root, "Table")...)
	if _, err := store.Refresh(ctx, root); err != nil {
		t.Fatalf("second refresh: %v", err)
	}

	records, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Table" {
		t.Fatalf("records = %+v, want only the rewritten content", records)
	}
}
