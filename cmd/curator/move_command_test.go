package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"curator/internal/catalog"
	"curator/internal/container"
	"curator/internal/testsupport"
)

func TestMoveCommandRelocatesContainer(t *testing.T) {
	env := setupCLITestEnv(t)

	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "chair"+container.Extension)
	testsupport.WriteContainer(t, src, testsupport.AssetChain(t, srcDir, "Chair")...)

	out, _, err := runCLI(t, []string{"move", src}, env.configPath)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	requireContains(t, out, "moved 1 file(s)")

	dest := filepath.Join(env.libraryDir, "chair"+container.Extension)
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("container not moved into the library: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source still present after move")
	}
}

func TestMoveCommandAssignsCatalog(t *testing.T) {
	env := setupCLITestEnv(t)

	catalogID := uuid.New()
	defsContent := "VERSION 1\n" + catalogID.String() + ":Props:Props\n"
	if err := os.WriteFile(filepath.Join(env.libraryDir, catalog.DefinitionFilename),
		[]byte(defsContent), 0o644); err != nil {
		t.Fatalf("write definitions: %v", err)
	}

	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "chair"+container.Extension)
	testsupport.WriteContainer(t, src, testsupport.AssetChain(t, srcDir, "Chair")...)

	// The catalog flag accepts the path form, not just the UUID.
	if _, _, err := runCLI(t, []string{"move", src, "--catalog", "Props"}, env.configPath); err != nil {
		t.Fatalf("move: %v", err)
	}

	dest := filepath.Join(env.libraryDir, "chair"+container.Extension)
	entries, err := container.List(dest)
	if err != nil {
		t.Fatalf("list moved container: %v", err)
	}
	found := false
	for _, entry := range entries {
		if entry.IsAsset && entry.Name == "Chair" {
			found = true
			if entry.CatalogID != catalogID {
				t.Fatalf("catalog = %s, want %s", entry.CatalogID, catalogID)
			}
		}
	}
	if !found {
		t.Fatalf("moved container misses the asset")
	}
}

func TestMoveCommandRejectsNamesAcrossContainers(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t,
		[]string{"move", "a" + container.Extension, "b" + container.Extension, "--name", "Chair"},
		env.configPath); err == nil {
		t.Fatalf("expected error for --name with multiple containers")
	}
}
