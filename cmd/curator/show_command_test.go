package main

import (
	"path/filepath"
	"testing"

	"curator/internal/container"
	"curator/internal/testsupport"
)

func TestShowCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	path := filepath.Join(env.libraryDir, "chair"+container.Extension)
	testsupport.WriteContainer(t, path, testsupport.AssetChain(t, env.libraryDir, "Chair")...)

	out, _, err := runCLI(t, []string{"show", path}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "Chair")
	requireContains(t, out, "4 entities, 1 marked as assets")
}

func TestShowCommandUnreadableFile(t *testing.T) {
	env := setupCLITestEnv(t)

	path := filepath.Join(env.libraryDir, "garbage"+container.Extension)
	testsupport.WriteFile(t, path, 4096)

	if _, _, err := runCLI(t, []string{"show", path}, env.configPath); err == nil {
		t.Fatalf("expected error for unreadable container")
	}
}
