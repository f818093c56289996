package library_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"curator/internal/catalog"
	"curator/internal/config"
	"curator/internal/library"
	"curator/internal/testsupport"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Chair", "Chair"},
		{"a/b\\c", "a_b_c"},
		{`bad<>:"|?*name`, "bad_______name"},
		{"trailing. ", "trailing"},
		{"", "asset"},
		{"...   ", "asset"},
	}
	for _, tc := range cases {
		if got := library.SanitizeName(tc.in, 200); got != tc.want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeNameBoundsLength(t *testing.T) {
	long := strings.Repeat("x", 500)
	if got := library.SanitizeName(long, 40); len(got) != 40 {
		t.Fatalf("len = %d, want 40", len(got))
	}
}

func TestSanitizeNameTruncatesOnRuneBoundary(t *testing.T) {
	// Each rune is 2 bytes; a 5-byte limit lands mid-rune.
	got := library.SanitizeName(strings.Repeat("é", 10), 5)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if got != "éé" {
		t.Fatalf("SanitizeName = %q, want %q", got, "éé")
	}

	// A limit smaller than the first rune falls back rather than emitting
	// an empty or broken name.
	if got := library.SanitizeName("日本語", 2); got != "asset" {
		t.Fatalf("SanitizeName = %q, want %q", got, "asset")
	}
}

func TestBuildFileName(t *testing.T) {
	naming := config.Naming{Prefix: "asset", Suffix: "v2", MaxLength: 200}
	// A prefix that sanitizes to the fallback word is dropped rather than
	// applied; "asset" is the sanitizer's own fallback.
	got := library.BuildFileName("Chair", naming)
	if got != "Chair_v2" {
		t.Fatalf("BuildFileName = %q, want %q", got, "Chair_v2")
	}

	naming = config.Naming{Prefix: "lib", MaxLength: 200}
	if got := library.BuildFileName("Chair", naming); got != "lib_Chair" {
		t.Fatalf("BuildFileName = %q, want %q", got, "lib_Chair")
	}
}

func TestIncrementFilename(t *testing.T) {
	dir := t.TempDir()
	first, err := library.IncrementFilename(dir, "chair", ".bshelf")
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if filepath.Base(first) != "chair.bshelf" {
		t.Fatalf("first candidate = %q", first)
	}
	testsupport.WriteFile(t, first, 1)

	second, err := library.IncrementFilename(dir, "chair", ".bshelf")
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if filepath.Base(second) != "chair_001.bshelf" {
		t.Fatalf("second candidate = %q", second)
	}
	testsupport.WriteFile(t, second, 1)

	third, err := library.IncrementFilename(dir, "chair", ".bshelf")
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if filepath.Base(third) != "chair_002.bshelf" {
		t.Fatalf("third candidate = %q", third)
	}
}

func TestResolveCollisionPolicies(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "chair.bshelf")
	testsupport.WriteFile(t, existing, 1)

	path, skip, err := library.ResolveCollision(dir, "chair", ".bshelf", library.PolicyOverwrite)
	if err != nil || skip || path != existing {
		t.Fatalf("overwrite: path=%q skip=%v err=%v", path, skip, err)
	}

	path, skip, err = library.ResolveCollision(dir, "chair", ".bshelf", library.PolicySkip)
	if err != nil || !skip || path != existing {
		t.Fatalf("skip: path=%q skip=%v err=%v", path, skip, err)
	}

	path, skip, err = library.ResolveCollision(dir, "chair", ".bshelf", library.PolicyIncrement)
	if err != nil || skip || filepath.Base(path) != "chair_001.bshelf" {
		t.Fatalf("increment: path=%q skip=%v err=%v", path, skip, err)
	}

	// No collision: every policy returns the plain name.
	path, skip, err = library.ResolveCollision(dir, "table", ".bshelf", library.PolicySkip)
	if err != nil || skip || filepath.Base(path) != "table.bshelf" {
		t.Fatalf("fresh: path=%q skip=%v err=%v", path, skip, err)
	}
}

func TestHasCompanionsAndCompanionPaths(t *testing.T) {
	dir := t.TempDir()
	containerPath := filepath.Join(dir, "chair.bshelf")
	testsupport.WriteFile(t, containerPath, 1)

	if library.HasCompanions(containerPath) {
		t.Fatalf("bare container reported companions")
	}

	thumb := filepath.Join(dir, "chair.png")
	note := filepath.Join(dir, "chair_notes.txt")
	testsupport.WriteFile(t, thumb, 1)
	testsupport.WriteFile(t, note, 1)

	if !library.HasCompanions(containerPath) {
		t.Fatalf("companions not detected")
	}
	paths := library.CompanionPaths(containerPath)
	if len(paths) != 2 {
		t.Fatalf("CompanionPaths = %v, want thumbnail and notes", paths)
	}
}

func TestCopyCompanionsRenamesStems(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := filepath.Join(srcDir, "chair.bshelf")
	dst := filepath.Join(dstDir, "chair_001.bshelf")
	testsupport.WriteFile(t, src, 1)
	testsupport.WriteFile(t, filepath.Join(srcDir, "chair.png"), 1)
	testsupport.WriteFile(t, filepath.Join(srcDir, "chair_meta.json"), 1)

	library.CopyCompanions(src, dst, nil)

	for _, want := range []string{"chair_001.png", "chair_001_meta.json"} {
		if _, err := os.Stat(filepath.Join(dstDir, want)); err != nil {
			t.Fatalf("companion %q not copied with renamed stem: %v", want, err)
		}
	}
}

func TestShouldCleanupEmptyDirProtectsLibraryRoots(t *testing.T) {
	empty := t.TempDir()
	if !library.ShouldCleanupEmptyDir(empty) {
		t.Fatalf("empty dir not eligible for cleanup")
	}

	junkOnly := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(junkOnly, ".DS_Store"), 1)
	testsupport.WriteFile(t, filepath.Join(junkOnly, "Thumbs.db"), 1)
	if !library.ShouldCleanupEmptyDir(junkOnly) {
		t.Fatalf("dir with only junk files not eligible for cleanup")
	}

	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, catalog.DefinitionFilename), 1)
	if library.ShouldCleanupEmptyDir(root) {
		t.Fatalf("library root eligible for cleanup")
	}

	occupied := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(occupied, "other.bshelf"), 1)
	if library.ShouldCleanupEmptyDir(occupied) {
		t.Fatalf("occupied dir eligible for cleanup")
	}
}

func TestTrashDiscard(t *testing.T) {
	base := t.TempDir()
	trashDir := filepath.Join(base, "trash")
	trash := library.NewTrash(trashDir, nil)

	victim := filepath.Join(base, "chair.bshelf")
	testsupport.WriteFile(t, victim, 1)
	if err := trash.Discard(victim); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, err := os.Stat(victim); !os.IsNotExist(err) {
		t.Fatalf("source still present after discard")
	}
	if _, err := os.Stat(filepath.Join(trashDir, "chair.bshelf")); err != nil {
		t.Fatalf("trashed file missing: %v", err)
	}

	// A second discard of the same name increments inside the trash.
	again := filepath.Join(base, "chair.bshelf")
	testsupport.WriteFile(t, again, 1)
	if err := trash.Discard(again); err != nil {
		t.Fatalf("second discard: %v", err)
	}
	if _, err := os.Stat(filepath.Join(trashDir, "chair_001.bshelf")); err != nil {
		t.Fatalf("trash collision not incremented: %v", err)
	}
}

func TestTrashDiscardMissingIsNoOp(t *testing.T) {
	trash := library.NewTrash("", nil)
	if err := trash.Discard(filepath.Join(t.TempDir(), "never-existed.bshelf")); err != nil {
		t.Fatalf("discard of missing path: %v", err)
	}
}

func TestTrashPermanentDeleteWithoutDir(t *testing.T) {
	trash := library.NewTrash("", nil)
	victim := filepath.Join(t.TempDir(), "chair.bshelf")
	testsupport.WriteFile(t, victim, 1)
	if err := trash.Discard(victim); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, err := os.Stat(victim); !os.IsNotExist(err) {
		t.Fatalf("file survived permanent delete")
	}
}

func TestAcquireLockRejectsSecondHolder(t *testing.T) {
	root := t.TempDir()
	lock, err := library.AcquireLock(root)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	defer lock.Release()

	if _, err := library.AcquireLock(root); err == nil {
		t.Fatalf("second acquire succeeded while lock held")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	second, err := library.AcquireLock(root)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	_ = second.Release()
}
