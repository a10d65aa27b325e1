package assembly

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ning0612/apkrepack/internal/domain"
	"github.com/Ning0612/apkrepack/internal/testutil"
)

// buildTree creates the canonical unpacked-package fixture
func buildTree(t *testing.T) string {
	t.Helper()

	dir, cleanup := testutil.TempDir(t)
	t.Cleanup(cleanup)

	testutil.CreateTestFile(t, dir, "AndroidManifest.xml", []byte("<manifest/>"))
	testutil.CreateTestFile(t, dir, "resources.arsc", []byte{0x02, 0x00, 0x0c, 0x00})
	testutil.CreateTestFile(t, dir, "classes.dex", []byte("dex\n035"))
	testutil.CreateTestDir(t, dir, "res/drawable")
	testutil.CreateTestFile(t, dir, "res/drawable/a.png", []byte{0x89, 'P', 'N', 'G'})
	testutil.CreateTestDir(t, dir, "META-INF")
	testutil.CreateTestFile(t, dir, "META-INF/CERT.SF", []byte("Signature-Version: 1.0"))
	testutil.CreateTestDir(t, dir, ".hidden")
	testutil.CreateTestFile(t, dir, ".hidden/file", []byte("x"))

	return dir
}

func TestAssemble_Scenario(t *testing.T) {
	dir := buildTree(t)

	plan, err := Assemble(dir)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	want := []struct {
		name   string
		method domain.CompressionMode
	}{
		{"AndroidManifest.xml", domain.Store},
		{"classes.dex", domain.Store},
		{"res/drawable/a.png", domain.Store},
		{"resources.arsc", domain.Store},
	}

	if len(plan.Entries) != len(want) {
		t.Fatalf("Expected %d entries, got %d: %+v", len(want), len(plan.Entries), plan.Entries)
	}
	for i, w := range want {
		if plan.Entries[i].ArchiveName != w.name {
			t.Errorf("entry %d: expected %s, got %s", i, w.name, plan.Entries[i].ArchiveName)
		}
		if plan.Entries[i].Method != w.method {
			t.Errorf("entry %s: expected %v, got %v", w.name, w.method, plan.Entries[i].Method)
		}
	}
}

func TestAssemble_ExcludesSigningMetadataAndHidden(t *testing.T) {
	dir := buildTree(t)

	plan, err := Assemble(dir)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	for _, e := range plan.Entries {
		if strings.HasPrefix(e.ArchiveName, "META-INF/") {
			t.Errorf("signing metadata leaked into plan: %s", e.ArchiveName)
		}
		for _, part := range strings.Split(e.ArchiveName, "/") {
			if strings.HasPrefix(part, ".") {
				t.Errorf("hidden component leaked into plan: %s", e.ArchiveName)
			}
		}
	}
}

func TestAssemble_NestedMetaInfKept(t *testing.T) {
	dir := buildTree(t)
	testutil.CreateTestDir(t, dir, "assets/META-INF")
	testutil.CreateTestFile(t, dir, "assets/META-INF/services.txt", []byte("svc"))

	plan, err := Assemble(dir)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	found := false
	for _, e := range plan.Entries {
		if e.ArchiveName == "assets/META-INF/services.txt" {
			found = true
		}
	}
	if !found {
		t.Error("nested META-INF under assets should not be excluded")
	}
}

func TestAssemble_ExcludesMacJunk(t *testing.T) {
	dir := buildTree(t)
	testutil.CreateTestDir(t, dir, "__MACOSX")
	testutil.CreateTestFile(t, dir, "__MACOSX/._classes.dex", []byte("junk"))

	plan, err := Assemble(dir)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	for _, e := range plan.Entries {
		if strings.HasPrefix(e.ArchiveName, "__MACOSX") {
			t.Errorf("__MACOSX content leaked into plan: %s", e.ArchiveName)
		}
	}
}

func TestAssemble_EntryNamesForwardSlash(t *testing.T) {
	dir := buildTree(t)

	plan, err := Assemble(dir)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	for _, e := range plan.Entries {
		if strings.ContainsRune(e.ArchiveName, '\\') {
			t.Errorf("entry name contains backslash: %s", e.ArchiveName)
		}
		if filepath.IsAbs(e.ArchiveName) {
			t.Errorf("entry name is absolute: %s", e.ArchiveName)
		}
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	dir := buildTree(t)
	testutil.CreateTestDir(t, dir, "lib/arm64-v8a")
	testutil.CreateTestFile(t, dir, "lib/arm64-v8a/libnative.so", []byte{0x7f, 'E', 'L', 'F'})
	testutil.CreateTestFile(t, dir, "apktool.yml", []byte("version: 2.12.1"))

	first, err := Assemble(dir)
	if err != nil {
		t.Fatalf("first Assemble failed: %v", err)
	}
	second, err := Assemble(dir)
	if err != nil {
		t.Fatalf("second Assemble failed: %v", err)
	}

	if len(first.Entries) != len(second.Entries) {
		t.Fatalf("entry counts differ: %d vs %d", len(first.Entries), len(second.Entries))
	}
	for i := range first.Entries {
		if first.Entries[i] != second.Entries[i] {
			t.Errorf("entry %d differs between runs: %+v vs %+v",
				i, first.Entries[i], second.Entries[i])
		}
	}

	// Order must be lexicographic by entry name
	for i := 1; i < len(first.Entries); i++ {
		if first.Entries[i-1].ArchiveName >= first.Entries[i].ArchiveName {
			t.Errorf("entries not sorted: %s before %s",
				first.Entries[i-1].ArchiveName, first.Entries[i].ArchiveName)
		}
	}
}

func TestAssemble_MissingManifest(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	t.Cleanup(cleanup)
	testutil.CreateTestFile(t, dir, "classes.dex", []byte("dex"))

	_, err := Assemble(dir)
	if !errors.Is(err, domain.ErrManifestMissing) {
		t.Fatalf("Expected ErrManifestMissing, got %v", err)
	}
}

func TestAssemble_RootNotFound(t *testing.T) {
	_, err := Assemble(filepath.Join(os.TempDir(), "apkrepack-nonexistent-root"))
	if !errors.Is(err, domain.ErrRootNotFound) {
		t.Fatalf("Expected ErrRootNotFound, got %v", err)
	}
}

func TestAssemble_RootIsFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	t.Cleanup(cleanup)
	path := testutil.CreateTestFile(t, dir, "not-a-dir", []byte("x"))

	_, err := Assemble(path)
	if !errors.Is(err, domain.ErrNotDirectory) {
		t.Fatalf("Expected ErrNotDirectory, got %v", err)
	}
}

func TestAssemble_Stats(t *testing.T) {
	dir := buildTree(t)
	testutil.CreateTestFile(t, dir, "apktool.yml", []byte("version: 2.12.1"))

	plan, err := Assemble(dir)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if plan.Stats.TotalFiles != len(plan.Entries) {
		t.Errorf("stats total %d != entries %d", plan.Stats.TotalFiles, len(plan.Entries))
	}
	if plan.Stats.Stored != 4 {
		t.Errorf("Expected 4 stored entries, got %d", plan.Stats.Stored)
	}
	if plan.Stats.Deflated != 1 {
		t.Errorf("Expected 1 deflated entry, got %d", plan.Stats.Deflated)
	}
	if plan.Stats.Stored+plan.Stats.Deflated != plan.Stats.TotalFiles {
		t.Error("stored + deflated != total")
	}
}

func TestMethodFor(t *testing.T) {
	cases := []struct {
		name string
		want domain.CompressionMode
	}{
		{"AndroidManifest.xml", domain.Store},
		{"resources.arsc", domain.Store},
		{"subdir/AndroidManifest.xml", domain.Store},
		{"classes.dex", domain.Store},
		{"classes2.dex", domain.Store},
		{"lib/arm64-v8a/libfoo.so", domain.Store},
		{"res/drawable/icon.PNG", domain.Store},
		{"res/raw/song.ogg", domain.Store},
		{"assets/model.tflite", domain.Store},
		{"res/layout/main.xml", domain.Deflate},
		{"apktool.yml", domain.Deflate},
		{"assets/data.json", domain.Deflate},
		{"smali/a.smali", domain.Deflate},
	}

	for _, c := range cases {
		if got := MethodFor(c.name); got != c.want {
			t.Errorf("MethodFor(%s) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestAssemble_WarningsOnIrregularFiles(t *testing.T) {
	dir := buildTree(t)
	if err := os.Symlink(filepath.Join(dir, "classes.dex"), filepath.Join(dir, "link.dex")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	plan, err := Assemble(dir)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if len(plan.Warnings) == 0 {
		t.Error("Expected a traversal warning for the symlink")
	}
	for _, e := range plan.Entries {
		if e.ArchiveName == "link.dex" {
			t.Error("symlink should not be emitted as an entry")
		}
	}
}
