package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/releve-cli/internal/utils"
)

func TestSafeWriteFileReplaces(t *testing.T) {
	p := filepath.Join(t.TempDir(), "w.json")
	if err := utils.SafeWriteFile(p, []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := utils.SafeWriteFile(p, []byte("two")); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "two" {
		t.Fatalf("got %q", b)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b")
	if err := utils.EnsureDir(deep); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "workbook.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := utils.FindRoot(deep, "workbook.json")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != root {
		t.Fatalf("got %s, want %s", got, root)
	}
	if _, err := utils.FindRoot(deep, "missing.json"); err == nil {
		t.Fatal("expected error for missing marker")
	}
}
