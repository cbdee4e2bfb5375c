package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dupehound/dupehound/internal/ignore"
	"github.com/rs/zerolog"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildIndices(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.txt"), "aa")
	write(t, filepath.Join(root, "sub", "b.txt"), "bb")
	write(t, filepath.Join(root, "sub", "c.txt"), "cccc")

	cat, err := Build(context.Background(), root, Options{}, zerolog.Nop(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cat.FilesSeen != 3 {
		t.Errorf("FilesSeen = %d want 3", cat.FilesSeen)
	}
	if got := len(cat.ByDir[root]); got != 1 {
		t.Errorf("root bucket has %d records, want 1", got)
	}
	if got := len(cat.ByDir[filepath.Join(root, "sub")]); got != 2 {
		t.Errorf("sub bucket has %d records, want 2", got)
	}
	if got := len(cat.BySize[2]); got != 2 {
		t.Errorf("size-2 bucket has %d records, want 2", got)
	}
	if got := len(cat.BySize[4]); got != 1 {
		t.Errorf("size-4 bucket has %d records, want 1", got)
	}
	// every record appears in exactly one directory bucket
	totalByDir := 0
	for _, recs := range cat.ByDir {
		totalByDir += len(recs)
	}
	totalBySize := 0
	for _, recs := range cat.BySize {
		totalBySize += len(recs)
	}
	if totalByDir != 3 || totalBySize != 3 {
		t.Errorf("bucket totals byDir=%d bySize=%d, want 3 and 3", totalByDir, totalBySize)
	}
}

func TestEmptyFilesAreSkipped(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "empty.txt"), "")
	write(t, filepath.Join(root, "full.txt"), "x")

	cat, err := Build(context.Background(), root, Options{}, zerolog.Nop(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(cat.ByDir[root]); got != 1 {
		t.Fatalf("zero-byte file must be excluded from indices, bucket=%d", got)
	}
	if cat.FilesSeen != 2 {
		t.Errorf("FilesSeen should count skipped files too, got %d", cat.FilesSeen)
	}
}

func TestEmptyTree(t *testing.T) {
	cat, err := Build(context.Background(), t.TempDir(), Options{}, zerolog.Nop(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.ByDir) != 0 || len(cat.BySize) != 0 || cat.FilesSeen != 0 {
		t.Fatalf("empty tree must produce empty indices: %+v", cat)
	}
}

func TestMissingRootFails(t *testing.T) {
	_, err := Build(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{}, zerolog.Nop(), nil)
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestExcludeGlobs(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "keep.txt"), "k")
	write(t, filepath.Join(root, "drop.log"), "d")

	cat, err := Build(context.Background(), root, Options{ExcludeGlobs: "*.log"}, zerolog.Nop(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cat.FilesSeen != 1 {
		t.Fatalf("expected 1 file after exclude, got %d", cat.FilesSeen)
	}
}

func TestIgnoreFileRespected(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "secret.env"), "s")
	write(t, filepath.Join(root, "app.txt"), "a")
	write(t, filepath.Join(root, ".dupehoundignore"), "secret.env\n")

	ign, err := ignore.Load(filepath.Join(root, ".dupehoundignore"))
	if err != nil {
		t.Fatal(err)
	}
	cat, err := Build(context.Background(), root, Options{Ignore: ign}, zerolog.Nop(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, recs := range cat.ByDir {
		for _, r := range recs {
			if filepath.Base(r.Path()) == "secret.env" {
				t.Fatal("ignored file made it into the catalog")
			}
		}
	}
}

func TestSkipHidden(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".git", "objects", "blob"), "x")
	write(t, filepath.Join(root, "visible.txt"), "v")

	cat, err := Build(context.Background(), root, Options{SkipHidden: true}, zerolog.Nop(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cat.FilesSeen != 1 {
		t.Fatalf("hidden dirs must be skipped, FilesSeen=%d", cat.FilesSeen)
	}
}

func TestProgressStaysInPhase1Range(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 10; i++ {
		write(t, filepath.Join(root, string(rune('a'+i))+".txt"), "content")
	}
	var seen []int
	_, err := Build(context.Background(), root, Options{}, zerolog.Nop(), func(pct int) {
		seen = append(seen, pct)
	})
	if err != nil {
		t.Fatal(err)
	}
	last := -1
	for _, p := range seen {
		if p < 0 || p > 50 {
			t.Fatalf("phase-1 progress out of range: %v", seen)
		}
		if p < last {
			t.Fatalf("progress not monotonic: %v", seen)
		}
		last = p
	}
}

func TestCancelledContextAborts(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.txt"), "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, root, Options{}, zerolog.Nop(), nil); err == nil {
		t.Fatal("expected cancellation error")
	}
}
