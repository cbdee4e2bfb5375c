package organize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParseRule(t *testing.T) {
	ext, folder, err := ParseRule(".JPG:Images")
	if err != nil {
		t.Fatal(err)
	}
	if ext != ".jpg" || folder != "Images" {
		t.Fatalf("got %q %q", ext, folder)
	}

	ext, folder, err = ParseRule("pdf:Documents")
	if err != nil {
		t.Fatal(err)
	}
	if ext != ".pdf" || folder != "Documents" {
		t.Fatalf("dot should be added: %q %q", ext, folder)
	}

	for _, bad := range []string{"", "nocolon", ":Folder", ".ext:"} {
		if _, _, err := ParseRule(bad); err == nil {
			t.Errorf("ParseRule(%q) should fail", bad)
		}
	}
}

func TestRunSortsByExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "photo.jpg"))
	touch(t, filepath.Join(dir, "paper.pdf"))
	touch(t, filepath.Join(dir, "mystery.xyz"))
	touch(t, filepath.Join(dir, "nested", "untouched.jpg"))

	rules := Rules{
		"Images":    {".jpg", ".png"},
		"Documents": {".pdf"},
	}
	moved, err := Run(dir, rules, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if moved != 3 {
		t.Fatalf("moved = %d want 3", moved)
	}
	for _, want := range []string{
		filepath.Join(dir, "Images", "photo.jpg"),
		filepath.Join(dir, "Documents", "paper.pdf"),
		filepath.Join(dir, "Others", "mystery.xyz"),
		filepath.Join(dir, "nested", "untouched.jpg"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("expected %s to exist: %v", want, err)
		}
	}
}

func TestRunExtensionMatchingIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "SHOT.JPG"))
	moved, err := Run(dir, Rules{"Images": {".jpg"}}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if moved != 1 {
		t.Fatalf("moved = %d want 1", moved)
	}
	if _, err := os.Stat(filepath.Join(dir, "Images", "SHOT.JPG")); err != nil {
		t.Fatal(err)
	}
}

func TestRunRenamesOnCollision(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "dup.pdf"))
	touch(t, filepath.Join(dir, "Documents", "dup.pdf"))

	moved, err := Run(dir, Rules{"Documents": {".pdf"}}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if moved != 1 {
		t.Fatalf("moved = %d want 1", moved)
	}
	if _, err := os.Stat(filepath.Join(dir, "Documents", "dup_1.pdf")); err != nil {
		t.Fatalf("collision target missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Documents", "dup.pdf")); err != nil {
		t.Fatalf("original destination file must survive: %v", err)
	}
}

func TestRunMissingFolder(t *testing.T) {
	if _, err := Run(filepath.Join(t.TempDir(), "absent"), Rules{}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for missing folder")
	}
}
