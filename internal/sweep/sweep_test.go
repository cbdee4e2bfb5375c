package sweep

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/dupehound/dupehound/internal/dupes"
	"github.com/rs/zerolog"
)

func group(dir string, size int64, names ...string) dupes.Group {
	g := dupes.Group{Directory: dir, Size: size}
	for _, n := range names {
		g.Paths = append(g.Paths, filepath.Join(dir, n))
	}
	return g
}

func TestValidateRejectsFullGroupWipe(t *testing.T) {
	g := group("/tmp/x", 4, "a.txt", "a (1).txt")
	sel := map[string]bool{g.Paths[0]: true, g.Paths[1]: true}
	if err := Validate([]dupes.Group{g}, sel); err == nil {
		t.Fatal("selecting every member of a group must be rejected")
	}
}

func TestValidateAllowsPartialSelection(t *testing.T) {
	g := group("/tmp/x", 4, "a.txt", "a (1).txt", "a (2).txt")
	sel := map[string]bool{g.Paths[1]: true, g.Paths[2]: true}
	if err := Validate([]dupes.Group{g}, sel); err != nil {
		t.Fatalf("one survivor should be enough: %v", err)
	}
}

func TestDeleteRemovesSelectedAndCountsBytes(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.txt", "a (1).txt", "a (2).txt"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("12345"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	g := group(dir, 5, "a.txt", "a (1).txt", "a (2).txt")
	sel := map[string]bool{g.Paths[1]: true, g.Paths[2]: true}

	out := Delete([]dupes.Group{g}, sel, zerolog.Nop())
	if len(out.Deleted) != 2 || len(out.Failed) != 0 {
		t.Fatalf("deleted=%v failed=%v", out.Deleted, out.Failed)
	}
	if out.FreedBytes != 10 {
		t.Errorf("freed = %d want 10", out.FreedBytes)
	}
	if _, err := os.Stat(g.Paths[0]); err != nil {
		t.Errorf("survivor was removed: %v", err)
	}
	for _, p := range g.Paths[1:] {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s still exists", p)
		}
	}
}

func TestDeleteOrderFollowsGroups(t *testing.T) {
	dir := t.TempDir()
	var names []string
	names = append(names, "a.txt")
	for i := 1; i <= 9; i++ {
		names = append(names, fmt.Sprintf("a (%d).txt", i))
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	g := group(dir, 1, names...)
	sel := map[string]bool{}
	for _, p := range g.Paths[1:] {
		sel[p] = true
	}

	out := Delete([]dupes.Group{g}, sel, zerolog.Nop())
	want := g.Paths[1:]
	if len(out.Deleted) != len(want) {
		t.Fatalf("deleted = %v", out.Deleted)
	}
	for i, p := range out.Deleted {
		if p != want[i] {
			t.Fatalf("deletion order %v, want group order %v", out.Deleted, want)
		}
	}
}

func TestDeleteCollectsPerFileFailures(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real.txt")
	if err := os.WriteFile(real, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	ghost := filepath.Join(dir, "ghost.txt")
	g := dupes.Group{Directory: dir, Size: 1, Paths: []string{real, ghost}}

	out := Delete([]dupes.Group{g}, map[string]bool{real: true, ghost: true}, zerolog.Nop())
	if len(out.Deleted) != 1 || out.Deleted[0] != real {
		t.Fatalf("deleted = %v", out.Deleted)
	}
	if _, ok := out.Failed[ghost]; !ok {
		t.Fatalf("missing file should be reported in Failed, got %v", out.Failed)
	}
	if out.FreedBytes != 1 {
		t.Errorf("freed = %d want 1", out.FreedBytes)
	}
}
