// Package sweep deletes user-selected duplicate files after a completed
// scan. It is the only write path in the tool and runs synchronously on the
// caller's goroutine.
package sweep

import (
	"fmt"
	"os"

	"github.com/dupehound/dupehound/internal/dupes"
	"github.com/rs/zerolog"
)

// Outcome reports what a deletion pass achieved.
type Outcome struct {
	Deleted    []string
	Failed     map[string]error
	FreedBytes int64
}

// Validate rejects a selection that would wipe out every member of a group.
// At least one copy of each group must survive.
func Validate(groups []dupes.Group, selected map[string]bool) error {
	for _, g := range groups {
		kept := 0
		for _, p := range g.Paths {
			if !selected[p] {
				kept++
			}
		}
		if kept == 0 && len(g.Paths) > 0 {
			return fmt.Errorf("selection would delete all %d copies in %s", len(g.Paths), g.Directory)
		}
	}
	return nil
}

// Delete removes the selected paths in group order, so Deleted and the log
// are stable across runs. Per-file failures are collected, not fatal; the
// rest of the selection is still processed.
func Delete(groups []dupes.Group, selected map[string]bool, log zerolog.Logger) Outcome {
	out := Outcome{Failed: map[string]error{}}
	for _, g := range groups {
		for _, p := range g.Paths {
			if !selected[p] {
				continue
			}
			if err := os.Remove(p); err != nil {
				log.Error().Err(err).Str("path", p).Msg("failed to delete duplicate")
				out.Failed[p] = err
				continue
			}
			log.Info().Str("path", p).Msg("deleted duplicate")
			out.Deleted = append(out.Deleted, p)
			out.FreedBytes += g.Size
		}
	}
	return out
}
