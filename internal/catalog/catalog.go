// Package catalog builds the phase-1 view of a directory tree: which regular
// files exist, bucketed by their parent directory and by size.
package catalog

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/dupehound/dupehound/internal/fileinfo"
	"github.com/dupehound/dupehound/internal/ignore"
	"github.com/rs/zerolog"
)

// Options controls which files the walk considers.
type Options struct {
	IncludeGlobs string // comma-separated, positive filter when non-empty
	ExcludeGlobs string // comma-separated, subtracted last
	Ignore       ignore.Matcher
	SkipHidden   bool // skip dot-directories (.git and friends)
}

// Catalog holds the two indices produced by a walk. Every record with a
// positive size appears in exactly one ByDir bucket (its immediate parent)
// and exactly one BySize bucket.
type Catalog struct {
	ByDir  map[string][]*fileinfo.Record
	BySize map[int64][]*fileinfo.Record

	// DirOrder lists ByDir keys in traversal order so grouping output is
	// deterministic.
	DirOrder []string

	// FilesSeen counts every file the walk visited, including skipped ones.
	FilesSeen int
}

// phase1Span is the progress range the catalog build owns.
const phase1Span = 50

// Build walks root and returns the populated indices. Per-file errors are
// logged and absorbed; only a failure to walk root itself is returned.
// Progress receives values in 0..50 at roughly 1% granularity. An empty tree
// yields empty indices and no error.
func Build(ctx context.Context, root string, opts Options, log zerolog.Logger, progress func(int)) (*Catalog, error) {
	cat := &Catalog{
		ByDir:  map[string][]*fileinfo.Record{},
		BySize: map[int64][]*fileinfo.Record{},
	}

	total, err := countFiles(ctx, root, opts)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		log.Info().Str("root", root).Msg("no files found in directory")
		return cat, nil
	}

	step := total / 100
	if step < 1 {
		step = 1
	}

	visited := 0
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == root {
				return walkErr
			}
			log.Warn().Err(walkErr).Str("path", p).Msg("walk error, skipping")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if p != root && opts.SkipHidden && isHiddenDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, _ := filepath.Rel(root, p)
		if !allowedByGlobs(rel, opts) || opts.Ignore.Match(rel) {
			return nil
		}

		visited++
		rec := fileinfo.New(p, log)
		if rec.Size() > 0 {
			dir := filepath.Dir(p)
			if _, seen := cat.ByDir[dir]; !seen {
				cat.DirOrder = append(cat.DirOrder, dir)
			}
			cat.ByDir[dir] = append(cat.ByDir[dir], rec)
			cat.BySize[rec.Size()] = append(cat.BySize[rec.Size()], rec)
		}
		if progress != nil && visited%step == 0 {
			progress(visited * phase1Span / total)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	cat.FilesSeen = visited
	return cat, nil
}

// countFiles mirrors the selection logic of Build without constructing
// records, so progress can be proportional.
func countFiles(ctx context.Context, root string, opts Options) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == root {
				return walkErr
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if p != root && opts.SkipHidden && isHiddenDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, _ := filepath.Rel(root, p)
		if !allowedByGlobs(rel, opts) || opts.Ignore.Match(rel) {
			return nil
		}
		count++
		return nil
	})
	return count, err
}

func isHiddenDir(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
