// Package dupes confirms duplicate files within each directory of a catalog.
//
// Grouping is two-tier: filenames are first bucketed by their normalized
// form (cheap), then every bucket with at least two members is partitioned
// by content digest (authoritative). Files in different directories are
// never compared; bounding the comparison space to one directory is a
// deliberate scope decision, not an accident.
package dupes

import (
	"context"
	"path/filepath"

	"github.com/dupehound/dupehound/internal/catalog"
	"github.com/dupehound/dupehound/internal/fileinfo"
	"github.com/rs/zerolog"
)

// Group is a confirmed set of identical files in one directory.
type Group struct {
	Paths     []string `json:"paths"`
	Size      int64    `json:"size"`
	Directory string   `json:"directory"`
}

// WastedBytes is the space occupied by the redundant copies: every member
// except one.
func (g Group) WastedBytes() int64 {
	return g.Size * int64(len(g.Paths)-1)
}

// Result is the outcome of a grouping pass.
type Result struct {
	Groups      []Group
	WastedBytes int64
}

// GroupCatalog runs phase 2 over the catalog's per-directory buckets.
// Progress receives values in 50..100; 100 is reported only when every
// directory finished. Cancellation is honored between directories and
// between name buckets, returning ctx.Err().
func GroupCatalog(ctx context.Context, cat *catalog.Catalog, log zerolog.Logger, progress func(int)) (Result, error) {
	var res Result
	totalDirs := len(cat.DirOrder)
	for i, dir := range cat.DirOrder {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		groups, err := groupDirectory(ctx, dir, cat.ByDir[dir])
		if err != nil {
			return Result{}, err
		}
		for _, g := range groups {
			res.WastedBytes += g.WastedBytes()
		}
		res.Groups = append(res.Groups, groups...)
		if progress != nil && totalDirs > 0 {
			progress(50 + (i+1)*50/totalDirs)
		}
	}
	if progress != nil {
		progress(100)
	}
	log.Debug().Int("groups", len(res.Groups)).Int64("wasted_bytes", res.WastedBytes).Msg("grouping complete")
	return res, nil
}

// groupDirectory clusters one directory's records by normalized name and
// confirms each cluster by content digest.
func groupDirectory(ctx context.Context, dir string, records []*fileinfo.Record) ([]Group, error) {
	byName := map[string][]*fileinfo.Record{}
	var nameOrder []string
	for _, rec := range records {
		key := NormalizeName(filepath.Base(rec.Path()))
		if _, seen := byName[key]; !seen {
			nameOrder = append(nameOrder, key)
		}
		byName[key] = append(byName[key], rec)
	}

	var out []Group
	for _, key := range nameOrder {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates := byName[key]
		if len(candidates) < 2 {
			continue
		}
		for _, bucket := range prefilter(candidates) {
			out = append(out, confirmByDigest(dir, bucket)...)
		}
	}
	return out, nil
}

// quickKey pre-partitions candidates so that files whose sizes or leading
// bytes already differ never pay for a full read. The pre-filter can only
// split buckets that the full digest would split anyway, so group membership
// is unaffected.
type quickKey struct {
	size  int64
	quick string
}

func prefilter(candidates []*fileinfo.Record) [][]*fileinfo.Record {
	byQuick := map[quickKey][]*fileinfo.Record{}
	var order []quickKey
	for _, rec := range candidates {
		k := quickKey{size: rec.Size(), quick: rec.QuickDigest()}
		if _, seen := byQuick[k]; !seen {
			order = append(order, k)
		}
		byQuick[k] = append(byQuick[k], rec)
	}
	var out [][]*fileinfo.Record
	for _, k := range order {
		if len(byQuick[k]) >= 2 {
			out = append(out, byQuick[k])
		}
	}
	return out
}

func confirmByDigest(dir string, candidates []*fileinfo.Record) []Group {
	byDigest := map[string][]*fileinfo.Record{}
	var order []string
	for _, rec := range candidates {
		d := rec.FullDigest()
		if d == "" {
			// An unreadable file must never confirm a group: a matching pair
			// of failure sentinels would otherwise look like identical
			// content and could drive a deletion.
			continue
		}
		if _, seen := byDigest[d]; !seen {
			order = append(order, d)
		}
		byDigest[d] = append(byDigest[d], rec)
	}

	var out []Group
	for _, d := range order {
		members := byDigest[d]
		if len(members) < 2 {
			continue
		}
		g := Group{Size: members[0].Size(), Directory: dir}
		for _, rec := range members {
			g.Paths = append(g.Paths, rec.Path())
		}
		out = append(out, g)
	}
	return out
}
