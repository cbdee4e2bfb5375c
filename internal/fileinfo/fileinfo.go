// Package fileinfo provides a lazily hashing handle around a single file.
//
// Size and digests are computed on first access and cached for the lifetime
// of the Record, including failures: an unreadable file caches size 0 and an
// empty digest and is never retried. Accessors never return errors; failures
// go to the injected logger and degrade to sentinels so that a broken file
// simply drops out of grouping instead of aborting a scan.
package fileinfo

import (
	"fmt"
	"io"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
)

const (
	// chunkSize bounds a single read while hashing.
	chunkSize = 64 << 10
	// quickReadLimit caps how much leading content the quick digest covers.
	quickReadLimit = 1 << 20
)

// Record is a handle around one regular file. Not safe for concurrent use;
// a Record is owned by the scan worker that created it.
type Record struct {
	path string
	log  zerolog.Logger

	size     int64
	sizeDone bool

	quick     string
	quickDone bool

	full     string
	fullDone bool
}

// New creates a Record for path. No filesystem access happens until an
// accessor is called.
func New(path string, log zerolog.Logger) *Record {
	return &Record{path: path, log: log}
}

// Path returns the path the record was created with.
func (r *Record) Path() string { return r.path }

// Size returns the file size in bytes, or 0 if it cannot be read.
func (r *Record) Size() int64 {
	if r.sizeDone {
		return r.size
	}
	r.sizeDone = true
	st, err := os.Stat(r.path)
	if err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("stat failed")
		r.size = 0
		return 0
	}
	r.size = st.Size()
	return r.size
}

// QuickDigest returns the digest of at most the first MiB of content.
// Empty string means the file could not be read.
func (r *Record) QuickDigest() string {
	if r.quickDone {
		return r.quick
	}
	r.quickDone = true
	r.quick = r.hash(quickReadLimit)
	return r.quick
}

// FullDigest returns the digest of the entire content.
// Empty string means the file could not be read.
func (r *Record) FullDigest() string {
	if r.fullDone {
		return r.full
	}
	r.fullDone = true
	r.full = r.hash(-1)
	return r.full
}

// hash digests up to limit bytes of the file (-1 = whole file) and returns
// a fixed-width hex string, or "" on any I/O error.
func (r *Record) hash(limit int64) string {
	f, err := os.Open(r.path)
	if err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("open for hashing failed")
		return ""
	}
	defer f.Close()

	var src io.Reader = f
	if limit >= 0 {
		src = io.LimitReader(f, limit)
	}
	h := xxhash.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, src, buf); err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("read for hashing failed")
		return ""
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
