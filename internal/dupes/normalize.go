package dupes

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	copyOfPrefix  = regexp.MustCompile(`^(copy of\s+)`)
	copyNumSuffix = regexp.MustCompile(`\s*\(\d+\)\s*$`)
)

// NormalizeName strips common copy-artifact decorations from a filename so
// that "report.pdf", "copy of report.pdf" and "report (1).pdf" all bucket
// together. The key is only used for candidate grouping; content digests
// decide actual duplication. Pure and total: malformed input normalizes to
// itself after whitespace trimming.
func NormalizeName(filename string) string {
	lower := strings.ToLower(filename)
	ext := filepath.Ext(lower)
	stem := strings.TrimSuffix(lower, ext)
	stem = copyOfPrefix.ReplaceAllString(stem, "")
	stem = copyNumSuffix.ReplaceAllString(stem, "")
	return strings.TrimSpace(stem) + ext
}
