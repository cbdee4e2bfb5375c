// Package ignore matches paths against a .dupehoundignore file.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Matcher reports whether a relative path is excluded from scanning.
type Matcher struct {
	dirs  []string // patterns ending in "/" match whole subtrees
	globs []string
}

// Load parses an ignore file. A missing file yields an empty matcher and no
// error; an ignore file is optional.
func Load(path string) (Matcher, error) {
	var m Matcher
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return m, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, "/") {
			m.dirs = append(m.dirs, strings.TrimSuffix(line, "/"))
			continue
		}
		m.globs = append(m.globs, line)
	}
	return m, sc.Err()
}

// Match reports whether rel (slash-separated or OS-separated) is ignored.
func (m Matcher) Match(rel string) bool {
	rp := filepath.ToSlash(rel)
	for _, d := range m.dirs {
		if rp == d || strings.HasPrefix(rp, d+"/") || strings.Contains(rp, "/"+d+"/") {
			return true
		}
	}
	base := filepath.Base(rp)
	for _, g := range m.globs {
		if ok, _ := doublestar.Match(g, rp); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
	}
	return false
}
