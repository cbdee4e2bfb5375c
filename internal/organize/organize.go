// Package organize sorts the files directly inside a folder into subfolders
// keyed by extension (Images, Documents, ...). Files matching no rule land
// in Others.
package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const fallbackFolder = "Others"

// Rules maps a destination folder name to the extensions (with leading dot,
// lower-case) it collects.
type Rules map[string][]string

// ParseRule parses one ".ext:Folder" CLI rule.
func ParseRule(s string) (ext, folder string, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", fmt.Errorf("invalid rule %q, use .ext:FolderName", s)
	}
	ext = strings.ToLower(strings.TrimSpace(parts[0]))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext, strings.TrimSpace(parts[1]), nil
}

// Run moves the immediate children of folder according to rules and returns
// how many files were moved. Per-file errors are logged and skipped;
// subdirectories are left alone.
func Run(folder string, rules Rules, log zerolog.Logger) (int, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return 0, fmt.Errorf("read folder: %w", err)
	}

	byExt := map[string]string{}
	for dest, exts := range rules {
		for _, e := range exts {
			byExt[strings.ToLower(e)] = dest
		}
	}

	moved := 0
	for _, entry := range entries {
		if entry.IsDir() || !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		dest, ok := byExt[strings.ToLower(filepath.Ext(name))]
		if !ok {
			dest = fallbackFolder
		}
		destDir := filepath.Join(folder, dest)
		if err := os.MkdirAll(destDir, 0755); err != nil {
			log.Error().Err(err).Str("dir", destDir).Msg("cannot create destination folder")
			continue
		}
		target := collisionFree(destDir, name)
		if err := os.Rename(filepath.Join(folder, name), target); err != nil {
			log.Error().Err(err).Str("file", name).Msg("move failed")
			continue
		}
		log.Info().Str("file", name).Str("folder", dest).Msg("moved")
		moved++
	}
	log.Info().Int("moved", moved).Str("folder", folder).Msg("organization complete")
	return moved, nil
}

// collisionFree returns destDir/name, suffixing the stem with _1, _2, ...
// while the target already exists.
func collisionFree(destDir, name string) string {
	target := filepath.Join(destDir, name)
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return target
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		target = filepath.Join(destDir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if _, err := os.Stat(target); os.IsNotExist(err) {
			return target
		}
	}
}
