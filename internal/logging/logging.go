package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options controls where log output goes.
type Options struct {
	// Verbose lowers the level from Warn to Debug.
	Verbose bool
	// FilePath, when non-empty, mirrors all output to this file.
	FilePath string
	// Console disables the human-readable stderr writer when false.
	Console bool
}

// New builds the logger the rest of the tool receives by injection.
// Console output is human-formatted; the file sink (if any) stays JSON so
// the log remains machine-readable, matching the history log format.
func New(opts Options) zerolog.Logger {
	var writers []io.Writer
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err == nil {
			if f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
				writers = append(writers, f)
			}
		}
	}
	if len(writers) == 0 {
		return zerolog.Nop()
	}
	lvl := zerolog.WarnLevel
	if opts.Verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(lvl).With().Timestamp().Logger()
}
