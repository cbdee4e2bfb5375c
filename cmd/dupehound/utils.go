package main

import (
	"github.com/dupehound/dupehound/internal/config"
	"github.com/dupehound/dupehound/internal/logging"
	"github.com/rs/zerolog"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// newLogger builds the injected logger from flags and the global config.
func newLogger(gcfg config.FileConfig, console bool) zerolog.Logger {
	return logging.New(logging.Options{
		Verbose:  pickBool(flagVerbose, nil, gcfg.Verbose),
		FilePath: pickString(flagLogFile, nil, gcfg.LogFile),
		Console:  console,
	})
}
