package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagVerbose       bool
	flagNoColor       bool
	flagLogFile       string
	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the dupehound CLI.
var rootCmd = &cobra.Command{
	Use:           "dupehound",
	Short:         "Find duplicate files and tidy your folders",
	Long:          "dupehound scans a directory tree for duplicate files, sorts downloads by extension, tracks clipboard history and logs internet speed.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the dupehound CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "mirror logs to this file (JSON lines)")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}
