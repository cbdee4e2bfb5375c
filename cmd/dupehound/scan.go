package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dupehound/dupehound/internal/audit"
	"github.com/dupehound/dupehound/internal/catalog"
	"github.com/dupehound/dupehound/internal/config"
	"github.com/dupehound/dupehound/internal/dupes"
	"github.com/dupehound/dupehound/internal/ignore"
	"github.com/dupehound/dupehound/internal/report"
	"github.com/dupehound/dupehound/internal/scan"
	"github.com/dupehound/dupehound/internal/tui"
	"github.com/dupehound/dupehound/internal/update"
	"github.com/spf13/cobra"
)

var (
	flagScanPath   string
	flagInclude    string
	flagExclude    string
	flagSkipHidden bool
	flagTable      bool
	flagTUI        bool
	flagNoHistory  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Find duplicate files in a directory tree",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagScanPath, "path", "p", "", "directory to scan (alternative to positional arg)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().BoolVar(&flagSkipHidden, "skip-hidden", false, "skip dot-directories")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders")
	cmd.Flags().BoolVar(&flagTUI, "tui", false, "browse groups interactively (enables deletion)")
	cmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "do not record this scan in the history log")
}

// scanEvents collects worker notifications for the CLI front end.
type scanEvents struct {
	progress func(int)
	result   dupes.Result
	files    int
	err      error
	outcome  string
	done     chan struct{}
}

func (e *scanEvents) Progress(pct int) {
	if e.progress != nil {
		e.progress(pct)
	}
}

func (e *scanEvents) Completed(res dupes.Result, filesSeen int) {
	e.result, e.files, e.outcome = res, filesSeen, "completed"
	close(e.done)
}

func (e *scanEvents) Failed(err error) {
	e.err, e.outcome = err, "failed"
	close(e.done)
}

func (e *scanEvents) Cancelled() {
	e.outcome = "cancelled"
	close(e.done)
}

func runScan(cmd *cobra.Command, args []string) error {
	path := flagScanPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = "."
	}
	abs, _ := filepath.Abs(path)

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}
	log := newLogger(gcfg, !flagJSON)

	ign, err := ignore.Load(filepath.Join(abs, ".dupehoundignore"))
	if err != nil {
		log.Warn().Err(err).Msg("ignore file unreadable, continuing without it")
	}
	opts := catalog.Options{
		IncludeGlobs: pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs: pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		Ignore:       ign,
		SkipHidden:   pickBool(flagSkipHidden, lcfg.SkipHidden, gcfg.SkipHidden),
	}

	if !flagJSON {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'dupehound update' for details\n", latest)
			}
		}
		fmt.Fprintf(os.Stderr, "Scanning %s for duplicates...\n", abs)
	}

	ev := &scanEvents{done: make(chan struct{})}
	if !flagJSON {
		ev.progress = func(pct int) {
			fmt.Fprintf(os.Stderr, "\r[%3d%%]", pct)
		}
	}

	started := time.Now()
	ctrl := scan.NewController(log)
	handle, err := ctrl.Scan(abs, opts, ev)
	if err != nil {
		return err
	}

	// Ctrl-C cancels the scan instead of killing the process mid-walk.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		select {
		case <-sig:
			handle.Cancel()
		case <-handle.Done():
		}
		signal.Stop(sig)
	}()

	<-ev.done
	if !flagJSON {
		fmt.Fprintln(os.Stderr)
	}

	if !flagNoHistory {
		rec := audit.ScanRecord{
			Root:         abs,
			FilesScanned: ev.files,
			GroupCount:   len(ev.result.Groups),
			WastedBytes:  ev.result.WastedBytes,
			Duration:     time.Since(started).String(),
			Outcome:      ev.outcome,
		}
		if err := audit.NewLog(config.DataDir()).Append(rec); err != nil {
			log.Warn().Err(err).Msg("could not record scan history")
		}
	}
	rememberLastFolder(gcfg, "duplicates", abs)

	switch ev.outcome {
	case "failed":
		return fmt.Errorf("scan error: %w", ev.err)
	case "cancelled":
		if !flagJSON {
			fmt.Fprintln(os.Stderr, "scan cancelled")
		}
		return nil
	}

	if flagTUI {
		return tui.Run(ev.result.Groups, ev.result.WastedBytes, log)
	}
	popts := report.PrintOptions{
		NoColor:      pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor),
		Duration:     time.Since(started),
		FilesScanned: ev.files,
		WastedBytes:  ev.result.WastedBytes,
	}
	switch {
	case flagJSON:
		return report.WriteJSON(os.Stdout, report.Envelope{
			Root:         abs,
			GeneratedAt:  time.Now(),
			FilesScanned: ev.files,
			DurationMs:   time.Since(started).Milliseconds(),
			WastedBytes:  ev.result.WastedBytes,
			Groups:       ev.result.Groups,
		})
	case flagTable:
		report.PrintTable(os.Stdout, ev.result.Groups, popts)
	default:
		report.PrintText(os.Stdout, ev.result.Groups, popts)
	}
	return nil
}

// rememberLastFolder best-effort persists the most recent root per feature.
func rememberLastFolder(gcfg config.FileConfig, key, folder string) {
	if gcfg.LastFolders == nil {
		gcfg.LastFolders = map[string]string{}
	}
	if gcfg.LastFolders[key] == folder {
		return
	}
	gcfg.LastFolders[key] = folder
	_ = config.SaveGlobal(gcfg)
}
