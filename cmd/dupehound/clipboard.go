package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dupehound/dupehound/internal/cliphist"
	"github.com/dupehound/dupehound/internal/config"
	"github.com/spf13/cobra"
)

var flagClipLimit int

func init() {
	clip := &cobra.Command{
		Use:   "clipboard",
		Short: "Clipboard history tracking",
	}
	rootCmd.AddCommand(clip)

	clip.AddCommand(&cobra.Command{
		Use:   "track",
		Short: "Monitor the clipboard and record history until interrupted",
		RunE:  runClipTrack,
	})

	list := &cobra.Command{
		Use:   "list",
		Short: "Show recent clipboard entries",
		RunE:  runClipList,
	}
	list.Flags().IntVar(&flagClipLimit, "limit", 50, "max entries to show")
	clip.AddCommand(list)

	clip.AddCommand(&cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle the favorite flag on an entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runClipFavorite,
	})
}

func historyDBPath() string {
	return filepath.Join(config.DataDir(), "clipboard_history.db")
}

func runClipTrack(cmd *cobra.Command, _ []string) error {
	var gcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	log := newLogger(gcfg, true)

	store, err := cliphist.Open(historyDBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	interval := 100 * time.Millisecond
	if ms := pickInt(0, nil, gcfg.ClipboardMs); ms > 0 {
		interval = time.Duration(ms) * time.Millisecond
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = cliphist.NewTracker(store, interval, log).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runClipList(cmd *cobra.Command, _ []string) error {
	store, err := cliphist.Open(historyDBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(flagClipLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No clipboard history yet. Run 'dupehound clipboard track' first.")
		return nil
	}
	for _, e := range entries {
		fav := " "
		if e.Favorite {
			fav = "★"
		}
		fmt.Printf("%4d %s %s  %s\n", e.ID, fav, e.Timestamp.Local().Format("2006-01-02 15:04:05"), oneLine(e.Content, 80))
	}
	return nil
}

func runClipFavorite(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry id %q", args[0])
	}
	store, err := cliphist.Open(historyDBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	ok, err := store.ToggleFavorite(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no entry with id %d", id)
	}
	fmt.Printf("Toggled favorite on entry %d\n", id)
	return nil
}

func oneLine(s string, max int) string {
	out := make([]rune, 0, max)
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		out = append(out, r)
		if len(out) >= max {
			return string(out) + "…"
		}
	}
	return string(out)
}
