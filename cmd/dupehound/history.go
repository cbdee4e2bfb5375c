package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dupehound/dupehound/internal/audit"
	"github.com/dupehound/dupehound/internal/config"
	"github.com/dupehound/dupehound/internal/report"
	"github.com/spf13/cobra"
)

var flagHistoryLimit int

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous duplicate scans",
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)
	cmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "max scans to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	records, err := audit.NewLog(config.DataDir()).LoadHistory()
	if err != nil {
		fmt.Println("No scan history yet.")
		return nil
	}
	if len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	for _, r := range records {
		fmt.Printf("%s  %-9s  %4d groups  %10s wasted  %6d files  %s\n",
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.Outcome, r.GroupCount, report.FormatBytes(r.WastedBytes), r.FilesScanned, r.Root)
	}
	return nil
}
