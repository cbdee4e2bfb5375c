package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/dupehound/dupehound/internal/config"
	"github.com/dupehound/dupehound/internal/netprobe"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "speed",
		Short: "Measure internet speed and append it to the speed log",
		RunE:  runSpeed,
	})
}

func runSpeed(cmd *cobra.Command, _ []string) error {
	var gcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	log := newLogger(gcfg, !flagJSON)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := netprobe.Run(ctx, config.DataDir(), log)
	if err != nil {
		return err
	}
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Printf("Download: %s\n", netprobe.FormatSpeed(res.DownloadMbps*1e6))
	fmt.Printf("Upload:   %s\n", netprobe.FormatSpeed(res.UploadMbps*1e6))
	fmt.Printf("Ping:     %.0f ms\n", res.PingMs)
	fmt.Printf("Server:   %s (%s)\n", res.ServerName, res.ServerCountry)
	return nil
}
