// Package netprobe measures internet speed and appends results to a CSV log.
package netprobe

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/showwin/speedtest-go/speedtest"
)

const csvFileName = "internet_speed_log.csv"

var csvHeader = []string{"timestamp", "download_mbps", "upload_mbps", "ping_ms", "server_name", "server_country"}

// Result is one completed measurement.
type Result struct {
	Timestamp     time.Time
	DownloadMbps  float64
	UploadMbps    float64
	PingMs        float64
	ServerName    string
	ServerCountry string
}

// FormatSpeed renders a bits-per-second rate in the most readable unit.
func FormatSpeed(bps float64) string {
	mbps := bps / 1e6
	switch {
	case mbps < 1:
		return fmt.Sprintf("%.1f Kbps", mbps*1000)
	case mbps < 1000:
		return fmt.Sprintf("%.1f Mbps", mbps)
	default:
		return fmt.Sprintf("%.2f Gbps", mbps/1000)
	}
}

// Run checks connectivity, picks the closest server and measures ping,
// download and upload. Progress messages go to the logger.
func Run(ctx context.Context, dataDir string, log zerolog.Logger) (*Result, error) {
	conn, err := net.DialTimeout("tcp", "8.8.8.8:53", 3*time.Second)
	if err != nil {
		return nil, errors.New("no internet connection available")
	}
	conn.Close()

	client := speedtest.New()
	servers, err := client.FetchServerListContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch server list: %w", err)
	}
	targets, err := servers.FindServer(nil)
	if err != nil || len(targets) == 0 {
		return nil, errors.New("no suitable speedtest servers found")
	}
	srv := targets[0]
	log.Info().Str("server", srv.Name).Str("country", srv.Country).Msg("selected server")

	if err := srv.PingTestContext(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping test: %w", err)
	}
	log.Info().Msg("testing download speed")
	if err := srv.DownloadTestContext(ctx); err != nil {
		return nil, fmt.Errorf("download test: %w", err)
	}
	log.Info().Msg("testing upload speed")
	if err := srv.UploadTestContext(ctx); err != nil {
		return nil, fmt.Errorf("upload test: %w", err)
	}

	res := &Result{
		Timestamp:     time.Now(),
		DownloadMbps:  srv.DLSpeed.Mbps(),
		UploadMbps:    srv.ULSpeed.Mbps(),
		PingMs:        float64(srv.Latency.Milliseconds()),
		ServerName:    srv.Name,
		ServerCountry: srv.Country,
	}
	log.Info().
		Str("download", FormatSpeed(res.DownloadMbps*1e6)).
		Str("upload", FormatSpeed(res.UploadMbps*1e6)).
		Float64("ping_ms", res.PingMs).
		Msg("speed test complete")

	if dataDir != "" {
		if err := appendCSV(dataDir, res); err != nil {
			log.Error().Err(err).Msg("failed to write speed log")
		}
	}
	return res, nil
}

// appendCSV appends one row to the speed log, writing the header first when
// the file is new.
func appendCSV(dataDir string, res *Result) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(dataDir, csvFileName)
	_, statErr := os.Stat(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if os.IsNotExist(statErr) {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	if err := w.Write([]string{
		res.Timestamp.Format(time.RFC3339),
		fmt.Sprintf("%.2f", res.DownloadMbps),
		fmt.Sprintf("%.2f", res.UploadMbps),
		fmt.Sprintf("%.0f", res.PingMs),
		res.ServerName,
		res.ServerCountry,
	}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
