package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dupehound/dupehound/internal/dupes"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
)

type PrintOptions struct {
	NoColor bool
	// Width bounds line length; 0 falls back to the stdout terminal width.
	Width        int
	Duration     time.Duration
	FilesScanned int
	WastedBytes  int64
}

// PrintText writes one line per group member, grouped with a blank line
// between groups, plus a summary footer.
func PrintText(w io.Writer, groups []dupes.Group, opts PrintOptions) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No duplicate files found ✅")
	} else {
		fmt.Fprintf(w, "Duplicate groups: %d\n", len(groups))
		width := opts.Width
		if width <= 0 {
			width = termWidth()
		}
		for _, g := range groups {
			fmt.Fprintf(w, "\n%s  (%d files × %s, %s wasted)\n",
				truncate(g.Directory, width-30), len(g.Paths), FormatBytes(g.Size), FormatBytes(g.WastedBytes()))
			for _, p := range g.Paths {
				fmt.Fprintf(w, "  %s\n", truncate(p, width-2))
			}
		}
	}
	if opts.Duration > 0 || opts.FilesScanned > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
		fmt.Fprintf(w, "Wasted space: %s\n", FormatBytes(opts.WastedBytes))
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
		}
	}
}

// PrintTable renders one row per group with bordered columns.
func PrintTable(w io.Writer, groups []dupes.Group, opts PrintOptions) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No duplicate files found ✅")
		return
	}
	table := tablewriter.NewWriter(w)
	table.Header("Directory", "Copies", "Size", "Wasted", "Members")
	for _, g := range groups {
		members := ""
		for i, p := range g.Paths {
			if i > 0 {
				members += "\n"
			}
			members += baseName(p)
		}
		_ = table.Append([]string{
			g.Directory,
			strconv.Itoa(len(g.Paths)),
			FormatBytes(g.Size),
			FormatBytes(g.WastedBytes()),
			members,
		})
	}
	_ = table.Render()
	fmt.Fprintf(w, "\nFiles scanned: %d, wasted space: %s\n", opts.FilesScanned, FormatBytes(opts.WastedBytes))
}

// Envelope is the JSON output shape of the scan command.
type Envelope struct {
	Root         string        `json:"root"`
	GeneratedAt  time.Time     `json:"generated_at"`
	FilesScanned int           `json:"files_scanned"`
	DurationMs   int64         `json:"duration_ms"`
	WastedBytes  int64         `json:"wasted_bytes"`
	Groups       []dupes.Group `json:"groups"`
}

func WriteJSON(w io.Writer, env Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// FormatBytes renders a byte count in the largest sensible unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 40 {
		return w
	}
	return 120
}

func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	if len(s) <= max {
		return s
	}
	return "…" + s[len(s)-max+1:]
}

func baseName(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' || p[i] == '\\' {
			return p[i+1:]
		}
	}
	return p
}
