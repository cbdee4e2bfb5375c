package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dupehound/dupehound/internal/dupes"
)

func sampleGroups() []dupes.Group {
	return []dupes.Group{
		{
			Directory: "/home/user/docs",
			Size:      2048,
			Paths: []string{
				"/home/user/docs/report.pdf",
				"/home/user/docs/report (1).pdf",
			},
		},
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[int64]string{
		0:               "0 B",
		512:             "512 B",
		1024:            "1.0 KB",
		1536:            "1.5 KB",
		1048576:         "1.0 MB",
		5 * 1048576:     "5.0 MB",
		3 * 1073741824:  "3.0 GB",
		1099511627776:   "1.0 TB",
	}
	for in, want := range cases {
		if got := FormatBytes(in); got != want {
			t.Errorf("FormatBytes(%d)=%q want %q", in, got, want)
		}
	}
}

func TestPrintTextListsGroupsAndFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sampleGroups(), PrintOptions{
		Duration:     1500 * time.Millisecond,
		FilesScanned: 42,
		WastedBytes:  2048,
	})
	out := buf.String()
	for _, want := range []string{
		"Duplicate groups: 1",
		"report.pdf",
		"report (1).pdf",
		"Files scanned: 42",
		"Wasted space: 2.0 KB",
		"Scan duration: 1.50s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{})
	if !strings.Contains(buf.String(), "No duplicate files found") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestPrintTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, PrintOptions{})
	if !strings.Contains(buf.String(), "No duplicate files found") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestPrintTableIncludesMembers(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sampleGroups(), PrintOptions{FilesScanned: 2, WastedBytes: 2048})
	out := buf.String()
	for _, want := range []string{"report.pdf", "/home/user/docs", "wasted space: 2.0 KB"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	env := Envelope{
		Root:         "/home/user/docs",
		GeneratedAt:  time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC),
		FilesScanned: 42,
		WastedBytes:  2048,
		Groups:       sampleGroups(),
	}
	if err := WriteJSON(&buf, env); err != nil {
		t.Fatal(err)
	}
	var got Envelope
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Root != env.Root || got.FilesScanned != 42 || len(got.Groups) != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Groups[0].WastedBytes() != 2048 {
		t.Errorf("group wasted = %d want 2048", got.Groups[0].WastedBytes())
	}
}

func TestPrintTextHonorsWidthOption(t *testing.T) {
	long := "/home/user/" + strings.Repeat("deep/", 30) + "docs"
	groups := []dupes.Group{{
		Directory: long,
		Size:      10,
		Paths:     []string{long + "/report.pdf", long + "/report (1).pdf"},
	}}

	var buf bytes.Buffer
	PrintText(&buf, groups, PrintOptions{Width: 60})
	out := buf.String()
	if !strings.Contains(out, "…") {
		t.Fatalf("long paths should be truncated at the given width:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > 80 {
			t.Fatalf("line exceeds requested width: %q", line)
		}
	}
}

func TestTruncateKeepsTail(t *testing.T) {
	long := "/very/long/path/to/some/deeply/nested/file.txt"
	got := truncate(long, 20)
	if len(got) > 20+2 { // ellipsis rune is multi-byte
		t.Fatalf("truncate too long: %q", got)
	}
	if !strings.HasSuffix(got, "file.txt") {
		t.Fatalf("truncate must keep the tail: %q", got)
	}
	if truncate("short", 20) != "short" {
		t.Fatal("short strings must pass through")
	}
}
