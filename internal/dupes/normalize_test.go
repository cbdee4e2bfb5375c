package dupes

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"report.pdf":           "report.pdf",
		"Report.PDF":           "report.pdf",
		"copy of report.pdf":   "report.pdf",
		"Copy of Report.pdf":   "report.pdf",
		"report (1).pdf":       "report.pdf",
		"report(12).pdf":       "report.pdf",
		"report (3) .pdf":      "report.pdf",
		"copy of a (2).txt":    "a.txt",
		"noext":                "noext",
		"noext (1)":            "noext",
		"archive.tar.gz":       "archive.tar.gz",
		"archive (1).tar.gz":   "archive (1).tar.gz", // suffix sits before .tar, not at stem end
		"  spaced.txt":         "spaced.txt",
		"(1).txt":              ".txt",
		"copy of copy of.docx": "copy of.docx", // only one leading token is stripped
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q)=%q want %q", in, got, want)
		}
	}
}

func TestNormalizeNameIsStable(t *testing.T) {
	// Normalizing an already-normalized name must be a no-op.
	for _, in := range []string{"report.pdf", "copy of report (1).pdf", "weird (x).txt"} {
		once := NormalizeName(in)
		if twice := NormalizeName(once); twice != once {
			t.Fatalf("normalize not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}
