// Package audit keeps an append-only JSONL history of scans so earlier
// results can be reviewed without re-scanning.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type ScanRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	ScanID       string    `json:"scan_id"`
	Root         string    `json:"root"`
	FilesScanned int       `json:"files_scanned"`
	GroupCount   int       `json:"group_count"`
	WastedBytes  int64     `json:"wasted_bytes"`
	Duration     string    `json:"duration"`
	Outcome      string    `json:"outcome"` // completed | cancelled | failed
}

type Log struct {
	logPath string
}

// NewLog stores history under dataDir.
func NewLog(dataDir string) *Log {
	return &Log{logPath: filepath.Join(dataDir, "scan_history.jsonl")}
}

// LoadHistory returns records newest-first. Corrupt lines are skipped.
func (l *Log) LoadHistory() ([]ScanRecord, error) {
	f, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open scan history: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var record ScanRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scan history: %w", err)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Append writes one record to the history file, creating it if needed.
func (l *Log) Append(record ScanRecord) error {
	if record.ScanID == "" {
		record.ScanID = fmt.Sprintf("scan_%d", time.Now().Unix())
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0755); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}
	f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open scan history: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write scan record: %w", err)
	}
	return nil
}
