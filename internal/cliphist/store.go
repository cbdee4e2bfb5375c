// Package cliphist records clipboard history in a local SQLite database,
// deduplicated by content hash.
package cliphist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	_ "modernc.org/sqlite"
)

// Entry is one remembered clipboard item.
type Entry struct {
	ID        int64
	Timestamp time.Time
	Content   string
	Favorite  bool
}

// Store wraps the history database. Safe for concurrent use; database/sql
// serializes access.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	content   TEXT NOT NULL,
	favorite  INTEGER DEFAULT 0,
	hash      TEXT UNIQUE
);
CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp);
CREATE INDEX IF NOT EXISTS idx_history_favorite  ON history(favorite);
`

// Open opens (creating if needed) the history database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open clipboard history: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init clipboard history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Insert stores content unless an identical entry already exists. Returns
// true when a new row was written.
func (s *Store) Insert(content string, now time.Time) (bool, error) {
	h := fmt.Sprintf("%016x", xxhash.Sum64String(content))
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO history (timestamp, content, hash) VALUES (?, ?, ?)`,
		now.UTC().Format(time.RFC3339Nano), content, h,
	)
	if err != nil {
		return false, fmt.Errorf("insert clipboard entry: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, timestamp, content, favorite FROM history ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query clipboard history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		var fav int
		if err := rows.Scan(&e.ID, &ts, &e.Content, &fav); err != nil {
			return nil, err
		}
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		e.Favorite = fav != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

// ToggleFavorite flips the favorite flag on one entry. Returns false when
// the id does not exist.
func (s *Store) ToggleFavorite(id int64) (bool, error) {
	res, err := s.db.Exec(
		`UPDATE history SET favorite = CASE WHEN favorite = 0 THEN 1 ELSE 0 END WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
