// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "papers.db"

// SQLiteStore persists cache entries in a single-table SQLite database.
// The payload is the JSON-encoded record; the expiry is a separate column
// so sweeps can prune without decoding payloads.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the cache database at dir/papers.db.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS papers (
		key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		expires_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get implements Storage.
func (s *SQLiteStore) Get(key string) (Entry, bool, error) {
	var payload, expiresAt string
	err := s.db.QueryRow(
		`SELECT payload, expires_at FROM papers WHERE key = ?`, key,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("querying cache: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(payload), &entry.Paper); err != nil {
		return Entry{}, false, fmt.Errorf("decoding cached paper: %w", err)
	}
	entry.ExpiresAt, err = time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return Entry{}, false, fmt.Errorf("parsing expiry: %w", err)
	}
	return entry, true, nil
}

// Put implements Storage.
func (s *SQLiteStore) Put(key string, entry Entry) error {
	payload, err := json.Marshal(entry.Paper)
	if err != nil {
		return fmt.Errorf("encoding paper: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO papers (key, payload, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at`,
		key, string(payload), entry.ExpiresAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}
	return nil
}

// Delete implements Storage.
func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM papers WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// List implements Lister.
func (s *SQLiteStore) List() (map[string]Entry, error) {
	rows, err := s.db.Query(`SELECT key, payload, expires_at FROM papers`)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	defer rows.Close()

	out := make(map[string]Entry)
	for rows.Next() {
		var key, payload, expiresAt string
		if err := rows.Scan(&key, &payload, &expiresAt); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}
		var entry Entry
		if err := json.Unmarshal([]byte(payload), &entry.Paper); err != nil {
			continue
		}
		entry.ExpiresAt, _ = time.Parse(time.RFC3339, expiresAt)
		out[key] = entry
	}
	return out, rows.Err()
}

// Clear implements Clearer.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM papers`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// Sweep removes every expired entry and reports how many were pruned.
func (s *SQLiteStore) Sweep(now time.Time) (int, error) {
	res, err := s.db.Exec(
		`DELETE FROM papers WHERE expires_at < ?`,
		now.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("sweeping cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
