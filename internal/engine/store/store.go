// Package store persists the set of already-profiled channel ids so reruns
// and overlapping queries skip channels they have seen.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB is a SQLite-backed seen-channel store. A nil *DB disables dedup.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the store at path, creating parent directories.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("store: mkdir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &DB{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS channels (
		id      TEXT PRIMARY KEY,
		emails  INTEGER NOT NULL DEFAULT 0,
		seen_at TEXT NOT NULL
	)`)
	return err
}

// Seen reports whether a channel id has been profiled before.
func (d *DB) Seen(channelID string) (bool, error) {
	if d == nil {
		return false, nil
	}
	var one int
	err := d.db.QueryRow(`SELECT 1 FROM channels WHERE id = ?`, channelID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: seen: %w", err)
	}
	return true, nil
}

// MarkSeen records a profiled channel and its email count. Re-marking a
// channel updates the count.
func (d *DB) MarkSeen(channelID string, emailCount int) error {
	if d == nil {
		return nil
	}
	_, err := d.db.Exec(
		`INSERT INTO channels (id, emails, seen_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET emails = excluded.emails, seen_at = excluded.seen_at`,
		channelID, emailCount, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store: mark seen: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (d *DB) Close() error {
	if d == nil {
		return nil
	}
	return d.db.Close()
}
