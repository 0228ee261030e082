package pagestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const createPageStateTable = `
CREATE TABLE IF NOT EXISTS page_state (
	key TEXT PRIMARY KEY,
	value INTEGER NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

const upsertPageState = `
INSERT INTO page_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

// SQLiteStore persists values in a SQLite database.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at dbPath and
// initializes its schema. Use ":memory:" for a throwaway database.
func OpenSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, createPageStateTable); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create page_state schema: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, key string) (int, bool, error) {
	var value int
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM page_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Store.
func (s *SQLiteStore) Set(ctx context.Context, key string, value int) error {
	if _, err := s.conn.ExecContext(ctx, upsertPageState, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
