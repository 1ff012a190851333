// Package sqlite provides a SQLite-backed key/value gateway.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/storage/kv"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

const (
	getSQL = `SELECT value FROM kv WHERE key = ?`
	setSQL = `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// SQLiteStorage stores values in a single kv table.
type SQLiteStorage struct {
	db     *sql.DB
	closed atomic.Bool
}

// NewSQLiteStorage creates a SQLite-backed storage at the provided path.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: %w", ErrEmptyPath)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}
	// One connection serialises writers; the widget issues one write at a time anyway.
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db}
	if err := storage.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStorage) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}

	return nil
}

// Get returns the value stored under key.
func (s *SQLiteStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, ErrClosed
	}
	if err := kv.ValidateKey(key); err != nil {
		return "", false, fmt.Errorf("sqlite storage: %w", err)
	}
	var value string
	err := s.db.QueryRowContext(ctx, getSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		colors.StructuredError("storage", "get", "failed", err, key, map[string]interface{}{"backend": "sqlite"})
		return "", false, fmt.Errorf("sqlite storage: get %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value stored under key.
func (s *SQLiteStorage) Set(ctx context.Context, key, value string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := kv.ValidateKey(key); err != nil {
		return fmt.Errorf("sqlite storage: %w", err)
	}
	start := time.Now()
	if _, err := s.db.ExecContext(ctx, setSQL, key, value, utcNow()); err != nil {
		colors.StructuredError("storage", "set", "failed", err, key, map[string]interface{}{"backend": "sqlite"})
		return fmt.Errorf("sqlite storage: set %s: %w", key, err)
	}
	colors.StructuredDebug("storage", "set", "completed", nil, key, map[string]interface{}{
		"backend":          "sqlite",
		"bytes":            len(value),
		"duration_seconds": time.Since(start).Seconds(),
	})
	return nil
}

func utcNow() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
