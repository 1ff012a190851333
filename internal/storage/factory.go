package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/config"
	"github.com/cristianoliveira/tmux-notes/internal/storage/sqlite"
)

const (
	// BackendSQLite selects the SQLite key/value table.
	BackendSQLite = "sqlite"
	// BackendFile selects one file per key.
	BackendFile = "file"

	dbFileName = "notes.db"
	kvDirName  = "kv"
)

var _ Gateway = (*sqlite.SQLiteStorage)(nil)
var _ Gateway = (*FileStorage)(nil)
var _ Gateway = (*MemoryStorage)(nil)

// NewFromConfig creates the gateway selected by storage_backend under
// state_dir. config.Load must have run.
func NewFromConfig() (Gateway, error) {
	backend := config.Get("storage_backend", BackendSQLite)
	stateDir := config.Get("state_dir", "")
	return NewForBackend(backend, stateDir)
}

// NewForBackend creates a gateway for the provided backend name. A SQLite
// database that cannot be opened falls back to file storage in the same
// state directory so the widget stays usable.
func NewForBackend(backend, stateDir string) (Gateway, error) {
	if strings.TrimSpace(stateDir) == "" {
		return nil, fmt.Errorf("storage: state_dir not configured")
	}
	colors.Debug("state_dir: " + stateDir)

	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendFile:
		return NewFileStorage(filepath.Join(stateDir, kvDirName))
	case "", BackendSQLite:
		s, err := sqlite.NewSQLiteStorage(filepath.Join(stateDir, dbFileName))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to file: %v", err))
			return NewFileStorage(filepath.Join(stateDir, kvDirName))
		}
		return s, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
