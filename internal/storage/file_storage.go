package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/cristianoliveira/tmux-notes/internal/colors"
)

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644

	fileValueExt = ".json"
	lockDirName  = ".lock"
)

// FileStorage implements Gateway with one file per key under dir. Writes go
// to a temporary file that is renamed into place while holding a directory
// lock, so readers never observe a partial value.
type FileStorage struct {
	dir    string
	closed atomic.Bool
}

// NewFileStorage creates a FileStorage rooted at dir, creating it if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("file storage: directory cannot be empty")
	}
	if err := os.MkdirAll(dir, FileModeDir); err != nil {
		return nil, fmt.Errorf("file storage: create directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (fs *FileStorage) path(key string) string {
	return filepath.Join(fs.dir, key+fileValueExt)
}

// Get reads the value stored under key.
func (fs *FileStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if fs.closed.Load() {
		return "", false, ErrClosed
	}
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	start := time.Now()
	data, err := os.ReadFile(fs.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		colors.StructuredError("storage", "get", "failed", err, key, nil)
		return "", false, fmt.Errorf("file storage: read %s: %w", key, err)
	}
	colors.StructuredDebug("storage", "get", "completed", nil, key, map[string]interface{}{
		"bytes":            len(data),
		"duration_seconds": time.Since(start).Seconds(),
	})
	return string(data), true, nil
}

// Set writes value under key atomically.
func (fs *FileStorage) Set(ctx context.Context, key, value string) error {
	if fs.closed.Load() {
		return ErrClosed
	}
	if err := ValidateKey(key); err != nil {
		return err
	}
	return WithLock(ctx, filepath.Join(fs.dir, lockDirName), func() error {
		tmp, err := os.CreateTemp(fs.dir, key+".*.tmp")
		if err != nil {
			return fmt.Errorf("file storage: create temp file: %w", err)
		}
		tmpName := tmp.Name()
		defer os.Remove(tmpName)

		if _, err := tmp.WriteString(value); err != nil {
			tmp.Close()
			return fmt.Errorf("file storage: write %s: %w", key, err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("file storage: close %s: %w", key, err)
		}
		if err := os.Chmod(tmpName, FileModeFile); err != nil {
			return fmt.Errorf("file storage: chmod %s: %w", key, err)
		}
		if err := os.Rename(tmpName, fs.path(key)); err != nil {
			return fmt.Errorf("file storage: replace %s: %w", key, err)
		}
		colors.StructuredDebug("storage", "set", "completed", nil, key, map[string]interface{}{"bytes": len(value)})
		return nil
	})
}

// Close marks the storage closed. Files stay on disk.
func (fs *FileStorage) Close() error {
	fs.closed.Store(true)
	return nil
}
