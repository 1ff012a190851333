package sqlite

import (
	"errors"

	"github.com/cristianoliveira/tmux-notes/internal/storage/kv"
)

var (
	// ErrEmptyPath indicates a missing database path.
	ErrEmptyPath = errors.New("db path cannot be empty")
	// ErrClosed indicates the storage was used after Close.
	ErrClosed = kv.ErrClosed
)
