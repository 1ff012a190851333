// Package storage provides the key/value storage gateway that tmux-notes
// persists its snapshot through, and the backends that implement it.
package storage

import (
	"context"

	"github.com/cristianoliveira/tmux-notes/internal/storage/kv"
)

// Gateway is the host key/value store. Both calls may block on I/O and may
// fail; callers treat a failure as best-effort and keep their own state.
type Gateway interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Close releases the backend.
	Close() error
}

var (
	// ErrInvalidKey indicates an empty or malformed storage key.
	ErrInvalidKey = kv.ErrInvalidKey
	// ErrClosed indicates the gateway was used after Close. Every backend
	// returns this same value.
	ErrClosed = kv.ErrClosed
)

// ValidateKey rejects keys that cannot be used as a row key or file name.
// All backends apply it, so a key valid for one is valid for all.
func ValidateKey(key string) error {
	return kv.ValidateKey(key)
}
