// Package kv holds the key rules and errors shared by every storage backend.
package kv

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrInvalidKey indicates an empty or malformed storage key.
	ErrInvalidKey = errors.New("invalid storage key")
	// ErrClosed indicates the gateway was used after Close.
	ErrClosed = errors.New("storage gateway closed")
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

// ValidateKey rejects keys that cannot be used as a row key or file name.
func ValidateKey(key string) error {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
