package storage

import (
	"context"
	"fmt"
	"os"
	"time"
)

const (
	lockTimeout = 10 * time.Second
	lockRetry   = 50 * time.Millisecond
)

// Lock represents a directory-based lock. Creating the directory takes the
// lock; removing it releases it.
type Lock struct {
	dir string
}

// NewLock creates a new lock at the given directory path.
func NewLock(dir string) *Lock {
	return &Lock{dir: dir}
}

// Acquire attempts to acquire the lock, retrying until timeout or until ctx
// is done.
func (l *Lock) Acquire(ctx context.Context) error {
	deadline := time.Now().Add(lockTimeout)
	for {
		err := os.Mkdir(l.dir, FileModeDir)
		if err == nil {
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("create lock directory: %w", err)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("lock %s still held after %s", l.dir, lockTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetry):
		}
	}
}

// Release releases the lock by removing the directory.
func (l *Lock) Release() error {
	return os.Remove(l.dir)
}

// WithLock executes fn while holding the lock.
func WithLock(ctx context.Context, dir string, fn func() error) error {
	lock := NewLock(dir)
	if err := lock.Acquire(ctx); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer lock.Release()
	return fn()
}
