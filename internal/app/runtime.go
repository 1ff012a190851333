package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianoliveira/tmux-notes/internal/config"
	"github.com/cristianoliveira/tmux-notes/internal/editor"
	"github.com/cristianoliveira/tmux-notes/internal/identity"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
	"github.com/cristianoliveira/tmux-notes/internal/storage"
)

// RuntimeOptions overrides the parts of a Runtime that are normally built
// from the global config.
type RuntimeOptions struct {
	Gateway   storage.Gateway
	Users     identity.Gateway
	Scheduler editor.Scheduler
	Key       string
	Timeout   time.Duration
	OnError   func(error)
}

// Runtime owns a mounted Widget and the resources behind it, including a
// gateway passed in RuntimeOptions.
type Runtime struct {
	Widget    *Widget
	Session   *editor.Session
	Persister *notes.Persister
	// LoadErr is the storage failure seen while mounting. The widget then
	// holds the empty collection.
	LoadErr error
	gateway storage.Gateway
}

// Open builds the storage gateway, persister, store, session and widget and
// mounts the widget. A storage read failure does not fail Open; it is kept
// in Runtime.LoadErr.
func Open(ctx context.Context, opts RuntimeOptions) (*Runtime, error) {
	gateway := opts.Gateway
	if gateway == nil {
		gw, err := storage.NewFromConfig()
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		gateway = gw
	}
	if opts.Key == "" {
		opts.Key = config.Get("storage_key", notes.DefaultStorageKey)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.GetDuration("storage_timeout", notes.DefaultWriteTimeout)
	}
	if opts.Users == nil {
		opts.Users = identity.NewHostGateway()
	}

	persister := notes.NewPersister(gateway, notes.PersisterOptions{
		Key:     opts.Key,
		Timeout: opts.Timeout,
		OnError: opts.OnError,
	})
	store := notes.NewStore(persister)

	var sessionOpts []editor.Option
	if opts.Scheduler != nil {
		sessionOpts = append(sessionOpts, editor.WithScheduler(opts.Scheduler))
	}
	session := editor.NewSession(store, sessionOpts...)

	rt := &Runtime{
		Widget:    NewWidget(store, session),
		Session:   session,
		Persister: persister,
		gateway:   gateway,
	}
	rt.LoadErr = rt.Widget.Mount(ctx, opts.Users, gateway, opts.Key)
	return rt, nil
}

// Flush waits for pending writes.
func (r *Runtime) Flush(ctx context.Context) error {
	return r.Persister.Flush(ctx)
}

// Close drains pending writes and closes the gateway.
func (r *Runtime) Close() error {
	if err := r.Persister.Close(); err != nil {
		return err
	}
	return r.gateway.Close()
}
