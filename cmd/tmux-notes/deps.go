package main

import (
	"context"
	"sync"

	"github.com/cristianoliveira/tmux-notes/internal/app"
	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/config"
	"github.com/cristianoliveira/tmux-notes/internal/errors"
	"github.com/cristianoliveira/tmux-notes/internal/logging"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
	"github.com/cristianoliveira/tmux-notes/internal/tmux"
	"github.com/cristianoliveira/tmux-notes/internal/tui/state"
	"github.com/cristianoliveira/tmux-notes/internal/version"
)

// notesClient opens the runtime on first use, after the root command loaded
// the configuration.
type notesClient struct {
	open func(ctx context.Context, opts app.RuntimeOptions) (*app.Runtime, error)
	// status is nil outside tmux or when disabled in config.
	status countPublisher

	mu       sync.Mutex
	rt       *app.Runtime
	writeErr error
}

type countPublisher interface {
	Publish(ctx context.Context, count int) error
}

func newNotesClient() *notesClient {
	return &notesClient{open: app.Open}
}

func statusPublisher() countPublisher {
	if !tmux.InsideTmux() || !config.GetBool("tmux_status_enabled", true) {
		return nil
	}
	p, err := tmux.NewStatusPublisher(tmux.NewDefaultClient(), config.Get("tmux_status_option", tmux.DefaultCountOption))
	if err != nil {
		logging.Warn("tmux status disabled", "error", err)
		return nil
	}
	return p
}

var client = newNotesClient()

func (c *notesClient) runtime(ctx context.Context) (*app.Runtime, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rt != nil {
		return c.rt, nil
	}
	rt, err := c.open(ctx, app.RuntimeOptions{OnError: c.recordWriteError})
	if err != nil {
		return nil, err
	}
	if c.status == nil {
		c.status = statusPublisher()
	}
	if rt.LoadErr != nil {
		colors.Warning("could not read saved notes, starting empty: " + rt.LoadErr.Error())
	}
	c.rt = rt
	return rt, nil
}

func (c *notesClient) recordWriteError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeErr = err
}

func (c *notesClient) Add(ctx context.Context, text string) (notes.Note, error) {
	rt, err := c.runtime(ctx)
	if err != nil {
		return notes.Note{}, err
	}
	note, err := rt.Widget.Add(text)
	if err != nil {
		return notes.Note{}, err
	}
	return note, c.flush(ctx, rt)
}

func (c *notesClient) Edit(ctx context.Context, id int64, text string) (notes.Note, error) {
	rt, err := c.runtime(ctx)
	if err != nil {
		return notes.Note{}, err
	}
	note, err := rt.Widget.Edit(id, text)
	if err != nil {
		return notes.Note{}, err
	}
	return note, c.flush(ctx, rt)
}

func (c *notesClient) Delete(ctx context.Context, id int64) error {
	rt, err := c.runtime(ctx)
	if err != nil {
		return err
	}
	if err := rt.Widget.Delete(id); err != nil {
		return err
	}
	return c.flush(ctx, rt)
}

func (c *notesClient) Notes(ctx context.Context) ([]notes.Note, error) {
	rt, err := c.runtime(ctx)
	if err != nil {
		return nil, err
	}
	return rt.Widget.Notes(), nil
}

func (c *notesClient) RunTUI(ctx context.Context) error {
	rt, err := c.runtime(ctx)
	if err != nil {
		return err
	}
	if err := state.Run(ctx, rt); err != nil {
		return err
	}
	// The screen already showed its write failures.
	rt.Persister.SetOnError(c.recordWriteError)
	return c.flush(ctx, rt)
}

func (c *notesClient) Version() string {
	return version.String()
}

// flush waits for the writes of this invocation and returns the last
// failure, if any. After a clean flush the count is copied to tmux.
func (c *notesClient) flush(ctx context.Context, rt *app.Runtime) error {
	if err := rt.Flush(ctx); err != nil {
		return errors.Storage("flush", err)
	}
	c.mu.Lock()
	err := c.writeErr
	c.writeErr = nil
	status := c.status
	c.mu.Unlock()
	if err != nil {
		return err
	}
	if status != nil {
		if pubErr := status.Publish(ctx, rt.Widget.Count()); pubErr != nil {
			logging.Debug("tmux status not updated", "error", pubErr)
		}
	}
	return nil
}

// Close drains pending writes and releases storage.
func (c *notesClient) Close() error {
	c.mu.Lock()
	rt := c.rt
	c.rt = nil
	c.mu.Unlock()
	if rt == nil {
		return nil
	}
	return rt.Close()
}
