// Package app binds the note store, the editor session and the host user
// into the widget the TUI and the CLI drive.
package app

import (
	"context"

	"github.com/cristianoliveira/tmux-notes/internal/editor"
	"github.com/cristianoliveira/tmux-notes/internal/errors"
	"github.com/cristianoliveira/tmux-notes/internal/identity"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
	"github.com/cristianoliveira/tmux-notes/internal/storage"
)

// View is everything needed to render the widget.
type View struct {
	User   identity.User
	Count  int
	Notes  []notes.Note
	Editor editor.State
}

// Widget exposes the presentation intents. Each intent either succeeds or
// returns a classified error from internal/errors.
type Widget struct {
	store   *notes.Store
	session *editor.Session
	user    identity.User
}

// NewWidget creates a Widget over store and session.
func NewWidget(store *notes.Store, session *editor.Session) *Widget {
	if store == nil {
		panic("NewWidget: store dependency cannot be nil")
	}
	if session == nil {
		panic("NewWidget: session dependency cannot be nil")
	}
	return &Widget{store: store, session: session}
}

// Mount resolves the host user and loads the persisted snapshot. Both calls
// run once and are best-effort: the returned error is the storage failure,
// if any, after the empty collection was loaded.
func (w *Widget) Mount(ctx context.Context, users identity.Gateway, gateway storage.Gateway, key string) error {
	if users != nil {
		w.user = identity.Resolve(ctx, users)
	}
	return w.store.LoadFrom(ctx, gateway, key)
}

// Add creates a note from text directly.
func (w *Widget) Add(text string) (notes.Note, error) {
	return w.store.Add(text)
}

// Edit replaces the text of note id directly.
func (w *Widget) Edit(id int64, text string) (notes.Note, error) {
	return w.store.Update(id, text)
}

// Delete removes note id.
func (w *Widget) Delete(id int64) error {
	return w.store.Remove(id)
}

// StartAdd opens the editor for a new note.
func (w *Widget) StartAdd() error {
	return w.session.OpenNew()
}

// StartEdit opens the editor on note id with its current text.
func (w *Widget) StartEdit(id int64) error {
	note, ok := w.store.Get(id)
	if !ok {
		return errors.NotFound(id)
	}
	return w.session.OpenEdit(note.ID, note.Text)
}

// CancelEdit closes the editor without changes.
func (w *Widget) CancelEdit() error {
	return w.session.Cancel()
}

// UpdateDraft replaces the draft and returns the stored, capped text.
func (w *Widget) UpdateDraft(text string) (string, error) {
	return w.session.SetDraftText(text)
}

// Confirm submits the draft.
func (w *Widget) Confirm() (notes.Note, error) {
	return w.session.Confirm()
}

// Note returns note id.
func (w *Widget) Note(id int64) (notes.Note, bool) {
	return w.store.Get(id)
}

// Notes returns the collection in insertion order.
func (w *Widget) Notes() []notes.Note {
	return w.store.Notes()
}

// Count returns the number of notes.
func (w *Widget) Count() int {
	return w.store.Count()
}

// User returns the resolved host user.
func (w *Widget) User() identity.User {
	return w.user
}

// View returns a consistent copy of the widget state.
func (w *Widget) View() View {
	snap := w.store.Snapshot()
	return View{
		User:   w.user,
		Count:  snap.Count,
		Notes:  snap.ListNotes,
		Editor: w.session.State(),
	}
}
