package app

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/cristianoliveira/tmux-notes/internal/editor"
	"github.com/cristianoliveira/tmux-notes/internal/errors"
	"github.com/cristianoliveira/tmux-notes/internal/identity"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
	"github.com/cristianoliveira/tmux-notes/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedUsers struct {
	user identity.User
	err  error
}

func (f fixedUsers) Current(context.Context) (identity.User, error) {
	return f.user, f.err
}

func openTestRuntime(t *testing.T, gw storage.Gateway) (*Runtime, *editor.ManualScheduler) {
	t.Helper()
	sched := &editor.ManualScheduler{}
	rt, err := Open(context.Background(), RuntimeOptions{
		Gateway:   gw,
		Users:     fixedUsers{user: identity.User{Name: "Ada"}},
		Scheduler: sched,
		Key:       notes.DefaultStorageKey,
		Timeout:   time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	return rt, sched
}

func storedSnapshot(t *testing.T, gw storage.Gateway) notes.Snapshot {
	t.Helper()
	raw, found, err := gw.Get(context.Background(), notes.DefaultStorageKey)
	require.NoError(t, err)
	require.True(t, found)
	snap, err := notes.DecodeSnapshot(raw)
	require.NoError(t, err)
	return snap
}

func TestAddThroughEditorPersists(t *testing.T) {
	gw := storage.NewMemoryStorage()
	rt, _ := openTestRuntime(t, gw)
	w := rt.Widget
	require.NoError(t, rt.LoadErr)
	assert.Equal(t, "Ada", w.View().User.DisplayName())

	require.NoError(t, w.StartAdd())
	_, err := w.UpdateDraft("buy milk")
	require.NoError(t, err)
	note, err := w.Confirm()
	require.NoError(t, err)

	v := w.View()
	assert.Equal(t, 1, v.Count)
	assert.Equal(t, []notes.Note{note}, v.Notes)
	assert.Equal(t, editor.ModeIdle, v.Editor.Mode)

	require.NoError(t, rt.Flush(context.Background()))
	assert.Equal(t, notes.Snapshot{Count: 1, ListNotes: []notes.Note{note}}, storedSnapshot(t, gw))
}

func TestDeletePersistsExactPostState(t *testing.T) {
	gw := storage.NewMemoryStorage()
	require.NoError(t, gw.Set(context.Background(), notes.DefaultStorageKey,
		`{"count":2,"listNotes":[{"id":1,"text":"a"},{"id":2,"text":"b"}]}`))
	rt, _ := openTestRuntime(t, gw)

	require.NoError(t, rt.Widget.Delete(1))
	require.NoError(t, rt.Flush(context.Background()))

	want := notes.Snapshot{Count: 1, ListNotes: []notes.Note{{ID: 2, Text: "b"}}}
	assert.Equal(t, want.ListNotes, rt.Widget.Notes())
	assert.Equal(t, want, storedSnapshot(t, gw))
}

func TestEmptyEditShowsErrorUntilDismissed(t *testing.T) {
	gw := storage.NewMemoryStorage()
	require.NoError(t, gw.Set(context.Background(), notes.DefaultStorageKey,
		`{"count":2,"listNotes":[{"id":1,"text":"a"},{"id":2,"text":"b"}]}`))
	rt, sched := openTestRuntime(t, gw)
	w := rt.Widget

	require.NoError(t, w.StartEdit(2))
	assert.Equal(t, "b", w.View().Editor.Draft)
	_, err := w.UpdateDraft("")
	require.NoError(t, err)
	_, err = w.Confirm()
	assert.True(t, stderrors.Is(err, errors.ErrEmpty))

	v := w.View()
	assert.Equal(t, editor.ModeComposingEdit, v.Editor.Mode)
	assert.Equal(t, int64(2), v.Editor.EditID)
	assert.True(t, v.Editor.ErrorVisible)

	sched.Advance(editor.ErrorDismissDelay)
	v = w.View()
	assert.False(t, v.Editor.ErrorVisible)
	assert.Equal(t, editor.ModeComposingEdit, v.Editor.Mode)
	assert.Equal(t, "b", v.Notes[1].Text)
}

func TestCancelLeavesStoreUntouched(t *testing.T) {
	gw := new(storage.MockGateway)
	gw.On("Get", mock.Anything, notes.DefaultStorageKey).Return("", false, nil)
	gw.On("Close").Return(nil)
	rt, _ := openTestRuntime(t, gw)
	w := rt.Widget

	require.NoError(t, w.StartAdd())
	_, err := w.UpdateDraft("note")
	require.NoError(t, err)
	require.NoError(t, w.CancelEdit())
	require.NoError(t, rt.Flush(context.Background()))

	v := w.View()
	assert.Equal(t, editor.ModeIdle, v.Editor.Mode)
	assert.Empty(t, v.Editor.Draft)
	assert.Zero(t, v.Count)
	gw.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestStartEditUnknownNote(t *testing.T) {
	rt, _ := openTestRuntime(t, storage.NewMemoryStorage())
	err := rt.Widget.StartEdit(404)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
	assert.Equal(t, editor.ModeIdle, rt.Widget.View().Editor.Mode)
}

func TestMountSurvivesStorageAndIdentityFailures(t *testing.T) {
	gw := new(storage.MockGateway)
	gw.On("Get", mock.Anything, notes.DefaultStorageKey).Return("", false, stderrors.New("offline"))
	gw.On("Set", mock.Anything, notes.DefaultStorageKey, mock.Anything).Return(stderrors.New("offline"))
	gw.On("Close").Return(nil)

	var (
		mu       sync.Mutex
		reported []error
	)
	rt, err := Open(context.Background(), RuntimeOptions{
		Gateway: gw,
		Users:   fixedUsers{err: stderrors.New("no user")},
		Key:     notes.DefaultStorageKey,
		OnError: func(err error) {
			mu.Lock()
			defer mu.Unlock()
			reported = append(reported, err)
		},
	})
	require.NoError(t, err)
	defer rt.Close()

	assert.True(t, stderrors.Is(rt.LoadErr, errors.ErrStorage))
	assert.True(t, rt.Widget.User().Anonymous())
	assert.Zero(t, rt.Widget.Count())

	note, err := rt.Widget.Add("still works offline")
	require.NoError(t, err)
	require.NoError(t, rt.Flush(context.Background()))

	mu.Lock()
	require.Len(t, reported, 1)
	assert.True(t, stderrors.Is(reported[0], errors.ErrStorage))
	mu.Unlock()

	got, ok := rt.Widget.Note(note.ID)
	require.True(t, ok)
	assert.Equal(t, "still works offline", got.Text)
	assert.Equal(t, 1, rt.Widget.Count())
}

func TestDirectEditAndValidation(t *testing.T) {
	rt, _ := openTestRuntime(t, storage.NewMemoryStorage())
	w := rt.Widget

	note, err := w.Add("draft")
	require.NoError(t, err)
	_, err = w.Edit(note.ID, "final")
	require.NoError(t, err)
	got, ok := w.Note(note.ID)
	require.True(t, ok)
	assert.Equal(t, "final", got.Text)

	_, err = w.Add("   ")
	assert.True(t, stderrors.Is(err, errors.ErrEmpty))
	assert.Equal(t, 1, w.Count())
}
