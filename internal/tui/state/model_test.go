package state

import (
	"context"
	stderrors "errors"
	"regexp"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tmux-notes/internal/app"
	"github.com/cristianoliveira/tmux-notes/internal/editor"
	"github.com/cristianoliveira/tmux-notes/internal/identity"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
	"github.com/cristianoliveira/tmux-notes/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedUsers struct{}

func (fixedUsers) Current(context.Context) (identity.User, error) {
	return identity.User{Name: "Ada"}, nil
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func newTestModel(t *testing.T, seed string) (*Model, *app.Runtime, *editor.ManualScheduler) {
	t.Helper()
	gw := storage.NewMemoryStorage()
	if seed != "" {
		require.NoError(t, gw.Set(context.Background(), notes.DefaultStorageKey, seed))
	}
	sched := &editor.ManualScheduler{}
	rt, err := app.Open(context.Background(), app.RuntimeOptions{
		Gateway:   gw,
		Users:     fixedUsers{},
		Scheduler: sched,
		Key:       notes.DefaultStorageKey,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	m := NewModel(rt.Widget)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	return m, rt, sched
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(keyRunes(string(r)))
	}
}

func plainView(m *Model) string {
	return ansi.ReplaceAllString(m.View(), "")
}

const twoNotes = `{"count":2,"listNotes":[{"id":1,"text":"a"},{"id":2,"text":"b"}]}`

func TestNewModelShowsLoadedNotes(t *testing.T) {
	m, _, _ := newTestModel(t, twoNotes)

	out := plainView(m)
	assert.Contains(t, out, "Ada's notes")
	assert.Contains(t, out, "2 notes")
	assert.Contains(t, out, "1. a")
	assert.Contains(t, out, "2. b")
}

func TestAddFlow(t *testing.T) {
	m, rt, _ := newTestModel(t, "")
	assert.Contains(t, plainView(m), "No notes yet")

	m.Update(keyRunes("a"))
	require.Equal(t, editor.ModeComposingNew, rt.Widget.View().Editor.Mode)
	assert.Contains(t, plainView(m), "New note")

	typeText(m, "buy milk")
	assert.Equal(t, 8, rt.Widget.View().Editor.CharCount)
	assert.Contains(t, plainView(m), "8/100")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v := rt.Widget.View()
	assert.Equal(t, editor.ModeIdle, v.Editor.Mode)
	require.Len(t, v.Notes, 1)
	assert.Equal(t, "buy milk", v.Notes[0].Text)
	assert.Contains(t, plainView(m), "1 note")
}

func TestEmptyConfirmShowsErrorUntilTimer(t *testing.T) {
	m, rt, sched := newTestModel(t, twoNotes)

	m.Update(keyRunes("j"))
	m.Update(keyRunes("e"))
	require.Equal(t, int64(2), rt.Widget.View().Editor.EditID)
	assert.Contains(t, plainView(m), "Edit note")

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	v := rt.Widget.View()
	assert.Equal(t, editor.ModeComposingEdit, v.Editor.Mode)
	assert.True(t, v.Editor.ErrorVisible)
	assert.Contains(t, plainView(m), "Enter some text!")

	sched.Advance(editor.ErrorDismissDelay)
	m.Update(DraftErrorDismissedMsg{})
	assert.NotContains(t, plainView(m), "Enter some text!")
	assert.Equal(t, editor.ModeComposingEdit, rt.Widget.View().Editor.Mode)
}

func TestEscCancelsWithoutMutation(t *testing.T) {
	m, rt, _ := newTestModel(t, "")

	m.Update(keyRunes("a"))
	typeText(m, "note")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	v := rt.Widget.View()
	assert.Equal(t, editor.ModeIdle, v.Editor.Mode)
	assert.Empty(t, v.Editor.Draft)
	assert.Zero(t, v.Count)
}

func TestDeleteSelectedNote(t *testing.T) {
	m, rt, _ := newTestModel(t, twoNotes)

	m.Update(keyRunes("j"))
	m.Update(keyRunes("d"))
	assert.Equal(t, []notes.Note{{ID: 1, Text: "a"}}, rt.Widget.View().Notes)
	assert.Equal(t, 0, m.cursor)

	m.Update(keyRunes("d"))
	assert.Zero(t, rt.Widget.View().Count)
	m.Update(keyRunes("d"))
	assert.Zero(t, m.cursor)
}

func TestCursorStaysInBounds(t *testing.T) {
	m, _, _ := newTestModel(t, twoNotes)

	m.Update(keyRunes("k"))
	assert.Equal(t, 0, m.cursor)
	m.Update(keyRunes("j"))
	m.Update(keyRunes("j"))
	m.Update(keyRunes("j"))
	assert.Equal(t, 1, m.cursor)
}

func TestStorageErrorShowsOnStatusLine(t *testing.T) {
	m, _, _ := newTestModel(t, "")

	_, cmd := m.Update(StorageErrorMsg{Err: stderrors.New("disk full")})
	require.NotNil(t, cmd)
	assert.Contains(t, plainView(m), "disk full")

	latest, ok := m.errorHandler.GetLatest()
	require.True(t, ok)
	m.Update(errorMsg{at: latest.Timestamp})
	assert.NotContains(t, plainView(m), "disk full")
}

func TestNewerStatusSurvivesOlderClear(t *testing.T) {
	m, _, _ := newTestModel(t, "")

	m.Update(StorageErrorMsg{Err: stderrors.New("first")})
	m.Update(StorageErrorMsg{Err: stderrors.New("second")})
	m.Update(errorMsg{at: time.Now().Add(-time.Hour)})
	assert.Contains(t, plainView(m), "second")
}

func TestQuitKeys(t *testing.T) {
	m, rt, _ := newTestModel(t, "")

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// While composing, q is text.
	m.Update(keyRunes("a"))
	m.Update(keyRunes("q"))
	assert.Equal(t, editor.ModeComposingNew, rt.Widget.View().Editor.Mode)
	assert.Equal(t, "q", rt.Widget.View().Editor.Draft)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
