package state

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tmux-notes/internal/app"
	"github.com/cristianoliveira/tmux-notes/internal/errors"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
)

const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	// header, blank line, status line, footer
	chromeLines        = 4
	draftHeight        = 3
	errorClearDuration = 5 * time.Second
)

// Widget is the part of app.Widget the screen drives.
type Widget interface {
	StartAdd() error
	StartEdit(id int64) error
	CancelEdit() error
	UpdateDraft(text string) (string, error)
	Confirm() (notes.Note, error)
	Delete(id int64) error
	View() app.View
}

// Model represents the TUI model for bubbletea.
type Model struct {
	widget       Widget
	errorHandler *errors.TUIHandler
	keys         keyMap

	input    textarea.Model
	viewport viewport.Model
	cursor   int
	width    int
	height   int

	initCmd tea.Cmd
}

// NewModel creates a new TUI model over a mounted widget.
func NewModel(widget Widget) *Model {
	if widget == nil {
		panic("NewModel: widget dependency cannot be nil")
	}

	input := textarea.New()
	input.Placeholder = "Write a note..."
	input.CharLimit = notes.MaxTextLength
	input.ShowLineNumbers = false
	input.Prompt = ""
	input.SetHeight(draftHeight)
	input.KeyMap.InsertNewline.SetEnabled(false)

	m := &Model{
		widget:   widget,
		keys:     defaultKeyMap(),
		input:    input,
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
	}
	m.errorHandler = errors.NewTUIHandler(nil)
	return m
}

// ErrorHandler returns the handler feeding the status line.
func (m *Model) ErrorHandler() *errors.TUIHandler {
	return m.errorHandler
}

// Init initializes the TUI model.
func (m *Model) Init() tea.Cmd {
	return m.initCmd
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 8)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case DraftErrorDismissedMsg:
		return m, nil
	case StorageErrorMsg:
		return m, m.report(msg.Err)
	case errorMsg:
		m.errorHandler.ClearIfOlder(msg.at)
		return m, nil
	}

	if m.widget.View().Editor.Mode.Composing() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// report shows err on the status line and schedules its removal.
func (m *Model) report(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	errors.Report(m.errorHandler, err)
	latest, _ := m.errorHandler.GetLatest()
	return errorMsgAfter(errorClearDuration, latest.Timestamp)
}

// selected returns the note under the cursor.
func (m *Model) selected(list []notes.Note) (notes.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(list) {
		return notes.Note{}, false
	}
	return list[m.cursor], true
}

// clampCursor keeps the cursor inside a list of n notes.
func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
