package state

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg processes keyboard input for the TUI.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.widget.View().Editor.Mode.Composing() {
		return m.handleComposingKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.widget.View().Notes

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor(len(list))
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor(len(list))
	case key.Matches(msg, m.keys.Add):
		if err := m.widget.StartAdd(); err != nil {
			return m, m.report(err)
		}
		m.input.Reset()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Edit):
		note, ok := m.selected(list)
		if !ok {
			return m, nil
		}
		if err := m.widget.StartEdit(note.ID); err != nil {
			return m, m.report(err)
		}
		m.input.SetValue(m.widget.View().Editor.Draft)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Delete):
		note, ok := m.selected(list)
		if !ok {
			return m, nil
		}
		if err := m.widget.Delete(note.ID); err != nil {
			return m, m.report(err)
		}
		m.clampCursor(len(list) - 1)
	}
	return m, nil
}

func (m *Model) handleComposingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if err := m.widget.CancelEdit(); err != nil {
			return m, m.report(err)
		}
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m.confirm()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	stored, err := m.widget.UpdateDraft(m.input.Value())
	if err != nil {
		return m, tea.Batch(cmd, m.report(err))
	}
	if stored != m.input.Value() {
		m.input.SetValue(stored)
	}
	return m, cmd
}

func (m *Model) confirm() (tea.Model, tea.Cmd) {
	note, err := m.widget.Confirm()
	if err != nil {
		if m.widget.View().Editor.ErrorVisible {
			// The modal shows the empty-draft error itself.
			return m, nil
		}
		return m, m.report(err)
	}
	m.input.Blur()
	m.input.Reset()

	for i, n := range m.widget.View().Notes {
		if n.ID == note.ID {
			m.cursor = i
		}
	}
	return m, nil
}
