package state

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/tmux-notes/internal/app"
	"github.com/cristianoliveira/tmux-notes/internal/editor"
	"github.com/cristianoliveira/tmux-notes/internal/tui/render"
)

// View renders the TUI.
func (m *Model) View() string {
	width := m.width
	if width == 0 {
		width = defaultViewportWidth
	}
	height := m.height
	if height == 0 {
		height = defaultViewportHeight + chromeLines
	}

	v := m.widget.View()
	m.clampCursor(len(v.Notes))

	var modal string
	if v.Editor.Mode.Composing() {
		modal = render.Modal(render.ModalState{
			Editing:      v.Editor.Mode == editor.ModeComposingEdit,
			Input:        m.input.View(),
			CharCount:    v.Editor.CharCount,
			ErrorVisible: v.Editor.ErrorVisible,
			Width:        width,
		})
	}

	listHeight := height - chromeLines - lipgloss.Height(modal)
	if modal == "" {
		listHeight = height - chromeLines
	}
	if listHeight < 1 {
		listHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = listHeight
	m.viewport.SetContent(m.listContent(v, width))
	m.ensureCursorVisible()

	var s strings.Builder
	s.WriteString(render.Header(render.HeaderState{
		UserName: v.User.DisplayName(),
		Count:    v.Count,
		Width:    width,
	}))
	s.WriteString("\n\n")
	s.WriteString(m.viewport.View())
	if modal != "" {
		s.WriteString("\n")
		s.WriteString(modal)
	}
	s.WriteString("\n")
	latest, _ := m.errorHandler.GetLatest()
	s.WriteString(render.StatusLine(render.StatusState{Text: latest.Text, Type: latest.Type, Width: width}))
	s.WriteString("\n")
	s.WriteString(render.Footer(render.FooterState{
		Composing: v.Editor.Mode.Composing(),
		HasNotes:  v.Count > 0,
		Width:     width,
	}))
	return s.String()
}

func (m *Model) listContent(v app.View, width int) string {
	if len(v.Notes) == 0 {
		return render.Empty()
	}
	rows := make([]string, len(v.Notes))
	for i, n := range v.Notes {
		rows[i] = render.Row(render.RowState{
			Note:     n,
			Index:    i,
			Width:    width,
			Selected: i == m.cursor && !v.Editor.Mode.Composing(),
		})
	}
	return strings.Join(rows, "\n")
}

// ensureCursorVisible scrolls the viewport so the cursor row is shown.
func (m *Model) ensureCursorVisible() {
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}
