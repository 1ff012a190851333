// Package render draws the pieces of the notes screen.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/errors"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
)

const (
	indexWidth      = 4
	minTextWidth    = 10
	defaultWidth    = 80
	modalPadding    = 4
	emptyListText   = "No notes yet. Press a to add one."
	emptyDraftError = "Enter some text!"
)

var (
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Red))).Bold(true)
)

// HeaderState defines the inputs needed to render the header.
type HeaderState struct {
	UserName string
	Count    int
	Width    int
}

// RowState defines the inputs needed to render a note row.
type RowState struct {
	Note     notes.Note
	Index    int
	Width    int
	Selected bool
}

// ModalState defines the inputs needed to render the editor modal.
type ModalState struct {
	Editing      bool
	Input        string
	CharCount    int
	ErrorVisible bool
	Width        int
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	Composing bool
	HasNotes  bool
	Width     int
}

// StatusState defines the inputs needed to render the status line.
type StatusState struct {
	Text  string
	Type  errors.MessageType
	Width int
}

// Header renders the greeting and the note count.
func Header(state HeaderState) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))

	title := "Notes"
	if state.UserName != "" {
		title = fmt.Sprintf("%s's notes", state.UserName)
	}
	count := fmt.Sprintf("%d %s", state.Count, plural(state.Count, "note", "notes"))

	width := widthOrDefault(state.Width)
	gap := width - utf8.RuneCountInString(title) - utf8.RuneCountInString(count)
	if gap < 2 {
		gap = 2
	}
	return titleStyle.Render(title) + strings.Repeat(" ", gap) + mutedStyle.Render(count)
}

// Row renders a single note row.
func Row(state RowState) string {
	rowStyle := lipgloss.NewStyle()
	if state.Selected {
		rowStyle = rowStyle.Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	}

	textWidth := widthOrDefault(state.Width) - indexWidth - 2
	if textWidth < minTextWidth {
		textWidth = minTextWidth
	}
	row := fmt.Sprintf("%*d. %s", indexWidth-2, state.Index+1, truncate(state.Note.Text, textWidth))
	return rowStyle.Render(row)
}

// Empty renders the placeholder for an empty list.
func Empty() string {
	return mutedStyle.Render(emptyListText)
}

// Modal renders the editor with its counter and validation error.
func Modal(state ModalState) string {
	width := widthOrDefault(state.Width) - modalPadding
	if width < minTextWidth {
		width = minTextWidth
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ansiColorNumber(colors.Cyan))).
		Padding(0, 1).
		Width(width)

	title := "New note"
	submit := "Add"
	if state.Editing {
		title = "Edit note"
		submit = "Save"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(state.Input)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(Counter(state.CharCount)))
	if state.ErrorVisible {
		b.WriteString("  ")
		b.WriteString(errorStyle.Render(emptyDraftError))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("enter: %s  |  esc: cancel", submit)))
	return box.Render(b.String())
}

// Counter renders the live character counter.
func Counter(count int) string {
	return fmt.Sprintf("%d/%d", count, notes.MaxTextLength)
}

// Footer renders the footer with help text.
func Footer(state FooterState) string {
	var help []string
	if state.Composing {
		help = append(help, "enter: save", "esc: cancel")
	} else {
		help = append(help, "a: add")
		if state.HasNotes {
			help = append(help, "j/k: move", "e: edit", "d: delete")
		}
		help = append(help, "q: quit")
	}
	return mutedStyle.Render(truncate(strings.Join(help, "  |  "), widthOrDefault(state.Width)))
}

// StatusLine renders a transient message, or "" when there is none.
func StatusLine(state StatusState) string {
	if state.Text == "" {
		return ""
	}
	color := colors.Blue
	switch state.Type {
	case errors.MessageTypeError:
		color = colors.Red
	case errors.MessageTypeWarning:
		color = colors.Yellow
	case errors.MessageTypeSuccess:
		color = colors.Green
	}
	line := fmt.Sprintf("%s: %s", state.Type, state.Text)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ansiColorNumber(color))).
		Render(truncate(line, widthOrDefault(state.Width)))
}

func widthOrDefault(width int) int {
	if width <= 0 {
		return defaultWidth
	}
	return width
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// truncate shortens s to width characters, adding "..." if truncated.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width < 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
