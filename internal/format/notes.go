package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
)

// SimpleFormatter prints "<id>  <text>" per note.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatNotes formats notes in simple format.
func (f *SimpleFormatter) FormatNotes(list []notes.Note, writer io.Writer) error {
	for _, n := range list {
		if _, err := fmt.Fprintf(writer, "%d  %s\n", n.ID, n.Text); err != nil {
			return err
		}
	}
	return nil
}

// TableFormatter prints a header, a separator and one row per note.
type TableFormatter struct {
	idWidth   int
	textWidth int
}

// NewTableFormatter creates a new TableFormatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{idWidth: 13, textWidth: 48}
}

// FormatNotes formats notes in table format.
func (f *TableFormatter) FormatNotes(list []notes.Note, writer io.Writer) error {
	if len(list) == 0 {
		return nil
	}
	headerColor := colors.Blue
	reset := colors.Reset
	if _, err := fmt.Fprintf(writer, "%s%s  %s  %s%s\n", headerColor,
		padRight("#", 3), padRight("ID", f.idWidth), "NOTE", reset); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "%s%s  %s  %s%s\n", headerColor,
		strings.Repeat("-", 3), strings.Repeat("-", f.idWidth), strings.Repeat("-", f.textWidth), reset); err != nil {
		return err
	}
	for i, n := range list {
		if _, err := fmt.Fprintf(writer, "%s  %s  %s\n",
			padLeft(fmt.Sprint(i+1), 3), padRight(fmt.Sprint(n.ID), f.idWidth), truncate(n.Text, f.textWidth)); err != nil {
			return err
		}
	}
	return nil
}

// CompactFormatter prints only the note text.
type CompactFormatter struct{}

// NewCompactFormatter creates a new CompactFormatter.
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

// FormatNotes formats notes in compact format.
func (f *CompactFormatter) FormatNotes(list []notes.Note, writer io.Writer) error {
	for _, n := range list {
		if _, err := fmt.Fprintln(writer, n.Text); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter prints the same payload that is persisted.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatNotes formats notes as a snapshot document.
func (f *JSONFormatter) FormatNotes(list []notes.Note, writer io.Writer) error {
	raw, err := notes.Snapshot{Count: len(list), ListNotes: list}.Encode()
	if err != nil {
		return fmt.Errorf("failed to marshal notes to JSON: %w", err)
	}
	_, err = fmt.Fprintln(writer, raw)
	return err
}

// padRight pads s with spaces up to width characters.
func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// padLeft right-aligns s in width characters.
func padLeft(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// truncate shortens s to width characters, adding "..." if truncated.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
