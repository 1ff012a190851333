// Package format provides output formatting for the list command.
package format

import (
	"io"

	"github.com/cristianoliveira/tmux-notes/internal/notes"
)

// Formatter writes a note list.
type Formatter interface {
	// FormatNotes formats notes in collection order and writes to writer.
	FormatNotes(list []notes.Note, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple displays id and text, one note per line.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable displays notes in a table with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeCompact displays only the text of each note.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeJSON displays the persisted snapshot.
	FormatterTypeJSON FormatterType = "json"
)

// Types lists the supported formatter names.
var Types = []FormatterType{
	FormatterTypeSimple,
	FormatterTypeTable,
	FormatterTypeCompact,
	FormatterTypeJSON,
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeCompact:
		return NewCompactFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewSimpleFormatter()
	}
}

// IsValid reports whether name is a supported formatter.
func IsValid(name string) bool {
	for _, ft := range Types {
		if string(ft) == name {
			return true
		}
	}
	return false
}
