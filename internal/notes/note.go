// Package notes holds the note collection, its derived count and the
// snapshot that is written to the storage gateway after every mutation.
package notes

import (
	"strings"
	"unicode/utf8"

	"github.com/cristianoliveira/tmux-notes/internal/errors"
)

// MaxTextLength is the largest number of characters a note may hold.
const MaxTextLength = 100

// Note is a single entry of the collection.
type Note struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// TextLength counts characters the way the editor counter does.
func TextLength(text string) int {
	return utf8.RuneCountInString(text)
}

// NormalizeText trims text and checks it can be stored as a note.
func NormalizeText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errors.Validation(errors.ReasonEmpty, "note text cannot be empty")
	}
	if TextLength(trimmed) > MaxTextLength {
		return "", errors.Validation(errors.ReasonTooLong, "note text exceeds 100 characters")
	}
	return trimmed, nil
}

// Truncate caps text at MaxTextLength characters.
func Truncate(text string) string {
	if TextLength(text) <= MaxTextLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxTextLength])
}
