package render

import (
	"regexp"
	"strings"
	"testing"

	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/errors"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
	"github.com/stretchr/testify/assert"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestHeader(t *testing.T) {
	out := plain(Header(HeaderState{UserName: "Ada", Count: 3, Width: 40}))
	assert.True(t, strings.HasPrefix(out, "Ada's notes"))
	assert.True(t, strings.HasSuffix(out, "3 notes"))

	out = plain(Header(HeaderState{Count: 1}))
	assert.True(t, strings.HasPrefix(out, "Notes"))
	assert.True(t, strings.HasSuffix(out, "1 note"))
}

func TestRow(t *testing.T) {
	out := plain(Row(RowState{Note: notes.Note{ID: 1, Text: "buy milk"}, Index: 0, Width: 40}))
	assert.Equal(t, " 1. buy milk", out)

	long := strings.Repeat("x", 100)
	out = plain(Row(RowState{Note: notes.Note{ID: 1, Text: long}, Index: 9, Width: 30}))
	assert.Equal(t, "10. "+strings.Repeat("x", 21)+"...", out)
}

func TestModalLabelsFollowMode(t *testing.T) {
	add := plain(Modal(ModalState{Input: "draft", CharCount: 5}))
	assert.Contains(t, add, "New note")
	assert.Contains(t, add, "enter: Add")
	assert.Contains(t, add, "5/100")
	assert.NotContains(t, add, "Enter some text!")

	edit := plain(Modal(ModalState{Editing: true, ErrorVisible: true}))
	assert.Contains(t, edit, "Edit note")
	assert.Contains(t, edit, "enter: Save")
	assert.Contains(t, edit, "0/100")
	assert.Contains(t, edit, "Enter some text!")
}

func TestFooter(t *testing.T) {
	assert.Equal(t, "a: add  |  q: quit", plain(Footer(FooterState{})))
	assert.Contains(t, plain(Footer(FooterState{HasNotes: true})), "d: delete")
	assert.Equal(t, "enter: save  |  esc: cancel", plain(Footer(FooterState{Composing: true})))
}

func TestStatusLine(t *testing.T) {
	assert.Empty(t, StatusLine(StatusState{}))
	out := plain(StatusLine(StatusState{Text: "storage set failed", Type: errors.MessageTypeWarning}))
	assert.Equal(t, "warning: storage set failed", out)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "ö", truncate("öö", 1))
}

func TestAnsiColorNumber(t *testing.T) {
	assert.Equal(t, "34", ansiColorNumber(colors.Blue))
	assert.Equal(t, "31", ansiColorNumber(colors.Red))
	assert.Equal(t, "", ansiColorNumber("x"))
}
