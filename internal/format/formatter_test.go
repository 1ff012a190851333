package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cristianoliveira/tmux-notes/internal/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []notes.Note{
	{ID: 1700000000000, Text: "buy milk"},
	{ID: 1700000000001, Text: "call mom"},
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &SimpleFormatter{}, NewFormatter(FormatterTypeSimple))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatterTypeTable))
	assert.IsType(t, &CompactFormatter{}, NewFormatter(FormatterTypeCompact))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatterTypeJSON))
	assert.IsType(t, &SimpleFormatter{}, NewFormatter("unknown"))

	assert.True(t, IsValid("table"))
	assert.False(t, IsValid("yaml"))
}

func TestSimpleFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSimpleFormatter().FormatNotes(sample, &buf))
	assert.Equal(t, "1700000000000  buy milk\n1700000000001  call mom\n", buf.String())
}

func TestCompactFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCompactFormatter().FormatNotes(sample, &buf))
	assert.Equal(t, "buy milk\ncall mom\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().FormatNotes(sample, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "NOTE")
	assert.Equal(t, "  1  1700000000000  buy milk", lines[2])
	assert.Equal(t, "  2  1700000000001  call mom", lines[3])

	buf.Reset()
	require.NoError(t, NewTableFormatter().FormatNotes(nil, &buf))
	assert.Empty(t, buf.String())
}

func TestTableFormatterTruncatesByCharacter(t *testing.T) {
	var buf bytes.Buffer
	long := []notes.Note{{ID: 1, Text: strings.Repeat("é", 60)}}
	require.NoError(t, NewTableFormatter().FormatNotes(long, &buf))
	assert.Contains(t, buf.String(), strings.Repeat("é", 45)+"...")
}

func TestJSONFormatterWritesSnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().FormatNotes(sample, &buf))
	assert.JSONEq(t, `{"count":2,"listNotes":[{"id":1700000000000,"text":"buy milk"},{"id":1700000000001,"text":"call mom"}]}`, buf.String())

	buf.Reset()
	require.NoError(t, NewJSONFormatter().FormatNotes(nil, &buf))
	assert.JSONEq(t, `{"count":0,"listNotes":[]}`, buf.String())
}
