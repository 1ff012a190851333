package colors

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredDebugIsGatedByDebugMode(t *testing.T) {
	_, errOut := captureOutput(t)
	EnableStructuredLogging()
	defer EnableStructuredLogging()
	SetDebug(false)
	defer SetDebug(false)

	StructuredDebug("colors", "debug_disabled", "skipped", nil, "", nil)
	assert.Empty(t, errOut.String())

	SetDebug(true)
	StructuredDebug("colors", "debug_enabled", "written", nil, "", nil)
	assert.Contains(t, errOut.String(), `"level":"debug"`)
}

func TestStructuredLoggingCanBeDisabled(t *testing.T) {
	_, errOut := captureOutput(t)
	SetDebug(true)
	defer SetDebug(false)
	DisableStructuredLogging()
	defer EnableStructuredLogging()

	StructuredInfo("colors", "disabled", "skipped", nil, "", nil)
	assert.Empty(t, errOut.String())
}

func TestStructuredEntryShape(t *testing.T) {
	_, errOut := captureOutput(t)
	SetDebug(true)
	defer SetDebug(false)

	StructuredError("store", "persist", "failed", errors.New("boom"), "17", map[string]interface{}{"count": 2})

	var entry StructuredLogEntry
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(errOut.String())), &entry))
	assert.Equal(t, LevelError, entry.Level)
	assert.Equal(t, "store", entry.Component)
	assert.Equal(t, "persist", entry.Action)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, "17", entry.ID)
	assert.EqualValues(t, 2, entry.Fields["count"])
}
