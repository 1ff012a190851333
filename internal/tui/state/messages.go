// Package state provides BubbleTea messages for inter-component communication.
package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// errorMsg clears the status line when no newer message replaced the one
// shown at the given time.
type errorMsg struct {
	at time.Time
}

// DraftErrorDismissedMsg is sent after the editor hid the empty-draft error
// on its own timer, so the screen redraws.
type DraftErrorDismissedMsg struct{}

// StorageErrorMsg is sent when a background snapshot write failed.
type StorageErrorMsg struct {
	Err error
}

// errorMsgAfter returns a command that clears the status line after d.
func errorMsgAfter(d time.Duration, at time.Time) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return errorMsg{at: at}
	})
}
