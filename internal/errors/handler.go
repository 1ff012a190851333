package errors

import (
	"sync"
)

// ErrorHandler is the interface for reporting messages to the user.
// The CLI prints them; the TUI keeps the latest one on its status line.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console sink used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler handles errors by printing to stdout/stderr.
type CLIHandler struct {
	colors     ColorOutput
	mu         sync.Mutex
	inHandling bool
}

func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	if h.inHandling {
		h.mu.Unlock()
		h.colors.Error(msg)
		return
	}
	h.inHandling = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inHandling = false
		h.mu.Unlock()
	}()

	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.colors.Success(msg)
}

// Report routes err to h by kind: storage failures are warnings because the
// in-memory state is still intact, everything else is an error.
func Report(h ErrorHandler, err error) {
	if err == nil {
		return
	}
	switch KindOf(err) {
	case KindStorage:
		h.Warning(err.Error())
	default:
		h.Error(err.Error())
	}
}
