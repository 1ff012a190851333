// Package colors provides colored console output for tmux-notes.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled    = false
	quietEnabled    = false
	inErrorHandling = false
	errorMutex      sync.RWMutex
	logger          Logger
	loggerMu        sync.RWMutex

	outMu  sync.RWMutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("TMUX_NOTES_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// SetQuiet suppresses info and success output. Errors and warnings still print.
func SetQuiet(enabled bool) {
	quietEnabled = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func writers() (io.Writer, io.Writer) {
	outMu.RLock()
	defer outMu.RUnlock()
	return stdout, stderr
}

func mirror() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// errorFallback logs an error message without using colors to avoid recursion.
func errorFallback(msg string) {
	_, errOut := writers()
	fmt.Fprintf(errOut, "%s\n", msg)
}

// emit writes a line and reports a failed write once, without recursing
// back into itself if reporting fails too.
func emit(w io.Writer, kind, line string) {
	if _, err := fmt.Fprint(w, line); err != nil {
		errorMutex.RLock()
		alreadyHandling := inErrorHandling
		errorMutex.RUnlock()
		if alreadyHandling {
			errorFallback("Error: failed to print " + kind + " message: " + err.Error())
			return
		}
		errorMutex.Lock()
		inErrorHandling = true
		errorMutex.Unlock()
		defer func() {
			errorMutex.Lock()
			inErrorHandling = false
			errorMutex.Unlock()
		}()
		Warning("failed to print " + kind + " message: " + err.Error())
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirror(); l != nil {
		l.Error(msg)
	}
	_, errOut := writers()
	emit(errOut, "error", fmt.Sprintf("%sError:%s %s%s\n", Red, Reset, msg, Reset))
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirror(); l != nil {
		l.Warn(msg)
	}
	_, errOut := writers()
	emit(errOut, "warning", fmt.Sprintf("%sWarning:%s %s%s\n", Yellow, Reset, msg, Reset))
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirror(); l != nil {
		l.Info(msg, "type", "success")
	}
	if quietEnabled {
		return
	}
	out, _ := writers()
	emit(out, "success", fmt.Sprintf("%s%s%s %s%s\n", Green, checkmark, Reset, msg, Reset))
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirror(); l != nil {
		l.Info(msg)
	}
	if quietEnabled {
		return
	}
	out, _ := writers()
	emit(out, "info", fmt.Sprintf("%s%s%s\n", Blue, msg, Reset))
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	if !debugEnabled {
		return
	}
	msg := strings.Join(msgs, " ")
	if l := mirror(); l != nil {
		l.Debug(msg)
	}
	_, errOut := writers()
	emit(errOut, "debug", fmt.Sprintf("%sDebug:%s %s%s\n", Cyan, Reset, msg, Reset))
}
