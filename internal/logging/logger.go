// Package logging writes one JSON log file per tmux-notes run.
//
// Logging is off unless logging_enabled is set. Until InitGlobal runs, and
// whenever it is off, the package functions discard everything.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/google/uuid"
)

// Logger records key/value entries for one run.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a child logger that adds args to every entry.
	With(args ...any) Logger
	// Path is the log file, or "" when nothing is written.
	Path() string
	// Shutdown closes the file. Later entries are dropped.
	Shutdown() error
}

// Discard is the logger used while file logging is off.
var Discard Logger = discard{}

// runFile is the file shared by a run's root logger and all its children.
type runFile struct {
	f      *os.File
	path   string
	closed atomic.Bool
}

type fileLogger struct {
	run    *runFile
	clog   *clog.Logger
	redact *redactor
}

// Init opens a new log file for cfg. Old files beyond cfg.MaxFiles are
// removed first. Every entry carries pid, command and run_id.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return Discard, nil
	}
	dir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("log directory: %w", err)
	}
	if err := rotate(dir, cfg.MaxFiles); err != nil {
		colors.Warning(fmt.Sprintf("log rotation failed: %v", err))
	}

	path := filepath.Join(dir, fileName(cfg, time.Now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	base := clog.NewWithOptions(f, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(cfg.Level),
		Formatter:       clog.JSONFormatter,
	})
	return &fileLogger{
		run:    &runFile{f: f, path: path},
		clog:   base.With("pid", cfg.PID, "command", cfg.Command, "run_id", runID),
		redact: newRedactor(),
	}, nil
}

// fileName is tmux-notes_<time>_<pid>_<command>.log.
func fileName(cfg Config, now time.Time) string {
	command := strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, cfg.Command)
	return fmt.Sprintf("%s%s_%d_%s.log", logFilePrefix, now.Format("20060102T150405"), cfg.PID, command)
}

func parseLevel(level string) clog.Level {
	lvl, err := clog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return clog.InfoLevel
	}
	return lvl
}

func (l *fileLogger) Debug(msg string, args ...any) { l.log(clog.DebugLevel, msg, args) }
func (l *fileLogger) Info(msg string, args ...any)  { l.log(clog.InfoLevel, msg, args) }
func (l *fileLogger) Warn(msg string, args ...any)  { l.log(clog.WarnLevel, msg, args) }
func (l *fileLogger) Error(msg string, args ...any) { l.log(clog.ErrorLevel, msg, args) }

func (l *fileLogger) log(level clog.Level, msg string, args []any) {
	if l.run.closed.Load() {
		return
	}
	l.clog.Log(level, msg, l.redact.redact(normalize(args))...)
}

func (l *fileLogger) With(args ...any) Logger {
	return &fileLogger{
		run:    l.run,
		clog:   l.clog.With(l.redact.redact(normalize(args))...),
		redact: l.redact,
	}
}

func (l *fileLogger) Path() string {
	return l.run.path
}

func (l *fileLogger) Shutdown() error {
	if l.run.closed.Swap(true) {
		return nil
	}
	return l.run.f.Close()
}

// normalize turns error values into their message; the JSON formatter
// would otherwise write them as {}.
func normalize(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if err, ok := a.(error); ok && i%2 == 1 {
			out[i] = err.Error()
			continue
		}
		out[i] = a
	}
	return out
}

type discard struct{}

func (discard) Debug(string, ...any) {}
func (discard) Info(string, ...any)  {}
func (discard) Warn(string, ...any)  {}
func (discard) Error(string, ...any) {}
func (d discard) With(...any) Logger { return d }
func (discard) Path() string         { return "" }
func (discard) Shutdown() error      { return nil }

var (
	globalMu sync.RWMutex
	global   = Discard
	initOnce sync.Once
)

// InitGlobal opens the run's log file from the global config and mirrors
// console messages into it. Only the first call has an effect.
func InitGlobal() error {
	var err error
	initOnce.Do(func() {
		var l Logger
		l, err = Init(FromGlobalConfig())
		if err != nil {
			return
		}
		ReplaceGlobal(l)
		colors.SetLogger(l)
		if path := l.Path(); path != "" {
			colors.Debug("Logging to file:", path)
		}
	})
	return err
}

// ReplaceGlobal swaps the package logger and returns a function restoring
// the previous one. A nil logger means Discard.
func ReplaceGlobal(l Logger) func() {
	if l == nil {
		l = Discard
	}
	globalMu.Lock()
	prev := global
	global = l
	globalMu.Unlock()
	return func() { ReplaceGlobal(prev) }
}

// GetGlobal returns the package logger.
func GetGlobal() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

func Debug(msg string, args ...any) { GetGlobal().Debug(msg, args...) }
func Info(msg string, args ...any)  { GetGlobal().Info(msg, args...) }
func Warn(msg string, args ...any)  { GetGlobal().Warn(msg, args...) }
func Error(msg string, args ...any) { GetGlobal().Error(msg, args...) }

// With returns a child of the package logger.
func With(args ...any) Logger {
	return GetGlobal().With(args...)
}

// ShutdownGlobal closes the package logger's file.
func ShutdownGlobal() error {
	return GetGlobal().Shutdown()
}

// CurrentLogFile returns the file the package logger writes to, if any.
func CurrentLogFile() string {
	return GetGlobal().Path()
}
