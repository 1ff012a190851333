// Package editor implements the modal editing session: which note is being
// composed, the draft text with its character counter, and the validation
// error that dismisses itself after a delay.
package editor

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/errors"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
)

// ErrorDismissDelay is how long the empty-draft error stays visible.
const ErrorDismissDelay = 3000 * time.Millisecond

// Mode is the editor state.
type Mode int

const (
	// ModeIdle means no modal is open.
	ModeIdle Mode = iota
	// ModeComposingNew means the modal is open for a new note.
	ModeComposingNew
	// ModeComposingEdit means the modal is open for an existing note.
	ModeComposingEdit
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeComposingNew:
		return "composing new"
	case ModeComposingEdit:
		return "composing edit"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Composing reports whether the modal is open.
func (m Mode) Composing() bool {
	return m == ModeComposingNew || m == ModeComposingEdit
}

// NoteWriter applies confirmed drafts. *notes.Store implements it.
type NoteWriter interface {
	Add(text string) (notes.Note, error)
	Update(id int64, text string) (notes.Note, error)
}

// State is a copy of the session state.
type State struct {
	Mode         Mode
	EditID       int64
	Draft        string
	CharCount    int
	ErrorVisible bool
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler replaces the timer used for error dismissal.
func WithScheduler(s Scheduler) Option {
	return func(sess *Session) {
		sess.scheduler = s
	}
}

// WithDismissDelay replaces ErrorDismissDelay.
func WithDismissDelay(d time.Duration) Option {
	return func(sess *Session) {
		sess.dismissDelay = d
	}
}

// WithOnDismiss registers fn to run after the error was hidden by its timer.
func WithOnDismiss(fn func()) Option {
	return func(sess *Session) {
		sess.onDismiss = fn
	}
}

// Session is the editor state machine. Methods are safe for concurrent use;
// the dismissal timer runs on its own goroutine.
type Session struct {
	mu           sync.Mutex
	mode         Mode
	editID       int64
	draft        string
	errorVisible bool

	store        NoteWriter
	scheduler    Scheduler
	dismissDelay time.Duration
	onDismiss    func()

	// errorSeq identifies the current dismissal; a timer carrying an older
	// value does nothing when it fires.
	errorSeq      uint64
	cancelDismiss func()
}

// NewSession creates an idle Session that writes through store.
func NewSession(store NoteWriter, opts ...Option) *Session {
	if store == nil {
		panic("NewSession: store dependency cannot be nil")
	}
	s := &Session{
		store:        store,
		scheduler:    TimerScheduler{},
		dismissDelay: ErrorDismissDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetOnDismiss replaces the function run after the error was hidden by its
// timer.
func (s *Session) SetOnDismiss(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDismiss = fn
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Mode:         s.mode,
		EditID:       s.editID,
		Draft:        s.draft,
		CharCount:    notes.TextLength(s.draft),
		ErrorVisible: s.errorVisible,
	}
}

// Mode returns the current mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// CharCount returns the number of characters in the draft.
func (s *Session) CharCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return notes.TextLength(s.draft)
}

// ErrorVisible reports whether the empty-draft error is shown.
func (s *Session) ErrorVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorVisible
}

// OpenNew opens the modal for a new note.
func (s *Session) OpenNew() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeIdle {
		return errors.InvalidTransition("open a new note", s.mode.String())
	}
	s.resetLocked(ModeComposingNew, 0, "")
	return nil
}

// OpenEdit opens the modal for note id with its current text as the draft.
func (s *Session) OpenEdit(id int64, currentText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeIdle {
		return errors.InvalidTransition("edit a note", s.mode.String())
	}
	s.resetLocked(ModeComposingEdit, id, notes.Truncate(currentText))
	return nil
}

// SetDraftText replaces the draft, truncated to notes.MaxTextLength
// characters, and returns the stored text.
func (s *Session) SetDraftText(text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mode.Composing() {
		return "", errors.InvalidTransition("update the draft", s.mode.String())
	}
	s.draft = notes.Truncate(text)
	return s.draft, nil
}

// Cancel closes the modal and discards the draft.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mode.Composing() {
		return errors.InvalidTransition("cancel", s.mode.String())
	}
	s.resetLocked(ModeIdle, 0, "")
	return nil
}

// Confirm applies the draft. An empty draft keeps the modal open, shows the
// error and restarts its dismissal timer. A store failure keeps the modal
// open with the draft intact.
func (s *Session) Confirm() (notes.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mode.Composing() {
		return notes.Note{}, errors.InvalidTransition("confirm", s.mode.String())
	}
	s.cancelDismissLocked()

	if strings.TrimSpace(s.draft) == "" {
		s.showErrorLocked()
		return notes.Note{}, errors.Validation(errors.ReasonEmpty, "Enter some text!")
	}
	s.errorVisible = false

	var (
		note notes.Note
		err  error
	)
	if s.mode == ModeComposingEdit {
		note, err = s.store.Update(s.editID, s.draft)
	} else {
		note, err = s.store.Add(s.draft)
	}
	if err != nil {
		colors.StructuredWarn("editor", "confirm", "failed", err, fmt.Sprint(s.editID), map[string]interface{}{"mode": s.mode.String()})
		return notes.Note{}, err
	}
	s.resetLocked(ModeIdle, 0, "")
	return note, nil
}

func (s *Session) resetLocked(mode Mode, id int64, draft string) {
	s.cancelDismissLocked()
	s.mode = mode
	s.editID = id
	s.draft = draft
	s.errorVisible = false
}

func (s *Session) showErrorLocked() {
	s.errorVisible = true
	seq := s.errorSeq
	s.cancelDismiss = s.scheduler.Schedule(s.dismissDelay, func() {
		s.dismiss(seq)
	})
}

func (s *Session) cancelDismissLocked() {
	if s.cancelDismiss != nil {
		s.cancelDismiss()
		s.cancelDismiss = nil
	}
	s.errorSeq++
}

func (s *Session) dismiss(seq uint64) {
	s.mu.Lock()
	if seq != s.errorSeq || !s.errorVisible {
		s.mu.Unlock()
		return
	}
	s.errorVisible = false
	s.cancelDismiss = nil
	onDismiss := s.onDismiss
	s.mu.Unlock()

	if onDismiss != nil {
		onDismiss()
	}
}
