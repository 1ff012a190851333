// Package errors defines the error kinds surfaced by tmux-notes and the
// handlers that report them on the console or inside the TUI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	// KindValidation marks draft text that cannot become a note.
	KindValidation Kind = "validation"
	// KindNotFound marks an operation on a note id that is not in the collection.
	KindNotFound Kind = "not_found"
	// KindStorage marks a failed read or write through the storage gateway.
	KindStorage Kind = "storage"
	// KindInvalidTransition marks an editor intent that is not valid in the current mode.
	KindInvalidTransition Kind = "invalid_transition"
)

// Validation reasons.
const (
	ReasonEmpty   = "empty"
	ReasonTooLong = "too_long"
)

// Error is a classified tmux-notes error.
type Error struct {
	Kind    Kind
	Reason  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
		if e.Reason != "" {
			msg += ": " + e.Reason
		}
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another *Error with the same kind and, when the target names
// one, the same reason. This lets callers write errors.Is(err, ErrEmpty).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Sentinels for errors.Is.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrEmpty             = &Error{Kind: KindValidation, Reason: ReasonEmpty}
	ErrTooLong           = &Error{Kind: KindValidation, Reason: ReasonTooLong}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrStorage           = &Error{Kind: KindStorage}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
)

// Validation returns a validation error with the given reason.
func Validation(reason, message string) error {
	return &Error{Kind: KindValidation, Reason: reason, Message: message}
}

// NotFound returns a not-found error for the note id.
func NotFound(id int64) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("note %d not found", id)}
}

// Storage wraps a gateway failure for the given operation.
func Storage(op string, cause error) error {
	return &Error{Kind: KindStorage, Message: "storage " + op + " failed", Err: cause}
}

// InvalidTransition reports an intent that the editor cannot accept in mode.
func InvalidTransition(intent, mode string) error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot %s while %s", intent, mode),
	}
}

// KindOf returns the kind of err, or "" when err is not a classified error.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}
