package tmux

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrTmuxNotRunning is returned when tmux server is not available.
	ErrTmuxNotRunning = errors.New("tmux server is not running")

	// ErrInvalidOption is returned for an option name tmux would not treat
	// as a user option.
	ErrInvalidOption = errors.New("invalid tmux user option")
)

// ValidateUserOption checks that name is a user option such as "@notes_count".
func ValidateUserOption(name string) error {
	if len(name) < 2 || !strings.HasPrefix(name, "@") || strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidOption, name)
	}
	return nil
}

func asExitError(err error, target **exec.ExitError) bool {
	return errors.As(err, target)
}
