// Package tmux runs tmux commands for tmux-notes.
package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/cristianoliveira/tmux-notes/internal/colors"
)

// Client abstracts the tmux commands tmux-notes uses.
type Client interface {
	// HasSession reports whether a tmux server is reachable.
	HasSession(ctx context.Context) (bool, error)

	// SetUserOption sets a global user option (a name starting with "@").
	SetUserOption(ctx context.Context, name, value string) error

	// RefreshStatus redraws the status line of every client.
	RefreshStatus(ctx context.Context) error

	// Run executes a tmux command with the given arguments.
	Run(ctx context.Context, args ...string) (string, string, error)
}

// DefaultClient implements Client using exec.Command to run tmux.
type DefaultClient struct {
	socketPath string
	timeout    time.Duration
}

// NewDefaultClient creates a new DefaultClient with the given options.
func NewDefaultClient(opts ...ClientOption) *DefaultClient {
	client := &DefaultClient{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// InsideTmux reports whether the process was started from a tmux pane.
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

func (c *DefaultClient) runCommand(ctx context.Context, args ...string) (string, string, error) {
	start := time.Now()
	command := ""
	if len(args) > 0 {
		command = args[0]
	}
	colors.StructuredDebug("tmux", "run", "started", nil, command, map[string]interface{}{"args_count": len(args)})
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmdArgs := []string{}
	if c.socketPath != "" {
		cmdArgs = append(cmdArgs, "-L", c.socketPath)
	}
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.CommandContext(ctx, "tmux", cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	duration := time.Since(start).Seconds()
	if err != nil {
		colors.StructuredError("tmux", "run", "failed", err, command, map[string]interface{}{"args_count": len(args), "duration_seconds": duration})
	} else {
		colors.StructuredDebug("tmux", "run", "completed", nil, command, map[string]interface{}{"args_count": len(args), "duration_seconds": duration})
	}
	return stdout.String(), stderr.String(), err
}

// Run executes a tmux command with the given arguments.
// It returns stdout, stderr, and any error that occurred.
func (c *DefaultClient) Run(ctx context.Context, args ...string) (string, string, error) {
	stdout, stderr, err := c.runCommand(ctx, args...)
	if err != nil {
		return stdout, stderr, fmt.Errorf("tmux command %v failed: %w", args, err)
	}
	return stdout, stderr, nil
}

// HasSession checks if tmux server is running.
func (c *DefaultClient) HasSession(ctx context.Context) (bool, error) {
	if _, _, err := c.runCommand(ctx, "has-session"); err != nil {
		var exitErr *exec.ExitError
		if asExitError(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("has-session: %w", err)
	}
	return true, nil
}

// SetUserOption sets a global user option.
func (c *DefaultClient) SetUserOption(ctx context.Context, name, value string) error {
	if err := ValidateUserOption(name); err != nil {
		return err
	}
	_, stderr, err := c.Run(ctx, "set-option", "-gq", name, value)
	if err != nil {
		if stderr != "" {
			colors.Debug("stderr: " + stderr)
		}
		return fmt.Errorf("failed to set option %s: %w", name, err)
	}
	return nil
}

// RefreshStatus redraws the status line.
func (c *DefaultClient) RefreshStatus(ctx context.Context) error {
	if _, _, err := c.Run(ctx, "refresh-client", "-S"); err != nil {
		return fmt.Errorf("refresh status: %w", err)
	}
	return nil
}
