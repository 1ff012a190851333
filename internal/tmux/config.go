package tmux

import "time"

const (
	// DefaultTimeout is the default timeout for tmux commands.
	DefaultTimeout = 2 * time.Second

	// DefaultCountOption is the user option that holds the note count.
	DefaultCountOption = "@notes_count"
)

// ClientOption is a functional option for configuring a DefaultClient.
type ClientOption func(*DefaultClient)

// WithSocketPath sets the tmux socket name for the client.
func WithSocketPath(socketPath string) ClientOption {
	return func(c *DefaultClient) {
		c.socketPath = socketPath
	}
}

// WithTimeout sets the timeout for tmux command execution.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *DefaultClient) {
		c.timeout = timeout
	}
}
