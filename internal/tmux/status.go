package tmux

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cristianoliveira/tmux-notes/internal/colors"
)

// StatusPublisher copies the note count into a tmux user option so a status
// line can show it with "#{@notes_count}".
type StatusPublisher struct {
	client Client
	option string
}

// NewStatusPublisher returns a publisher writing to option.
func NewStatusPublisher(client Client, option string) (*StatusPublisher, error) {
	if client == nil {
		panic("NewStatusPublisher: client dependency cannot be nil")
	}
	if option == "" {
		option = DefaultCountOption
	}
	if err := ValidateUserOption(option); err != nil {
		return nil, err
	}
	return &StatusPublisher{client: client, option: option}, nil
}

// Option returns the user option name.
func (p *StatusPublisher) Option() string {
	return p.option
}

// Publish stores count and refreshes the status line.
func (p *StatusPublisher) Publish(ctx context.Context, count int) error {
	running, err := p.client.HasSession(ctx)
	if err != nil {
		return err
	}
	if !running {
		return ErrTmuxNotRunning
	}
	if err := p.client.SetUserOption(ctx, p.option, strconv.Itoa(count)); err != nil {
		return fmt.Errorf("publish count: %w", err)
	}
	if err := p.client.RefreshStatus(ctx); err != nil {
		// The option is set; the next status interval picks it up.
		colors.StructuredWarn("tmux", "refresh", "failed", err, p.option, nil)
	}
	colors.StructuredDebug("tmux", "publish", "completed", nil, p.option, map[string]interface{}{"count": count})
	return nil
}
