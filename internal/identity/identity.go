// Package identity resolves the host user shown in the widget header.
package identity

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/user"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/logging"
)

// ErrUnknownUser is returned when neither the environment nor the OS name a user.
var ErrUnknownUser = stderrors.New("identity: user unknown")

// User is the host user. Only used for display.
type User struct {
	ID    string
	Name  string
	Login string
}

// DisplayName returns the name to greet the user with, or "" when the user
// is anonymous.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// Anonymous reports whether nothing is known about the user.
func (u User) Anonymous() bool {
	return u.DisplayName() == ""
}

// Gateway looks up the current user.
type Gateway interface {
	Current(ctx context.Context) (User, error)
}

type envUser struct {
	ID    string `env:"TMUX_NOTES_USER_ID"`
	Name  string `env:"TMUX_NOTES_USER_NAME"`
	Login string `env:"TMUX_NOTES_USER_LOGIN"`
}

// HostGateway reads TMUX_NOTES_USER_* and falls back to the OS account.
type HostGateway struct {
	lookup func() (*user.User, error)
}

// NewHostGateway creates a HostGateway.
func NewHostGateway() *HostGateway {
	return &HostGateway{lookup: user.Current}
}

// Current implements Gateway.
func (g *HostGateway) Current(ctx context.Context) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	var fromEnv envUser
	if err := env.Parse(&fromEnv); err != nil {
		return User{}, fmt.Errorf("identity: parse env: %w", err)
	}
	u := User{
		ID:    strings.TrimSpace(fromEnv.ID),
		Name:  strings.TrimSpace(fromEnv.Name),
		Login: strings.TrimSpace(fromEnv.Login),
	}
	if !u.Anonymous() {
		return u, nil
	}

	osUser, err := g.lookup()
	if err != nil {
		return User{}, fmt.Errorf("identity: lookup os user: %w", err)
	}
	u = User{
		ID:    osUser.Uid,
		Name:  strings.TrimSpace(firstField(osUser.Name)),
		Login: osUser.Username,
	}
	if u.Anonymous() {
		return User{}, ErrUnknownUser
	}
	return u, nil
}

// Resolve asks gw once and returns the anonymous user on failure.
func Resolve(ctx context.Context, gw Gateway) User {
	u, err := gw.Current(ctx)
	if err != nil {
		logging.Warn("identity lookup failed", "error", err)
		colors.StructuredWarn("identity", "current", "failed", err, "", nil)
		return User{}
	}
	return u
}

// firstField drops the GECOS extras after the first comma.
func firstField(gecos string) string {
	if i := strings.IndexByte(gecos, ','); i >= 0 {
		return gecos[:i]
	}
	return gecos
}
