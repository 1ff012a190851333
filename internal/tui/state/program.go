package state

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tmux-notes/internal/app"
	"github.com/cristianoliveira/tmux-notes/internal/colors"
)

// Run shows the notes screen until the user quits. Background events from
// the runtime (draft error dismissal, failed writes) are forwarded to the
// program as messages.
func Run(ctx context.Context, rt *app.Runtime, opts ...tea.ProgramOption) error {
	if rt == nil {
		return fmt.Errorf("tui: runtime cannot be nil")
	}

	// Structured JSON lines on stderr would corrupt the screen.
	colors.DisableStructuredLogging()
	defer colors.EnableStructuredLogging()

	model := NewModel(rt.Widget)
	if rt.LoadErr != nil {
		model.initCmd = model.report(rt.LoadErr)
	}

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(model, opts...)

	rt.Session.SetOnDismiss(func() { p.Send(DraftErrorDismissedMsg{}) })
	rt.Persister.SetOnError(func(err error) { p.Send(StorageErrorMsg{Err: err}) })
	defer func() {
		rt.Session.SetOnDismiss(nil)
		rt.Persister.SetOnError(nil)
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
