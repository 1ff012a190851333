/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"

	"github.com/cristianoliveira/tmux-notes/cmd"
	"github.com/spf13/cobra"
)

type tuiClient interface {
	RunTUI(ctx context.Context) error
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiClient) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the notes screen",
		Long: `Interactive notes screen.

USAGE:
    tmux-notes tui

Run it in a popup:
    bind-key N display-popup -E 'tmux-notes'

KEY BINDINGS:
    a           Add a note
    e / Enter   Edit selected note
    d           Delete selected note
    j/k         Move down/up
    Enter       Save (in the editor)
    ESC         Cancel the editor, or quit
    q           Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.RunTUI(cmd.Context())
		},
	}

	return tuiCmd
}

// tuiCmd represents the tui command.
var tuiCmd = NewTUICmd(client)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
	// Without a subcommand the screen opens.
	cmd.RootCmd.RunE = tuiCmd.RunE
	cmd.RootCmd.Args = cobra.NoArgs
}
