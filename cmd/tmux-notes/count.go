/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/tmux-notes/cmd"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
	"github.com/spf13/cobra"
)

type countClient interface {
	Notes(ctx context.Context) ([]notes.Note, error)
}

// NewCountCmd creates the count command with explicit dependencies.
func NewCountCmd(client countClient) *cobra.Command {
	if client == nil {
		panic("NewCountCmd: client dependency cannot be nil")
	}

	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Print the number of notes",
		Long: `tmux-notes count - Print the number of notes

Useful in a tmux status line:
    set -g status-right '#(tmux-notes count)'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := client.Notes(cmd.Context())
			if err != nil {
				return fmt.Errorf("count: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), len(list))
			return err
		},
	}

	return countCmd
}

// countCmd represents the count command.
var countCmd = NewCountCmd(client)

func init() {
	cmd.RootCmd.AddCommand(countCmd)
}
