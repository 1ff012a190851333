/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/tmux-notes/cmd"
	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
	"github.com/spf13/cobra"
)

type addClient interface {
	Add(ctx context.Context, text string) (notes.Note, error)
}

// NewAddCmd creates the add command with explicit dependencies.
func NewAddCmd(client addClient) *cobra.Command {
	if client == nil {
		panic("NewAddCmd: client dependency cannot be nil")
	}

	addCmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a note",
		Long: `tmux-notes add - Add a note

USAGE:
    tmux-notes add <text>

Arguments are joined with spaces. Surrounding whitespace is trimmed and the
note may hold at most 100 characters.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "add requires the note text\n")
				return fmt.Errorf("add: missing note text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := client.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			colors.Success(fmt.Sprintf("added note %d", note.ID))
			return nil
		},
	}

	return addCmd
}

// addCmd represents the add command.
var addCmd = NewAddCmd(client)

func init() {
	cmd.RootCmd.AddCommand(addCmd)
}
