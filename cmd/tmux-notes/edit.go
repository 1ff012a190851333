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

type editClient interface {
	Edit(ctx context.Context, id int64, text string) (notes.Note, error)
}

// NewEditCmd creates the edit command with explicit dependencies.
func NewEditCmd(client editClient) *cobra.Command {
	if client == nil {
		panic("NewEditCmd: client dependency cannot be nil")
	}

	editCmd := &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace the text of a note",
		Long: `tmux-notes edit - Replace the text of a note

USAGE:
    tmux-notes edit <id> <text>

The note keeps its id and its position in the list.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID("edit", args[0])
			if err != nil {
				return err
			}
			note, err := client.Edit(cmd.Context(), id, strings.Join(args[1:], " "))
			if err != nil {
				return fmt.Errorf("edit: %w", err)
			}
			colors.Success(fmt.Sprintf("updated note %d", note.ID))
			return nil
		},
	}

	return editCmd
}

// editCmd represents the edit command.
var editCmd = NewEditCmd(client)

func init() {
	cmd.RootCmd.AddCommand(editCmd)
}
