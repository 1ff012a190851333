/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/tmux-notes/cmd"
	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/spf13/cobra"
)

type deleteClient interface {
	Delete(ctx context.Context, id int64) error
}

// NewDeleteCmd creates the delete command with explicit dependencies.
func NewDeleteCmd(client deleteClient) *cobra.Command {
	if client == nil {
		panic("NewDeleteCmd: client dependency cannot be nil")
	}

	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Long: `tmux-notes delete - Delete a note

USAGE:
    tmux-notes delete <id>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID("delete", args[0])
			if err != nil {
				return err
			}
			if err := client.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete: %w", err)
			}
			colors.Success(fmt.Sprintf("deleted note %d", id))
			return nil
		},
	}

	return deleteCmd
}

// deleteCmd represents the delete command.
var deleteCmd = NewDeleteCmd(client)

func init() {
	cmd.RootCmd.AddCommand(deleteCmd)
}
