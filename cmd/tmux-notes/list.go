/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/tmux-notes/cmd"
	"github.com/cristianoliveira/tmux-notes/internal/format"
	"github.com/cristianoliveira/tmux-notes/internal/notes"
	"github.com/spf13/cobra"
)

type listClient interface {
	Notes(ctx context.Context) ([]notes.Note, error)
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client listClient) *cobra.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var formatFlag string

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		Long: `tmux-notes list - List notes in the order they were added

USAGE:
    tmux-notes list [--format simple|table|compact|json]

The json format prints the same document that is saved to storage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !format.IsValid(formatFlag) {
				return fmt.Errorf("list: unknown format %q (want one of %s)", formatFlag, formatNames())
			}
			list, err := client.Notes(cmd.Context())
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			return format.NewFormatter(format.FormatterType(formatFlag)).FormatNotes(list, cmd.OutOrStdout())
		},
	}

	listCmd.Flags().StringVar(&formatFlag, "format", string(format.FormatterTypeSimple), "Output format: "+formatNames())

	return listCmd
}

func formatNames() string {
	names := make([]string, len(format.Types))
	for i, t := range format.Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// listCmd represents the list command.
var listCmd = NewListCmd(client)

func init() {
	cmd.RootCmd.AddCommand(listCmd)
}
