/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/config"
	"github.com/cristianoliveira/tmux-notes/internal/logging"
	"github.com/cristianoliveira/tmux-notes/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "tmux-notes",
	Short: "Short notes in a tmux popup.",
	Long:  `Short notes in a tmux popup.`,
	// Subcommands print their own errors.
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			fmt.Fprintln(cmd.OutOrStdout(), cmd.Long)
			return
		}
		printHelpText(cmd)
	})
}

// setup loads configuration and starts the file logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cmd.Name(), "args", len(args))
	return nil
}

func printHelpText(cmd *cobra.Command) {
	commandOrder := []string{
		"add",
		"list",
		"edit",
		"delete",
		"count",
		"tui",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-20s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`tmux-notes v%s

Short notes in a tmux popup.

USAGE:
    tmux-notes [COMMAND] [OPTIONS]

Without a command the interactive screen opens.

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
    -v, --version   Show version
`, version.String(), strings.Join(cmdLines, "\n"))
	fmt.Fprint(cmd.OutOrStdout(), helpText)
}
