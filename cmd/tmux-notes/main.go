/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"
	"os"

	"github.com/cristianoliveira/tmux-notes/cmd"
	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], cmd.Execute))
}

// run executes the CLI and returns the process exit code.
func run(args []string, execute func() error) int {
	colors.StructuredInfo("startup", "main", "started", nil, "", map[string]interface{}{"args": len(args)})
	cmd.RootCmd.SetArgs(args)

	err := execute()
	if closeErr := client.Close(); closeErr != nil {
		colors.Error(fmt.Sprintf("failed to close storage: %v", closeErr))
	}
	if err != nil {
		colors.Error(err.Error())
		colors.StructuredError("startup", "main", "failed", err, "", nil)
		_ = logging.ShutdownGlobal()
		return 1
	}
	colors.StructuredInfo("startup", "main", "completed", nil, "", nil)
	_ = logging.ShutdownGlobal()
	return 0
}
