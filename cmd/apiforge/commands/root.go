// Package commands implements the apiforge CLI commands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apiforge/apiforge/internal/debug"
)

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand(version, commit string) *cobra.Command {
	var debugEnabled bool

	cmd := &cobra.Command{
		Use:     "apiforge",
		Short:   "Generate API docs and backend code from a data model",
		Long:    "apiforge turns a declarative data-model document into OpenAPI and AsyncAPI specifications and a ready-to-run TypeScript backend.",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.Init(debugEnabled)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&debugEnabled, "debug", false, "Enable debug logging")

	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewVersionCommand(version, commit))

	return cmd
}

// getModelPath resolves the model file path from the flag and positional
// arguments, with the positional argument winning.
func getModelPath(flagValue string, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return flagValue
}
