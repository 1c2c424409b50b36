// Package main is the entry point for the apiforge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/apiforge/apiforge/cmd/apiforge/commands"
)

var (
	// Version information (set by build)
	version = "dev"
	commit  = "unknown"
)

func main() {
	rootCmd := commands.NewRootCommand(version, commit)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
