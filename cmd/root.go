// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trending-analyzer",
	Short: "A CLI tool to analyze trending GitHub repositories.",
	Long: `trending-analyzer fetches a batch of trending-like GitHub repositories
(approximated by a star-sorted search over recently created repositories),
runs heuristic keyword analysis over each repository's README and metadata,
and writes a human-readable text report and a machine-readable JSON report.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
