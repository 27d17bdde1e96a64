// Package cli provides the Cobra command structure for saeval.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/saeval/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root saeval command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "saeval",
		Short: "Evaluate summary-assisted static analysis against a ground truth",
		Long: `saeval measures how replacing a function body with a generated summary
affects static-analysis accuracy.

It extracts raw analyzer reports into canonical per-project intermediate
artifacts, matches a candidate run (baseline or method) against the
ground-truth run by checker and line, and aggregates true/false positive
and negative counts into per-project and overall precision/recall tables.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to experiment config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newEnvCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
