// Package main is the entry point for the saeval CLI.
package main

import (
	"os"

	"github.com/yaklabco/saeval/internal/cli"
	"github.com/yaklabco/saeval/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		code := cli.ExitCodeForError(err)
		// Per-project failures were already listed on stderr by the run
		// command; only unexpected errors get logged here.
		if code != cli.ExitProjectFailures {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return code
	}

	return cli.ExitSuccess
}
