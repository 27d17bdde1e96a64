package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/saeval/internal/configloader"
	"github.com/yaklabco/saeval/internal/logging"
	"github.com/yaklabco/saeval/pkg/config"
)

// loadConfig resolves the experiment configuration for a command, honoring
// the persistent --config flag, upward discovery, and SAEVAL_* environment
// variables. Validation warnings are logged; validation errors fail the load.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")

	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determine working directory: %w", err)
	}

	result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workingDir,
		ExplicitPath: explicit,
	})
	if err != nil {
		return nil, err
	}

	logger := logging.Default()
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	for _, path := range result.LoadedFrom {
		logger.Debug("loaded config", logging.FieldPath, path)
	}

	return result.Config, nil
}

// stylesFor builds output styles honoring the persistent --color flag.
func stylesFor(cmd *cobra.Command) *stylesBundle {
	mode, _ := cmd.Flags().GetString("color")
	return newStylesBundle(mode)
}
