package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/saeval/pkg/config"
	"github.com/yaklabco/saeval/pkg/report"
)

// envVarPrefix is the prefix for all saeval environment variables.
const envVarPrefix = "SAEVAL_"

// LoadFromEnv applies environment variable overrides to the configuration.
// Scalar knobs only; the project list always comes from config files.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	if value := os.Getenv(envVarPrefix + "WORKSPACE"); value != "" {
		cfg.Workspace = value
	}
	if value := os.Getenv(envVarPrefix + "MODE"); value != "" {
		cfg.Mode = report.Kind(value)
	}
	if value := os.Getenv(envVarPrefix + "SUMMARY"); value != "" {
		cfg.Summary = config.SummaryKind(value)
	}
	if value := os.Getenv(envVarPrefix + "JOBS"); value != "" {
		jobs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %sJOBS: %q", envVarPrefix, value)
		}
		cfg.Jobs = jobs
	}

	return nil
}
