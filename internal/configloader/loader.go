package configloader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/saeval/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. Environment variables (SAEVAL_*)
//  2. Explicit config file (opts.ExplicitPath)
//  3. Project config (.saeval.yml upward search)
//  4. User config ($XDG_CONFIG_HOME/saeval/config.yaml)
//  5. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{Paths: &ConfigPaths{}}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result.Paths = paths

	if opts.ExplicitPath != "" {
		result.Paths.Explicit = opts.ExplicitPath
	}

	// Lowest-precedence file first; later files override earlier ones.
	filesToLoad := []string{}
	if !opts.IgnoreUserConfig && paths.User != "" {
		filesToLoad = append(filesToLoad, paths.User)
	}
	if result.Paths.Explicit != "" {
		filesToLoad = append(filesToLoad, result.Paths.Explicit)
	} else if paths.Project != "" {
		filesToLoad = append(filesToLoad, paths.Project)
	}

	for _, path := range filesToLoad {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, err
		}
	}

	validation := Validate(cfg)
	for _, warning := range validation.Warnings {
		result.Warnings = append(result.Warnings, warning.Error())
	}
	if !validation.Valid() {
		return nil, fmt.Errorf("invalid configuration: %s", validation.Errors[0].Error())
	}

	result.Config = cfg
	return result, nil
}

// loadFile decodes one YAML config file over the current config. Fields
// present in the file override, absent fields keep their prior values.
func loadFile(cfg *config.Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
