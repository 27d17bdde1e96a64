package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/saeval/pkg/config"
	"github.com/yaklabco/saeval/pkg/report"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "projects[2].name").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks an experiment configuration for consistency.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}

	if !cfg.Mode.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "mode",
			Value:   cfg.Mode,
			Message: fmt.Sprintf("unknown run kind %q (want groundtruth, baseline, or method)", cfg.Mode),
		})
	}
	if cfg.Mode == report.KindGroundTruth {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "mode",
			Message: "comparing the ground truth against itself yields perfect scores",
		})
	}

	if !cfg.Summary.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "summary",
			Value:   cfg.Summary,
			Message: fmt.Sprintf("unknown summary kind %q (want sa, llm/taint, llm/memory, or none)", cfg.Summary),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "must be zero or positive",
		})
	}

	seen := make(map[string]struct{}, len(cfg.Projects))
	for i, project := range cfg.Projects {
		field := fmt.Sprintf("projects[%d]", i)

		if project.Name == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".name",
				Message: "must not be empty",
			})
			continue
		}
		if _, dup := seen[project.Name]; dup {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".name",
				Value:   project.Name,
				Message: "duplicate project name",
			})
		}
		seen[project.Name] = struct{}{}

		if project.MutationFile != "" {
			if filepath.IsAbs(project.MutationFile) || strings.HasPrefix(project.MutationFile, "../") {
				result.Errors = append(result.Errors, ValidationError{
					Field:   field + ".mutation_file",
					Value:   project.MutationFile,
					Message: "must be a project-relative path",
				})
			}
		} else if !project.Disabled {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field + ".mutation_file",
				Message: "no mutation file configured; baseline and method sources will match the ground truth",
			})
		}
	}

	return result
}
