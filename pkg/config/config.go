// Package config defines the experiment configuration types for saeval.
// These are pure data structures with no dependency on loaders or commands.
package config

import "github.com/yaklabco/saeval/pkg/report"

// SummaryKind selects which summary source the candidate run used.
type SummaryKind string

const (
	// SummarySA is the static-analysis-derived function summary.
	SummarySA SummaryKind = "sa"

	// SummaryLLMTaint is the LLM-generated taint summary.
	SummaryLLMTaint SummaryKind = "llm/taint"

	// SummaryLLMMemory is the LLM-generated memory summary.
	SummaryLLMMemory SummaryKind = "llm/memory"

	// SummaryNone disables summaries (null summary directory).
	SummaryNone SummaryKind = "none"
)

// IsValid returns true for a known summary kind.
func (s SummaryKind) IsValid() bool {
	switch s {
	case SummarySA, SummaryLLMTaint, SummaryLLMMemory, SummaryNone:
		return true
	default:
		return false
	}
}

// Project describes one subject project of the experiment.
type Project struct {
	// Name is the unique project key within the experiment.
	Name string `yaml:"name"`

	// MutationFile is the project-relative path of the source file whose
	// function is commented out for baseline and method runs.
	MutationFile string `yaml:"mutation_file"`

	// Disabled excludes the project from every stage; it produces no row.
	Disabled bool `yaml:"disabled"`
}

// Config is the root experiment configuration.
//
// Modes and summary kinds are a configuration enumeration only: the core
// packages never branch on them, they merely select which two intermediate
// artifacts are compared.
type Config struct {
	// Workspace is the experiment root containing projects/, summaries/,
	// reports/, intermediates/, and results/.
	Workspace string `yaml:"workspace"`

	// Projects lists the subject projects in result-table order.
	Projects []Project `yaml:"projects"`

	// Mode is the candidate run kind compared against ground truth.
	Mode report.Kind `yaml:"mode"`

	// Summary selects the summary source for the candidate run.
	Summary SummaryKind `yaml:"summary"`

	// Jobs bounds the per-project worker pool. 0 means NumCPU.
	Jobs int `yaml:"jobs"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Workspace: ".",
		Mode:      report.KindBaseline,
		Summary:   SummarySA,
	}
}

// Enabled returns the projects that are not disabled, preserving order.
func (c *Config) Enabled() []Project {
	enabled := make([]Project, 0, len(c.Projects))
	for _, p := range c.Projects {
		if !p.Disabled {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

// ProjectByName returns the named project and whether it exists.
func (c *Config) ProjectByName(name string) (Project, bool) {
	for _, p := range c.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return Project{}, false
}
