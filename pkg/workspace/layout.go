// Package workspace manages the on-disk experiment environment: the
// directory layout, source archive extraction, and the filename-based
// mutation that comments a project file out of the build.
package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/yaklabco/saeval/pkg/config"
	"github.com/yaklabco/saeval/pkg/report"
)

// Layout resolves paths inside an experiment workspace.
type Layout struct {
	// Base is the workspace root directory.
	Base string
}

// NewLayout returns a Layout rooted at base.
func NewLayout(base string) Layout {
	return Layout{Base: base}
}

// ProjectsDir returns the sources directory for a run kind.
// Ground-truth and baseline sources are separate checkouts; method runs
// analyze the baseline sources with a summary supplied to the analyzer.
func (l Layout) ProjectsDir(kind report.Kind) string {
	if kind == report.KindMethod {
		kind = report.KindBaseline
	}
	return filepath.Join(l.Base, "projects", string(kind))
}

// ProjectDir returns one project's source directory for a run kind.
func (l Layout) ProjectDir(kind report.Kind, project string) string {
	return filepath.Join(l.ProjectsDir(kind), project)
}

// ReportsDir returns the raw analyzer output root for a run kind.
func (l Layout) ReportsDir(kind report.Kind) string {
	return filepath.Join(l.Base, "reports", string(kind))
}

// IntermediatesDir returns the intermediate artifact dir for a run kind.
func (l Layout) IntermediatesDir(kind report.Kind) string {
	return filepath.Join(l.Base, "intermediates", string(kind))
}

// ResultsDir returns the comparison results directory.
func (l Layout) ResultsDir() string {
	return filepath.Join(l.Base, "results")
}

// SummariesDir returns the summary directory for a summary kind and project.
// SummaryNone maps to the shared null-summary directory.
func (l Layout) SummariesDir(kind config.SummaryKind, project string) string {
	if kind == config.SummaryNone {
		return filepath.Join(l.Base, "null_summary")
	}
	return filepath.Join(l.Base, "summaries", filepath.FromSlash(string(kind)), project)
}

// Build creates the workspace skeleton. Existing directories are left
// untouched, so Build is safe to run repeatedly.
func (l Layout) Build(fs afero.Fs) error {
	dirs := []string{
		filepath.Join(l.Base, "projects", string(report.KindBaseline)),
		filepath.Join(l.Base, "projects", string(report.KindGroundTruth)),
		filepath.Join(l.Base, "summaries", "sa"),
		filepath.Join(l.Base, "summaries", "llm", "taint"),
		filepath.Join(l.Base, "summaries", "llm", "memory"),
		filepath.Join(l.Base, "null_summary"),
		l.ResultsDir(),
	}
	for _, kind := range report.Kinds() {
		dirs = append(dirs, l.ReportsDir(kind), l.IntermediatesDir(kind))
	}

	for _, dir := range dirs {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
