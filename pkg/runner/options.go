// Package runner orchestrates per-project extraction and comparison across
// the experiment's subject projects.
package runner

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/yaklabco/saeval/pkg/config"
)

// Source describes where one side of the comparison comes from.
type Source struct {
	// IntermediatesDir holds the <project>.json intermediate artifacts.
	// When ReportsRoot is set, freshly extracted artifacts land here.
	IntermediatesDir string

	// ReportsRoot, when set, holds one raw reports directory per project
	// (ReportsRoot/<project>). Projects are extracted before comparison.
	ReportsRoot string

	// ProjectRootBase, when set, is joined with the project name to form
	// the project root used to relativize raw report paths.
	ProjectRootBase string
}

// reportsDir returns the raw reports directory for a project.
func (s Source) reportsDir(project string) string {
	return filepath.Join(s.ReportsRoot, project)
}

// intermediatePath returns the artifact path for a project.
func (s Source) intermediatePath(project string) string {
	return filepath.Join(s.IntermediatesDir, project+".json")
}

// projectRoot returns the source root for a project, or "".
func (s Source) projectRoot(project string) string {
	if s.ProjectRootBase == "" {
		return ""
	}
	return filepath.Join(s.ProjectRootBase, project)
}

// Options controls a batch comparison run.
type Options struct {
	// Fs is the filesystem all stages operate through.
	Fs afero.Fs

	// Projects are the subject projects in result-table order. Disabled
	// projects are skipped entirely and produce no row.
	Projects []config.Project

	// GroundTruth is the reference side of every comparison.
	GroundTruth Source

	// Candidate is the run being measured against the ground truth.
	Candidate Source

	// Jobs bounds the worker pool. 0 or negative means NumCPU.
	Jobs int
}
