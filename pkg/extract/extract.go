// Package extract normalizes raw analyzer reports into the canonical
// intermediate form consumed by the matching and aggregation stages.
//
// The external analyzer driver exports SARIF 2.1.0 files into a per-project
// reports directory and records the elapsed analysis time alongside them.
// Extraction walks that directory, groups findings by project-relative file
// path, deduplicates by finding identity, and persists one intermediate JSON
// artifact per run.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/yaklabco/saeval/internal/logging"
	"github.com/yaklabco/saeval/pkg/fsutil"
	"github.com/yaklabco/saeval/pkg/report"
)

// ExtractionError reports a failure to produce an intermediate result from a
// raw reports directory. Timing and raw-format failures are never silently
// defaulted; they surface as this type.
type ExtractionError struct {
	// Project is the project whose extraction failed.
	Project string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Project == "" {
		return fmt.Sprintf("extraction failed: %v", e.Err)
	}
	return fmt.Sprintf("extraction failed for %s: %v", e.Project, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExtractionError) Unwrap() error { return e.Err }

// Options controls a single extraction.
type Options struct {
	// ReportsDir is the directory holding one project run's raw output.
	ReportsDir string

	// Project is the project name recorded in the intermediate result.
	Project string

	// ProjectRoot, when set, is used to relativize absolute source paths
	// found in the raw reports. Paths outside the root fall back to a
	// basename match against the root's directory name, then to the
	// original path.
	ProjectRoot string
}

// Extract reads the raw analyzer reports for one project run and returns the
// canonical ProjectResult. It has no side effects; use ExtractToFile to also
// persist the intermediate artifact.
func Extract(ctx context.Context, fs afero.Fs, opts Options) (*report.ProjectResult, error) {
	if opts.Project == "" {
		return nil, &ExtractionError{Err: errors.New("project name is required")}
	}

	if err := fsutil.StatDir(fs, opts.ReportsDir); err != nil {
		return nil, &ExtractionError{Project: opts.Project, Err: err}
	}

	sarifPaths, err := findSARIFFiles(fs, opts.ReportsDir)
	if err != nil {
		return nil, &ExtractionError{Project: opts.Project, Err: err}
	}
	if len(sarifPaths) == 0 {
		return nil, &ExtractionError{
			Project: opts.Project,
			Err:     fmt.Errorf("no SARIF reports under %s", opts.ReportsDir),
		}
	}

	logger := logging.FromContext(ctx)
	logger.Debug("extracting raw reports",
		logging.FieldProject, opts.Project,
		logging.FieldPath, opts.ReportsDir,
		logging.FieldFiles, len(sarifPaths),
	)

	files := make(map[string][]report.Finding)
	seen := make(map[string]map[report.Finding]struct{})

	for _, path := range sarifPaths {
		select {
		case <-ctx.Done():
			return nil, &ExtractionError{Project: opts.Project, Err: ctx.Err()}
		default:
		}

		entries, err := parseSARIFFile(fs, path)
		if err != nil {
			return nil, &ExtractionError{Project: opts.Project, Err: err}
		}

		for _, entry := range entries {
			if !entry.finding.Valid() {
				logger.Warn("skipping finding without checker or line",
					logging.FieldProject, opts.Project,
					logging.FieldChecker, entry.finding.Checker,
					logging.FieldLine, entry.finding.Line,
				)
				continue
			}

			relPath := relativizePath(entry.filePath, opts.ProjectRoot)
			if seen[relPath] == nil {
				seen[relPath] = make(map[report.Finding]struct{})
			}
			if _, dup := seen[relPath][entry.finding]; dup {
				continue
			}
			seen[relPath][entry.finding] = struct{}{}
			files[relPath] = append(files[relPath], entry.finding)
		}
	}

	duration, err := readAnalysisTime(fs, opts.ReportsDir)
	if err != nil {
		return nil, &ExtractionError{Project: opts.Project, Err: err}
	}

	return &report.ProjectResult{
		Project:                 opts.Project,
		AnalysisDurationSeconds: duration,
		Files:                   files,
	}, nil
}

// ExtractToFile extracts a project run and writes the intermediate artifact
// to outDir/<project>.json. The write is the only side effect and is atomic.
// It returns the result and the path written.
func ExtractToFile(ctx context.Context, fs afero.Fs, opts Options, outDir string) (*report.ProjectResult, string, error) {
	result, err := Extract(ctx, fs, opts)
	if err != nil {
		return nil, "", err
	}

	if err := fs.MkdirAll(outDir, 0o755); err != nil {
		return nil, "", &ExtractionError{Project: opts.Project, Err: fmt.Errorf("create output dir: %w", err)}
	}

	outPath := filepath.Join(outDir, opts.Project+".json")
	if err := report.Save(ctx, fs, outPath, result); err != nil {
		return nil, "", &ExtractionError{Project: opts.Project, Err: err}
	}

	logging.FromContext(ctx).Debug("wrote intermediate artifact",
		logging.FieldProject, opts.Project,
		logging.FieldOutput, outPath,
	)

	return result, outPath, nil
}

// relativizePath maps a raw source path from the analyzer onto a
// project-relative, forward-slash path.
func relativizePath(rawPath, projectRoot string) string {
	cleaned := filepath.ToSlash(rawPath)

	if projectRoot == "" {
		return cleaned
	}

	rel, err := filepath.Rel(projectRoot, rawPath)
	if err == nil && rel != "." && !filepath.IsAbs(rel) && !isOutside(rel) {
		return filepath.ToSlash(rel)
	}

	// Analyzer machines and this machine may disagree about absolute
	// prefixes. Locate the root's directory name inside the raw path.
	rootName := filepath.Base(filepath.Clean(projectRoot))
	if rootName != "" && rootName != "." {
		if idx := strings.LastIndex(cleaned, "/"+rootName+"/"); idx >= 0 {
			if candidate := cleaned[idx+len(rootName)+2:]; candidate != "" {
				return candidate
			}
		}
	}

	return cleaned
}

func isOutside(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, "../")
}
