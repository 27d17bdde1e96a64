package reporter

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/yaklabco/saeval/pkg/fsutil"
	"github.com/yaklabco/saeval/pkg/match"
	"github.com/yaklabco/saeval/pkg/report"
)

// Detail is the per-project comparison breakdown kept alongside the summary
// CSV for manual inspection: overall counts plus a per-checker split.
type Detail struct {
	Project   string                   `json:"project"`
	Summary   DetailCounts             `json:"summary"`
	ByChecker map[string]*DetailCounts `json:"by_checker"`
}

// DetailCounts holds confusion counts for one grouping.
type DetailCounts struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	FN int `json:"fn"`
}

// BuildDetail computes the per-checker breakdown for one project by matching
// each checker's findings in isolation. The per-checker counts sum to the
// overall counts because the match key always includes the checker.
func BuildDetail(matcher *match.Matcher, groundTruth, candidate *report.ProjectResult) *Detail {
	if matcher == nil {
		matcher = match.New()
	}

	detail := &Detail{
		Project:   groundTruth.Project,
		ByChecker: make(map[string]*DetailCounts),
	}

	for _, path := range unionKeys(groundTruth.Files, candidate.Files) {
		gtByChecker := groupByChecker(groundTruth.Files[path])
		candByChecker := groupByChecker(candidate.Files[path])

		for _, checker := range unionCheckers(gtByChecker, candByChecker) {
			outcome := matcher.Match(gtByChecker[checker], candByChecker[checker])

			counts := detail.ByChecker[checker]
			if counts == nil {
				counts = &DetailCounts{}
				detail.ByChecker[checker] = counts
			}
			counts.TP += outcome.TP
			counts.FP += outcome.FP
			counts.FN += outcome.FN

			detail.Summary.TP += outcome.TP
			detail.Summary.FP += outcome.FP
			detail.Summary.FN += outcome.FN
		}
	}

	return detail
}

// WriteDetailJSON writes the detail breakdown to dir/<project>.comparison.json
// atomically and returns the path written.
func WriteDetailJSON(ctx context.Context, fs afero.Fs, dir string, detail *Detail) (string, error) {
	path := filepath.Join(dir, detail.Project+".comparison.json")

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}

	content, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	content = append(content, '\n')

	if err := fsutil.WriteAtomic(ctx, fs, path, content, 0); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	return path, nil
}

func groupByChecker(findings []report.Finding) map[string][]report.Finding {
	groups := make(map[string][]report.Finding)
	for _, f := range findings {
		groups[f.Checker] = append(groups[f.Checker], f)
	}
	return groups
}

func unionKeys(groundTruth, candidate map[string][]report.Finding) []string {
	set := make(map[string]struct{}, len(groundTruth)+len(candidate))
	for k := range groundTruth {
		set[k] = struct{}{}
	}
	for k := range candidate {
		set[k] = struct{}{}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func unionCheckers(groundTruth, candidate map[string][]report.Finding) []string {
	return unionKeys(groundTruth, candidate)
}
