// Package aggregate rolls per-file match outcomes up to per-project rows and
// an all-projects summary row with precision and recall.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/yaklabco/saeval/pkg/match"
	"github.com/yaklabco/saeval/pkg/report"
)

// AllProjects is the sentinel project name of the summary row.
const AllProjects = "all"

// AggregationError reports a refusal to compare two intermediate results
// that do not describe the same project.
type AggregationError struct {
	// Expected is the project name the caller asked to aggregate.
	Expected string

	// GroundTruth and Candidate are the project names found on each side.
	GroundTruth string
	Candidate   string
}

// Error implements the error interface.
func (e *AggregationError) Error() string {
	return fmt.Sprintf("project mismatch: expected %q, ground truth is %q, candidate is %q",
		e.Expected, e.GroundTruth, e.Candidate)
}

// Row is one line of the final results table.
type Row struct {
	// Project is the project name, or AllProjects for the summary row.
	Project string

	TP int
	FP int
	FN int

	// Precision is TP/(TP+FP), 0 when there are no candidate positives.
	Precision float64

	// Recall is TP/(TP+FN), 0 when there are no ground-truth findings.
	Recall float64
}

// Aggregator computes rows from pairs of intermediate results.
type Aggregator struct {
	matcher *match.Matcher
}

// New returns an Aggregator using the given matcher. A nil matcher selects
// exact (checker, line) matching.
func New(matcher *match.Matcher) *Aggregator {
	if matcher == nil {
		matcher = match.New()
	}
	return &Aggregator{matcher: matcher}
}

// Aggregate matches candidate against ground truth for every file path seen
// on either side and sums the outcomes into one project row.
//
// Both intermediate results must carry the requested project name; a
// mismatch yields an *AggregationError rather than a silently wrong row.
func (a *Aggregator) Aggregate(project string, groundTruth, candidate *report.ProjectResult) (Row, error) {
	if groundTruth.Project != project || candidate.Project != project {
		return Row{}, &AggregationError{
			Expected:    project,
			GroundTruth: groundTruth.Project,
			Candidate:   candidate.Project,
		}
	}

	var total match.Outcome
	for _, path := range unionPaths(groundTruth.Files, candidate.Files) {
		total.Add(a.matcher.Match(groundTruth.Files[path], candidate.Files[path]))
	}

	return newRow(project, total.TP, total.FP, total.FN), nil
}

// Summarize sums tp/fp/fn across rows and recomputes precision and recall
// from the summed counts. Averaging the per-row ratios would misweight small
// projects, so it is never done.
func Summarize(rows []Row) Row {
	var tp, fp, fn int
	for _, row := range rows {
		tp += row.TP
		fp += row.FP
		fn += row.FN
	}
	return newRow(AllProjects, tp, fp, fn)
}

func newRow(project string, tp, fp, fn int) Row {
	row := Row{Project: project, TP: tp, FP: fp, FN: fn}
	if tp+fp > 0 {
		row.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		row.Recall = float64(tp) / float64(tp+fn)
	}
	return row
}

// unionPaths returns the sorted union of file paths from both sides.
func unionPaths(groundTruth, candidate map[string][]report.Finding) []string {
	set := make(map[string]struct{}, len(groundTruth)+len(candidate))
	for path := range groundTruth {
		set[path] = struct{}{}
	}
	for path := range candidate {
		set[path] = struct{}{}
	}

	paths := make([]string, 0, len(set))
	for path := range set {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
