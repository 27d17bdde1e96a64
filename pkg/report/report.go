// Package report defines the canonical intermediate form of an analyzer run:
// per-project, per-file findings plus the recorded analysis duration.
package report

// Finding is a single diagnostic reported by the analyzer.
//
// The triple (Checker, Message, Line) is the identity of a finding; two
// findings with the same identity are the same finding and collapse to one
// during extraction.
type Finding struct {
	// Checker is the identifier of the rule that fired (e.g., "unix.Malloc").
	Checker string `json:"checker"`

	// Message is the human-readable description of the diagnostic.
	Message string `json:"message"`

	// Line is the 1-based line number in the source file at analysis time.
	Line int `json:"line"`
}

// Valid reports whether the finding satisfies the identity invariant:
// a non-empty checker and a 1-based line number.
func (f Finding) Valid() bool {
	return f.Checker != "" && f.Line >= 1
}

// ProjectResult is the intermediate result for one project and one run.
//
// Files maps a project-relative file path to the findings for that file.
// A file with no findings has no entry; absence, not an empty list, signals
// "no diagnostics". A ProjectResult is immutable once produced by extraction.
type ProjectResult struct {
	// Project is the project name, unique within an experiment.
	Project string `json:"project"`

	// AnalysisDurationSeconds is the elapsed wall time of the analyzer run.
	AnalysisDurationSeconds float64 `json:"analysis_duration_seconds"`

	// Files maps relative file paths to their findings, in first-seen order.
	Files map[string][]Finding `json:"files"`
}

// Kind identifies which variant of the sources an analyzer run saw.
type Kind string

const (
	// KindGroundTruth is the analysis of the unmodified sources.
	KindGroundTruth Kind = "groundtruth"

	// KindBaseline is the analysis with a function removed and no summary.
	KindBaseline Kind = "baseline"

	// KindMethod is the analysis with a function removed and a generated
	// summary substituted in its place.
	KindMethod Kind = "method"
)

// IsValid returns true for one of the three known run kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindGroundTruth, KindBaseline, KindMethod:
		return true
	default:
		return false
	}
}

// Kinds returns all run kinds in canonical order.
func Kinds() []Kind {
	return []Kind{KindGroundTruth, KindBaseline, KindMethod}
}

// FindingCount returns the total number of findings across all files.
func (p *ProjectResult) FindingCount() int {
	total := 0
	for _, findings := range p.Files {
		total += len(findings)
	}
	return total
}

// Dedup collapses findings with the same (checker, message, line) identity,
// keeping the first occurrence of each. File entries left empty afterwards
// are removed so that absence keeps meaning "no diagnostics".
func Dedup(files map[string][]Finding) map[string][]Finding {
	out := make(map[string][]Finding, len(files))
	for path, findings := range files {
		seen := make(map[Finding]struct{}, len(findings))
		kept := make([]Finding, 0, len(findings))
		for _, f := range findings {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			kept = append(kept, f)
		}
		if len(kept) > 0 {
			out[path] = kept
		}
	}
	return out
}
