package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/saeval/pkg/runner"
)

const (
	wordProject  = "project"
	wordProjects = "projects"
)

// FormatRunSummary formats a batch comparison result as a single line.
// Example: "5 projects compared (tp=41 fp=7 fn=12), precision 0.8542, recall 0.7736, 1 failed".
func (s *Styles) FormatRunSummary(result *runner.Result) string {
	if result == nil || (len(result.Rows) == 0 && len(result.Errors) == 0) {
		return s.Dim.Render("No projects compared") + "\n"
	}

	var parts []string

	projectWord := wordProjects
	if len(result.Rows) == 1 {
		projectWord = wordProject
	}
	parts = append(parts, fmt.Sprintf("%d %s compared %s",
		len(result.Rows),
		projectWord,
		s.Metric.Render(fmt.Sprintf("(tp=%d fp=%d fn=%d)",
			result.Summary.TP, result.Summary.FP, result.Summary.FN)),
	))

	parts = append(parts,
		"precision "+s.Bold.Render(fmt.Sprintf("%.4f", result.Summary.Precision)),
		"recall "+s.Bold.Render(fmt.Sprintf("%.4f", result.Summary.Recall)),
	)

	if len(result.Errors) > 0 {
		failWord := wordProjects
		if len(result.Errors) == 1 {
			failWord = wordProject
		}
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed", len(result.Errors), failWord)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatFailures lists per-project failures, one per line.
func (s *Styles) FormatFailures(result *runner.Result) string {
	if result == nil || len(result.Errors) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, failure := range result.Errors {
		builder.WriteString(s.Failure.Render("✗"))
		builder.WriteString(" ")
		builder.WriteString(s.Project.Render(failure.Project))
		builder.WriteString(": ")
		builder.WriteString(failure.Err.Error())
		builder.WriteString("\n")
	}
	return builder.String()
}
