package runner

import "github.com/yaklabco/saeval/pkg/aggregate"

// ProjectError records a per-project failure. A failed project contributes
// no row, so failures stay distinguishable from "legitimately found nothing".
type ProjectError struct {
	// Project is the project that failed.
	Project string

	// Err is the extraction, load, or aggregation error.
	Err error
}

// Result is the outcome of a batch comparison run.
type Result struct {
	// Rows holds one row per successfully compared project, in the order
	// the projects were configured.
	Rows []aggregate.Row

	// Summary is the all-projects row computed from Rows.
	Summary aggregate.Row

	// Errors lists projects that failed, in configured order.
	Errors []ProjectError
}

// Failed returns true if any project failed.
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}
