package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Experiment fields.
	FieldProject = "project"
	FieldKind    = "kind"
	FieldSummary = "summary"
	FieldMode    = "mode"
	FieldJobs    = "jobs"

	// Finding fields.
	FieldChecker  = "checker"
	FieldLine     = "line"
	FieldFindings = "findings"

	// Statistics fields.
	FieldProjects = "projects"
	FieldRows     = "rows"
	FieldTP       = "tp"
	FieldFP       = "fp"
	FieldFN       = "fn"
	FieldDuration = "duration_seconds"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
