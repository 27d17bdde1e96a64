package cli

import "errors"

// usageError marks invalid command-line usage.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// configError marks a failure to load or validate the experiment config.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// errProjectsFailed signals a completed run with per-project failures.
// The rows that did succeed have already been reported.
var errProjectsFailed = errors.New("one or more projects failed")

// ExitCodeForError maps a command error to the process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var usage *usageError
	if errors.As(err, &usage) {
		return ExitInvalidUsage
	}
	var cfg *configError
	if errors.As(err, &cfg) {
		return ExitConfigError
	}
	if errors.Is(err, errProjectsFailed) {
		return ExitProjectFailures
	}
	return ExitIOError
}
