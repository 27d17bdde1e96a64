package cli

// Exit codes for saeval.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitProjectFailures indicates the run completed but one or more
	// projects failed extraction or aggregation.
	ExitProjectFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)
