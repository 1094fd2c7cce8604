package cli

import "errors"

// Exit codes for the releasekit CLI
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates any failure: invalid input, unreadable files,
	// or a failed release stage
	ExitFailure = 1
)

// ExitError is a command failure that has already been reported on stderr.
// It carries the process exit code.
type ExitError struct {
	code int
	err  error
}

func (e *ExitError) Error() string { return e.err.Error() }

func (e *ExitError) Unwrap() error { return e.err }

// Code returns the exit code.
func (e *ExitError) Code() int { return e.code }

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code()
	}
	return ExitFailure
}
