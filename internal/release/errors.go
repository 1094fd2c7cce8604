package release

import (
	"errors"
	"fmt"
	"io/fs"
)

// InputError reports a malformed commit batch or bump kind.
type InputError struct {
	Message string
	Err     error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *InputError) Unwrap() error { return e.Err }

// IOError reports a failed read or write of one of the release files.
type IOError struct {
	Op   string // "read" or "write"
	What string // "manifest", "changelog", "release notes", "env file"
	Path string // empty when the collaborator is not file-backed
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.What, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func readError(what string, err error) error {
	return newIOError("read", what, err)
}

func writeError(what string, err error) error {
	return newIOError("write", what, err)
}

func newIOError(op, what string, err error) error {
	e := &IOError{Op: op, What: what, Err: err}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		e.Path = pe.Path
	}
	return e
}

// IsInputError reports whether err is or wraps an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
