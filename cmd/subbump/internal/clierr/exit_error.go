// Package clierr carries process exit codes through error returns so main
// can stay dumb about where a failure came from.
package clierr

import (
	"errors"
	"fmt"
)

// ExitError is an error with an explicit process exit code. It supports
// wrapping via Unwrap so errors.Is/As see the underlying cause.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

// ExitCode returns the process exit code the error asks for.
func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// New creates an ExitError with a message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Wrap creates an ExitError around an underlying cause.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var e *ExitError
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return 1
}

func normalize(code int) int {
	// Errors never exit 0.
	if code <= 0 {
		return 1
	}
	return code
}
