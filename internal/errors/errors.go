package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig   = "CONFIG"
	ErrExec     = "EXEC"
	ErrSample   = "SAMPLE"
	ErrDevice   = "DEVICE"
	ErrRecovery = "RECOVERY"
	ErrService  = "SERVICE"
	ErrLock     = "LOCK"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Formatted output:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrExec code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrExec,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Short returns the message and cause on a single line, for log fields and
// the display where the multi-line form doesn't fit.
func (e *Error) Short() string {
	if e.Cause != nil {
		return e.Message + ": " + Summary(e.Cause)
	}
	return e.Message
}

// Summary returns the one-line form of any error: Short for structured
// errors, Error otherwise.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var wmErr *Error
	if errors.As(err, &wmErr) {
		return wmErr.Short()
	}
	return err.Error()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var wmErr *Error
	if errors.As(err, &wmErr) {
		return wmErr.Code == code
	}
	return false
}

// Is reports whether any error in err's chain matches target.
// Re-exported so callers importing this package don't also need the stdlib one.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
