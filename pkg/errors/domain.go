package errors

import (
	"errors"
	"fmt"
)

// Sentinel values matched with errors.Is.
var (
	// ErrMalformedVersion is matched by every MalformedVersionError.
	ErrMalformedVersion = errors.New("malformed version")

	// ErrBlankLine marks a definitions line with no content.
	// It is not reported to the user.
	ErrBlankLine = errors.New("blank line")

	// ErrInvalidConcurrency is matched by every InvalidConcurrencyError.
	ErrInvalidConcurrency = errors.New("invalid concurrency")
)

// MalformedVersionError reports a version token that could not be parsed.
//
// Fields:
//   - Text: The full version text that was parsed
//   - Segment: The offending dot-separated segment
//   - Err: Underlying conversion error, may be nil
type MalformedVersionError struct {
	Text    string
	Segment string
	Err     error
}

// Error implements the error interface.
func (e *MalformedVersionError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("malformed version %q: empty segment", e.Text)
	}
	return fmt.Sprintf("malformed version %q: segment %q is not a non-negative integer", e.Text, e.Segment)
}

// Unwrap returns the underlying conversion error.
func (e *MalformedVersionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedVersion.
func (e *MalformedVersionError) Is(target error) bool {
	return target == ErrMalformedVersion
}

// NewMalformedVersionError creates a MalformedVersionError.
//
// Parameters:
//   - text: The full version text
//   - segment: The segment that failed to parse
//   - err: Underlying error, may be nil
//
// Returns:
//   - *MalformedVersionError: New malformed version error
func NewMalformedVersionError(text, segment string, err error) *MalformedVersionError {
	return &MalformedVersionError{Text: text, Segment: segment, Err: err}
}

// SkippedLineError is the diagnostic for a definitions line that does not
// have the name@version shape or whose version is malformed.
//
// Fields:
//   - Text: The raw line
//   - Reason: Short human-readable reason
//   - Err: Underlying cause (for example a MalformedVersionError), may be nil
type SkippedLineError struct {
	Text   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *SkippedLineError) Error() string {
	return fmt.Sprintf("skipping line %q: %s", e.Text, e.Reason)
}

// Unwrap returns the underlying cause.
func (e *SkippedLineError) Unwrap() error {
	return e.Err
}

// NewSkippedLineError creates a SkippedLineError.
//
// Parameters:
//   - text: The raw definitions line
//   - reason: Why the line was skipped
//   - err: Underlying cause, may be nil
//
// Returns:
//   - *SkippedLineError: New skipped line diagnostic
func NewSkippedLineError(text, reason string, err error) *SkippedLineError {
	return &SkippedLineError{Text: text, Reason: reason, Err: err}
}

// IsSkippedLine checks if err is a SkippedLineError and returns it.
func IsSkippedLine(err error) (*SkippedLineError, bool) {
	var sle *SkippedLineError
	if errors.As(err, &sle) {
		return sle, true
	}
	return nil, false
}

// InvalidConcurrencyError reports a concurrency limit below 1.
type InvalidConcurrencyError struct {
	Limit int
}

// Error implements the error interface.
func (e *InvalidConcurrencyError) Error() string {
	return fmt.Sprintf("invalid concurrency %d: must be at least 1", e.Limit)
}

// Is reports whether target is ErrInvalidConcurrency.
func (e *InvalidConcurrencyError) Is(target error) bool {
	return target == ErrInvalidConcurrency
}

// NewInvalidConcurrencyError creates an InvalidConcurrencyError.
func NewInvalidConcurrencyError(limit int) *InvalidConcurrencyError {
	return &InvalidConcurrencyError{Limit: limit}
}

// ActionFailure records a failed install action for a single package.
//
// Fields:
//   - Package: The name@version the action ran for
//   - Reason: Short reason (e.g. "exit status 1: not found")
//   - Err: Underlying error, may be nil
type ActionFailure struct {
	Package string
	Reason  string
	Err     error
}

// Error implements the error interface.
func (e *ActionFailure) Error() string {
	return fmt.Sprintf("%s: install failed: %s", e.Package, e.Reason)
}

// Unwrap returns the underlying error.
func (e *ActionFailure) Unwrap() error {
	return e.Err
}

// NewActionFailure wraps err as the install failure of pkg.
//
// Parameters:
//   - pkg: The package spec, as name@version
//   - err: The error returned by the install action
//
// Returns:
//   - *ActionFailure: New action failure; the reason is err's message
func NewActionFailure(pkg string, err error) *ActionFailure {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return &ActionFailure{Package: pkg, Reason: reason, Err: err}
}

// IsActionFailure checks if err is an ActionFailure and returns it.
func IsActionFailure(err error) (*ActionFailure, bool) {
	var af *ActionFailure
	if errors.As(err, &af) {
		return af, true
	}
	return nil, false
}
