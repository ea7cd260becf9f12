package errors

import (
	"errors"
	"fmt"
)

// Process exit codes. Scripts running sync rely on these staying stable.
const (
	ExitSuccess        = 0
	ExitPartialFailure = 1 // some installs failed
	ExitFailure        = 2 // every install failed, or the run could not start
	ExitConfigError    = 3 // bad config, flags or definitions path; nothing was installed
)

// ExitError ends a command with a specific exit code.
//
// Message wins over Err when both are set.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return fmt.Sprintf("exit code %d", e.Code)
	}
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps err with an exit code.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf builds an ExitError from a formatted message.
func NewExitErrorf(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode maps err to the process exit code.
//
// nil is ExitSuccess. ExitError and PartialSuccessError carry their own
// code, and an invalid concurrency limit is a config error. Everything else
// is ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if pse, ok := IsPartialSuccess(err); ok {
		return pse.ExitCode()
	}
	if errors.Is(err, ErrInvalidConcurrency) {
		return ExitConfigError
	}
	return ExitFailure
}

// PartialSuccessError summarises a sync where at least one install failed.
//
// Errors holds one error per failed install, in the order they were collected.
type PartialSuccessError struct {
	Succeeded int
	Failed    int
	Errors    []error
}

func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("%d succeeded, %d failed", e.Succeeded, e.Failed)
}

// ExitCode is ExitPartialFailure when anything installed, ExitFailure otherwise.
func (e *PartialSuccessError) ExitCode() int {
	if e.Succeeded > 0 {
		return ExitPartialFailure
	}
	return ExitFailure
}

// NewPartialSuccessError creates a PartialSuccessError.
func NewPartialSuccessError(succeeded, failed int, errs []error) *PartialSuccessError {
	return &PartialSuccessError{Succeeded: succeeded, Failed: failed, Errors: errs}
}

// IsPartialSuccess unwraps err to a PartialSuccessError.
func IsPartialSuccess(err error) (*PartialSuccessError, bool) {
	var pse *PartialSuccessError
	if errors.As(err, &pse) {
		return pse, true
	}
	return nil, false
}
