// Package errors provides unified error types and display for pkgsync.
//
// This package consolidates all error handling into a single location:
//   - MalformedVersionError: A version token has a non-numeric or negative segment
//   - SkippedLineError: A definitions line could not be turned into a package
//   - InvalidConcurrencyError: The batch executor was given a limit below 1
//   - ActionFailure: One package's install action failed
//   - ExitError: Command exit with specific exit code
//   - PartialSuccessError: Some installs succeeded, some failed
//
// Propagation:
//
// Parse-level errors are recovered by the caller (the line is skipped and a
// diagnostic is collected). Concurrency misconfiguration is fatal to the call
// that received it. Action failures are recorded per package and never abort
// a batch.
//
// Error Checking:
//
// Use errors.Is with the sentinel values, or the Is* helpers to extract the
// typed value:
//
//	if errors.Is(err, errors.ErrInvalidConcurrency) {
//	    os.Exit(errors.ExitConfigError)
//	}
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): All operations completed successfully
//   - ExitPartialFailure (1): Some installs failed
//   - ExitFailure (2): All installs failed or critical error
//   - ExitConfigError (3): Configuration or validation error
package errors
