package errors

import (
	"fmt"
	"io"
)

// PrintErrorWithHints prints errors with actionable hints to the writer.
//
// This is the single implementation for error display across all commands.
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - errs: Errors to display
//   - verbose: If true, includes per-package details for partial failures
//
// Output format:
//
//	Error: <error message>
//	  💡 <actionable hint if available>
func PrintErrorWithHints(w io.Writer, errs []error, verbose bool) {
	for _, err := range errs {
		printSingleError(w, err, verbose)
	}
}

// printSingleError prints a single error with formatting chosen by its type.
func printSingleError(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}

	if pse, ok := IsPartialSuccess(err); ok {
		printPartialSuccessError(w, pse, verbose)
		return
	}

	if sle, ok := IsSkippedLine(err); ok {
		_, _ = fmt.Fprintf(w, "Skipped: %s\n", sle.Error())
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %s\n", EnhanceErrorWithHint(err))
}

// printPartialSuccessError prints partial success details.
//
// In verbose mode, also prints every failed install with hints.
func printPartialSuccessError(w io.Writer, err *PartialSuccessError, verbose bool) {
	label := "Partial Success"
	if err.Succeeded == 0 {
		label = "Failure"
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", label, err.Error())
	if verbose && len(err.Errors) > 0 {
		_, _ = fmt.Fprintf(w, "  Failed installs:\n")
		for _, e := range err.Errors {
			_, _ = fmt.Fprintf(w, "    - %s\n", EnhanceErrorWithHint(e))
		}
	}
}
