package errors

import (
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	Pattern    string
	Hint       string
	Resolution string
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by EnhanceErrorWithHint to add context to errors.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "invalid concurrency",
		Hint:       "Concurrency must be a positive number",
		Resolution: "Pass --concurrency 1 or higher, or set concurrency in .pkgsync.yml",
	},
	{
		Pattern:    "malformed version",
		Hint:       "Versions are dot-separated non-negative integers",
		Resolution: "Write versions as MAJOR.MINOR.PATCH, e.g. slime@3.4.0",
	},
	{
		Pattern:    "command not found",
		Hint:       "The install command is not on PATH",
		Resolution: "Install the package manager or change install.command in .pkgsync.yml",
	},
	{
		Pattern:    "timed out",
		Hint:       "The install command took too long",
		Resolution: "Raise install.timeout_seconds or set it to 0 to disable the timeout",
	},
	{
		Pattern:    "no such file or directory",
		Hint:       "A configured path does not exist",
		Resolution: "Check --definitions and --packages-dir, or the paths in .pkgsync.yml",
	},
	{
		Pattern:    "invalid yaml",
		Hint:       "Check file syntax",
		Resolution: "Validate the config with a YAML linter; unknown keys are rejected",
	},
	{
		Pattern:    "invalid toml",
		Hint:       "Check file syntax",
		Resolution: "Validate the config with a TOML linter; unknown keys are rejected",
	},
}

// GetHint returns a hint for the given error if one matches.
//
// Parameters:
//   - err: The error to look up
//
// Returns:
//   - string: The hint with resolution, or empty string if no hint found
func GetHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(hint.Pattern)) {
			return hint.Hint + ": " + hint.Resolution
		}
	}

	return ""
}

// EnhanceErrorWithHint adds an actionable hint to an error message if a matching pattern is found.
//
// Parameters:
//   - err: The error to enhance
//
// Returns:
//   - string: Error message with hint appended if found, otherwise just the error message
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := err.Error()
	if hint := GetHint(err); hint != "" {
		return errStr + "\n  \U0001F4A1 " + hint
	}
	return errStr
}
