// Package preflight checks that the programs an install command needs are
// available before any package is installed.
package preflight

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/ajxudir/pkgsync/pkg/verbose"
)

// CommandResolutionHints maps command names to installation instructions.
var CommandResolutionHints = map[string]string{
	"apm":  "Install Atom and enable its shell commands: https://github.com/atom/apm",
	"ppm":  "Install Pulsar and enable its shell commands: https://pulsar-edit.dev/download.html",
	"npm":  "Install Node.js: https://nodejs.org/",
	"yarn": "Install Yarn: https://yarnpkg.com/getting-started/install",
	"pnpm": "Install pnpm: https://pnpm.io/installation",
	"code": "Install VS Code and add 'code' to PATH: https://code.visualstudio.com/docs/setup/setup-overview",
	"curl": "Install curl: https://curl.se/download.html (often pre-installed)",
	"tar":  "Unix tool - typically pre-installed on Linux/macOS",
}

// ValidationError represents a missing command with a resolution hint.
//
// Fields:
//   - Command: The name of the missing command
//   - Hint: Installation instructions, empty when none are known
type ValidationError struct {
	Command string
	Hint    string
}

// Error returns the missing command and how to resolve it.
func (e *ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("command not found: %s\n  Resolution: %s", e.Command, e.Hint)
	}
	return fmt.Sprintf("command not found: %s\n  Resolution: Ensure '%s' is installed and available in your PATH,\n             or set install.command to an available alternative.", e.Command, e.Command)
}

// ValidateResult holds every missing command found by a check.
type ValidateResult struct {
	Errors []ValidationError
}

// HasErrors reports whether any command is missing.
func (r *ValidateResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessage formats all validation errors as one message.
//
// Returns:
//   - string: Multi-line message; empty when there are no errors
func (r *ValidateResult) ErrorMessage() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Pre-flight validation failed:\n")
	for _, err := range r.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// CheckInstallCommand verifies that every program the install command
// template runs can be found.
//
// Programs are looked up in PATH first and then through the user's shell,
// so aliases and functions count. Segments whose program is itself a
// placeholder are skipped.
//
// Parameters:
//   - command: The install command template, e.g. "apm install {{spec}}"
//
// Returns:
//   - *ValidateResult: Missing commands; never nil
func CheckInstallCommand(command string) *ValidateResult {
	result := &ValidateResult{}
	commands := extractCommands(command)
	for _, cmd := range commands {
		if err := validateCommand(cmd); err != nil {
			result.Errors = append(result.Errors, *err)
		}
	}
	verbose.Printf("Preflight: %d command(s) checked, %d missing", len(commands), len(result.Errors))
	return result
}

// segmentSeparator splits a command line into the parts that each start a program.
var segmentSeparator = regexp.MustCompile(`\|\||&&|[|;]`)

// extractCommands returns the program names of a command template, in order
// of first appearance.
//
// It performs the following operations:
//   - Skips blank lines and # comments and strips trailing continuation backslashes
//   - Splits each line on |, ||, && and ;
//   - Takes the first word of each segment after leading VAR=value assignments
func extractCommands(commands string) []string {
	result := []string{}
	seen := make(map[string]bool)

	normalized := strings.ReplaceAll(strings.TrimSpace(commands), "\r\n", "\n")
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), "\\"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		for _, part := range segmentSeparator.Split(line, -1) {
			cmd := programName(strings.Fields(part))
			if cmd == "" || seen[cmd] {
				continue
			}
			seen[cmd] = true
			result = append(result, cmd)
		}
	}

	return result
}

// programName returns the first field that is not an environment assignment.
func programName(fields []string) string {
	for _, f := range fields {
		if strings.Contains(f, "{{") {
			return ""
		}
		if name, _, ok := strings.Cut(f, "="); ok && name != "" && !strings.ContainsAny(name, "/\"'") {
			continue
		}
		return f
	}
	return ""
}

// validateCommand checks whether cmd exists in PATH or through the shell.
//
// Returns:
//   - *ValidationError: Set when cmd cannot be found; nil otherwise
func validateCommand(cmd string) *ValidationError {
	if cmd == "" {
		return nil
	}
	if _, err := exec.LookPath(cmd); err == nil {
		return nil
	}
	if commandExistsInShell(cmd) {
		verbose.Printf("Preflight: %q found as shell alias or function", cmd)
		return nil
	}

	hint := CommandResolutionHints[cmd]
	verbose.Printf("Preflight: command %q not found", cmd)
	return &ValidationError{Command: cmd, Hint: hint}
}

// commandExistsInShell asks the user's login shell whether cmd resolves.
func commandExistsInShell(cmd string) bool {
	shell, args := getShellCommandCheck(cmd)
	return exec.Command(shell, args...).Run() == nil
}
