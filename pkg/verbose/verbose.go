// Package verbose provides debug logging with pointers to related help.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	writeMu sync.Mutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging and allows debug messages to be printed.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging and prevents debug messages from being printed.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// emit writes one formatted message when logging is enabled. Writes are
// serialized so lines from concurrent install workers never interleave.
func emit(format string, args ...any) {
	mu.RLock()
	on, w := enabled, writer
	mu.RUnlock()
	if !on {
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	_, _ = fmt.Fprintf(w, format, args...)
}

// Printf prints a formatted verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	emit("[DEBUG] "+format+"\n", args...)
}

// Info prints an informational verbose message if enabled.
func Info(msg string) {
	emit("[DEBUG] %s\n", msg)
}

// Infof prints a formatted informational verbose message if enabled.
func Infof(format string, args ...any) {
	emit("[DEBUG] "+format+"\n", args...)
}

// Topic points at the command or file that explains a recurring problem.
//
// Fields:
//   - Name: A human-readable name for the topic
//   - See: Where to look, such as a pkgsync command
//   - Hint: One line on what the user usually needs to change
type Topic struct {
	Name string
	See  string
	Hint string
}

var topics = map[string]Topic{
	"config": {
		Name: "Configuration",
		See:  "pkgsync config --show-effective",
		Hint: "Values come from defaults, then .pkgsync.yml or --config, then flags",
	},
	"definitions": {
		Name: "Definitions File",
		See:  "pkgsync config --show-defaults",
		Hint: "One name@version per line; blank lines and # comments are ignored",
	},
	"install": {
		Name: "Install Command",
		See:  "pkgsync config --show-effective",
		Hint: "Placeholders {{package}}, {{version}} and {{spec}} are shell-escaped",
	},
}

// WithTopic prints a verbose message followed by where to read more about topic.
//
// Parameters:
//   - topic: The topic key ("config", "definitions", "install")
//   - message: The main message to print
func WithTopic(topic, message string) {
	t, ok := topics[strings.ToLower(topic)]
	if !ok {
		emit("[DEBUG] %s\n", message)
		return
	}
	emit("[DEBUG] %s\n        📖 %s: %s\n        💡 %s\n", message, t.Name, t.See, t.Hint)
}

// CommandExec logs command execution details if enabled.
//
// Parameters:
//   - cmd: The command string being executed
//   - workDir: The working directory path for command execution
func CommandExec(cmd, workDir string) {
	if workDir == "" {
		workDir = "."
	}
	emit("[DEBUG] Executing: %s\n        Working dir: %s\n", cmd, workDir)
}

// CommandResult logs command execution results if enabled.
//
// It performs the following operations:
//   - Prints the command status (succeeded or failed) with exit code
//   - Truncates long command strings to 60 characters for readability
//   - If output is provided, prints up to 5 lines with truncation
//
// Parameters:
//   - cmd: The command string that was executed
//   - exitCode: The exit code returned by the command (0 for success)
//   - output: The command output (stdout/stderr)
func CommandResult(cmd string, exitCode int, output string) {
	if !IsEnabled() {
		return
	}

	var b strings.Builder
	if exitCode == 0 {
		fmt.Fprintf(&b, "[DEBUG] Command succeeded: %s\n", truncate(cmd, 60))
	} else {
		fmt.Fprintf(&b, "[DEBUG] Command failed (exit %d): %s\n", exitCode, truncate(cmd, 60))
	}
	if trimmed := strings.TrimSpace(output); trimmed != "" {
		lines := strings.Split(trimmed, "\n")
		if len(lines) > 5 {
			for _, line := range lines[:3] {
				fmt.Fprintf(&b, "        | %s\n", truncate(line, 100))
			}
			fmt.Fprintf(&b, "        | ... (%d more lines)\n", len(lines)-3)
		} else {
			for _, line := range lines {
				fmt.Fprintf(&b, "        | %s\n", truncate(line, 100))
			}
		}
	}
	emit("%s", b.String())
}

// ConfigLoaded logs which config file was loaded if enabled.
//
// Parameters:
//   - path: The config file path, or "" for built-in defaults
func ConfigLoaded(path string) {
	if path == "" {
		emit("[DEBUG] Config loaded: built-in defaults\n")
		return
	}
	emit("[DEBUG] Config loaded: %s\n", path)
}

// PackageSkipped logs an installed package directory that was ignored.
//
// Parameters:
//   - dir: The package directory
//   - reason: Why it was ignored
func PackageSkipped(dir, reason string) {
	emit("[DEBUG] Package dir '%s' skipped: %s\n", dir, reason)
}

// Decision logs the reconciler decision for a package with an installed match.
//
// Parameters:
//   - spec: Desired package as name@version
//   - installed: Installed version
//   - action: Decision taken
func Decision(spec, installed, action string) {
	emit("[DEBUG] Reconcile %s (installed %s): %s\n", spec, installed, action)
}

// truncate shortens a string to the specified maximum length.
//
// Parameters:
//   - s: The string to truncate
//   - maxLen: The maximum length for the returned string (must be at least 3)
//
// Returns:
//   - string: The original or truncated string with "..." suffix if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
