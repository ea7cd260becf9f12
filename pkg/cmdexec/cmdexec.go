// Package cmdexec runs package-manager commands through the user's shell.
//
// Commands are templates: {{package}}, {{version}} and {{spec}} are replaced
// with shell-escaped values before execution. A template may span several
// lines; lines ending in | are piped into the next, a trailing \ continues
// the line, and other lines run one after another.
package cmdexec

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ajxudir/pkgsync/pkg/verbose"
	"github.com/ajxudir/pkgsync/pkg/warnings"
)

// ErrTimedOut is matched by errors returned when a command exceeds its timeout.
var ErrTimedOut = stderrors.New("command timed out")

// waitDelay bounds how long Wait blocks on output pipes after the process
// group has been killed.
const waitDelay = 2 * time.Second

// getShell returns the user's shell and the args to run a command string.
//
// SHELL is honoured so aliases and login profiles apply, matching what the
// user would get typing the command themselves.
//
// Returns:
//   - shell: The path to the shell executable
//   - args: The shell arguments that precede the command string
func getShell() (shell string, args []string) {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-l", "-c"}
	}
	return getDefaultShell()
}

// Execute expands a command template and runs it.
//
// Parameters:
//   - ctx: Cancels the running command
//   - commands: Command template, possibly multiline
//   - env: Extra environment variables; values may reference $VARS
//   - dir: Working directory, "" for the current one
//   - timeout: Per-group limit, 0 for none
//   - replacements: Placeholder values, keyed without braces
//
// Returns:
//   - []byte: Stdout of the last command group
//   - error: The first failure, with stderr attached when available
func Execute(ctx context.Context, commands string, env map[string]string, dir string, timeout time.Duration, replacements map[string]string) ([]byte, error) {
	if strings.TrimSpace(commands) == "" {
		return nil, fmt.Errorf("no commands provided")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	environ := buildEnviron(env)

	var last []byte
	for _, group := range parseCommandGroups(applyReplacements(commands, replacements)) {
		if err := ctx.Err(); err != nil {
			return last, err
		}
		out, err := executeCommand(ctx, strings.Join(group, " | "), environ, dir, timeout)
		if err != nil {
			return out, err
		}
		last = out
	}
	return last, nil
}

// buildEnviron appends env to the process environment, expanding $VAR
// references in each value.
func buildEnviron(env map[string]string) []string {
	environ := os.Environ()
	for key, value := range env {
		environ = append(environ, key+"="+os.ExpandEnv(value))
	}
	return environ
}

// applyReplacements substitutes {{key}} placeholders with shell-escaped values.
func applyReplacements(commands string, replacements map[string]string) string {
	result := commands
	for key, value := range replacements {
		result = strings.ReplaceAll(result, "{{"+key+"}}", ShellQuote(value))
	}
	return result
}

// ShellQuote quotes s as a single POSIX shell word.
//
// Strings made only of safe characters are returned as is so that logged
// commands stay readable. Everything else is wrapped in single quotes, with
// embedded single quotes closed, escaped and reopened.
//
// Parameters:
//   - s: The value to escape
//
// Returns:
//   - string: A single shell word that expands to s
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, func(r rune) bool { return !isShellSafe(r) }) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// isShellSafe reports whether r never needs quoting.
func isShellSafe(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		strings.ContainsRune("-_./@:+=", r)
}

// parseCommandGroups splits a command template into sequential groups.
//
// Each group is a list of commands to be piped together. Blank lines are
// dropped, CRLF endings are accepted.
//
// Parameters:
//   - commands: The expanded command text
//
// Returns:
//   - [][]string: Groups in execution order
func parseCommandGroups(commands string) [][]string {
	lines := strings.Split(strings.ReplaceAll(commands, "\r\n", "\n"), "\n")

	var groups [][]string
	var pipe []string
	var cont strings.Builder

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasSuffix(trimmed, `\`) {
			cont.WriteString(strings.TrimSuffix(trimmed, `\`))
			cont.WriteString(" ")
			continue
		}

		cont.WriteString(trimmed)
		full := strings.TrimSpace(cont.String())
		cont.Reset()

		if strings.HasSuffix(full, "|") {
			if head := strings.TrimSpace(strings.TrimSuffix(full, "|")); head != "" {
				pipe = append(pipe, head)
			}
			continue
		}

		pipe = append(pipe, splitByPipe(full)...)
		groups = append(groups, pipe)
		pipe = nil
	}

	if rest := strings.TrimSpace(cont.String()); rest != "" {
		pipe = append(pipe, rest)
	}
	if len(pipe) > 0 {
		groups = append(groups, pipe)
	}
	return groups
}

// splitByPipe splits line on | characters outside single or double quotes.
// "||" is kept intact since it is a shell operator, not a pipe.
func splitByPipe(line string) []string {
	var parts []string
	var current strings.Builder
	var quote rune

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		escaped := i > 0 && runes[i-1] == '\\'

		switch {
		case (r == '"' || r == '\'') && !escaped:
			if quote == 0 {
				quote = r
			} else if quote == r {
				quote = 0
			}
		case r == '|' && quote == 0:
			if i+1 < len(runes) && runes[i+1] == '|' {
				current.WriteString("||")
				i++
				continue
			}
			if part := strings.TrimSpace(current.String()); part != "" {
				parts = append(parts, part)
			}
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}

	if part := strings.TrimSpace(current.String()); part != "" {
		parts = append(parts, part)
	}
	return parts
}

// executeCommand runs cmdStr through the shell in its own process group.
//
// It performs the following operations:
//   - Step 1: Derives a timeout context when timeout > 0
//   - Step 2: Starts the shell with the process group set, so cancellation
//     kills every child rather than just the shell
//   - Step 3: Classifies the failure as timeout, cancellation or exit error
//
// Parameters:
//   - ctx: Parent context
//   - cmdStr: Shell command line
//   - environ: Full environment for the child
//   - dir: Working directory, "" for the current one
//   - timeout: Limit for this command, 0 for none
//
// Returns:
//   - []byte: Stdout on success
//   - error: Wraps ErrTimedOut, ctx.Err(), or the exit error plus stderr
func executeCommand(ctx context.Context, cmdStr string, environ []string, dir string, timeout time.Duration) ([]byte, error) {
	if strings.TrimSpace(cmdStr) == "" {
		return nil, fmt.Errorf("empty command")
	}

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shell, shellArgs := getShell()
	cmd := exec.CommandContext(runCtx, shell, append(shellArgs, cmdStr)...)
	cmd.Env = environ
	cmd.Dir = dir
	setProcGroup(cmd)
	cmd.Cancel = func() error {
		if err := killProcGroup(cmd); err != nil {
			warnings.Warnf("failed to kill process group for %q: %v\n", cmdStr, err)
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	verbose.CommandExec(cmdStr, dir)
	err := cmd.Run()
	verbose.CommandResult(cmdStr, exitCode(cmd, err), stdout.String()+stderr.String())
	if err == nil {
		return stdout.Bytes(), nil
	}

	// A parent deadline is reported as the parent's error, not our timeout.
	if timeout > 0 && ctx.Err() == nil && stderrors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w after %s: %s", ErrTimedOut, timeout, cmdStr)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%s: %w", cmdStr, ctxErr)
	}

	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		msg = strings.TrimSpace(stdout.String())
	}
	if msg != "" {
		return nil, fmt.Errorf("%w: %s", err, msg)
	}
	return nil, err
}

// exitCode extracts the process exit code for logging; -1 when the process
// never produced one.
func exitCode(cmd *exec.Cmd, err error) int {
	if err == nil {
		return 0
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}
