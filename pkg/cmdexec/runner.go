package cmdexec

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/ajxudir/pkgsync/pkg/packages"
)

// DefaultCommand installs a package with the Atom package manager.
const DefaultCommand = "apm install {{spec}}"

// Runner installs packages by running a command template per package.
//
// Runner is safe for concurrent use; it holds no mutable state.
//
// Fields:
//   - Command: Template with {{package}}, {{version}} and {{spec}} placeholders
//   - Env: Extra environment variables for the command
//   - Dir: Working directory, "" for the current one
//   - Timeout: Per-command limit, 0 for none
type Runner struct {
	Command string
	Env     map[string]string
	Dir     string
	Timeout time.Duration
}

// Replacements returns the placeholder values for p.
//
// Parameters:
//   - p: The package being installed
//
// Returns:
//   - map[string]string: package, version and spec (name@version) values
func Replacements(p packages.Package) map[string]string {
	return map[string]string{
		"package": p.Name,
		"version": p.Version.String(),
		"spec":    p.String(),
	}
}

// Install runs the install command for p and returns its stdout.
//
// Parameters:
//   - ctx: Cancels the command
//   - p: The package to install
//
// Returns:
//   - string: Command stdout
//   - error: Non-nil when the command fails, times out, cannot start, or
//     writes output that is not valid UTF-8
func (r *Runner) Install(ctx context.Context, p packages.Package) (string, error) {
	command := r.Command
	if command == "" {
		command = DefaultCommand
	}

	out, err := Execute(ctx, command, r.Env, r.Dir, r.Timeout, Replacements(p))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("output of %q is not valid UTF-8", p.String())
	}
	return string(out), nil
}
