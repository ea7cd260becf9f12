package preflight

import (
	"os"

	"github.com/ajxudir/pkgsync/pkg/cmdexec"
)

// getShellCommandCheck returns the shell and arguments that run
// 'command -v' for cmd, which also finds aliases, functions and built-ins.
//
// Parameters:
//   - cmd: The command name to look up
//
// Returns:
//   - shell: $SHELL, or "sh" when unset
//   - args: Login shell arguments running 'command -v <cmd>'
func getShellCommandCheck(cmd string) (shell string, args []string) {
	shell = os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}
	return shell, []string{"-l", "-c", "command -v " + cmdexec.ShellQuote(cmd)}
}
