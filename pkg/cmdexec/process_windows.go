//go:build windows

package cmdexec

import (
	"os/exec"
)

// setProcGroup is a no-op on Windows.
func setProcGroup(cmd *exec.Cmd) {}

// killProcGroup kills the process itself; Windows has no process groups in
// the POSIX sense.
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
