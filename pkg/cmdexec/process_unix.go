//go:build unix

package cmdexec

import (
	"os/exec"
	"syscall"
)

// setProcGroup starts cmd as the leader of a new process group.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcGroup sends SIGKILL to cmd's whole process group, so package
// managers that fork helpers do not outlive a timeout.
//
// Parameters:
//   - cmd: A started command configured with setProcGroup
//
// Returns:
//   - error: The kill error; nil when cmd was never started
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
