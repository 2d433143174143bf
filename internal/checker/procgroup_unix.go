//go:build unix

package checker

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// killProcessGroup runs the launcher in its own process group and makes
// cancellation signal the whole group, so helpers it spawned exit with it.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}
