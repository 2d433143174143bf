//go:build !unix

package checker

import "os/exec"

// killProcessGroup keeps the default cancellation, which kills the launcher only.
func killProcessGroup(cmd *exec.Cmd) {}
