// Package checker lints extracted shell scripts with shellcheck running in a container.
package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/harrison/doccheck/internal/models"
)

// Defaults for the container invocation
const (
	DefaultLauncher  = "podman"
	DefaultImage     = "koalaman/shellcheck:stable"
	DefaultMountPath = "/shell-script.sh"
)

// waitDelay bounds how long a cancelled launcher may keep its stderr pipe
// open before it is killed and the pipe closed.
const waitDelay = 2 * time.Second

// Checker lints one script block.
// A script that fails linting is a CheckResult with Passed false, not an error.
// Errors are reserved for failures that prevent checking at all.
type Checker interface {
	Check(ctx context.Context, block models.ScriptBlock) (models.CheckResult, error)
}

// Logger receives diagnostic messages from the checker.
// Can be nil for silent operation.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// ContainerChecker runs shellcheck through a container launcher.
// Each check writes the script to a fresh temporary file, mounts it into
// the container, and removes it afterwards whatever the outcome.
type ContainerChecker struct {
	// Launcher is the container launcher binary.
	// Defaults to "podman" (found in PATH).
	Launcher string

	// Image is the container image whose entrypoint is shellcheck.
	Image string

	// MountPath is where the script appears inside the container.
	MountPath string

	// Timeout bounds a single invocation. Zero means no timeout.
	Timeout time.Duration

	// TempDir holds the temporary script files. Empty uses os.TempDir.
	TempDir string

	// Logger receives debug and warning messages. Can be nil.
	Logger Logger
}

// NewContainerChecker creates a checker for the given image with default launcher and mount path.
// An empty image selects DefaultImage.
func NewContainerChecker(image string) *ContainerChecker {
	if image == "" {
		image = DefaultImage
	}
	return &ContainerChecker{
		Launcher:  DefaultLauncher,
		Image:     image,
		MountPath: DefaultMountPath,
	}
}

// Args returns the launcher arguments that lint the script at hostPath:
//
//	run --rm -v=<hostPath>:<mount> <image> <mount>
func (c *ContainerChecker) Args(hostPath string) []string {
	mount := c.mountPath()
	return []string{
		"run",
		"--rm",
		"-v=" + hostPath + ":" + mount,
		c.Image,
		mount,
	}
}

// Check implements Checker.
func (c *ContainerChecker) Check(ctx context.Context, block models.ScriptBlock) (models.CheckResult, error) {
	result := models.CheckResult{Block: block}

	scriptPath, err := c.writeScript(block.Script)
	if err != nil {
		return result, err
	}
	defer c.removeScript(scriptPath)

	ctxToUse := ctx
	var cancel context.CancelFunc
	if c.Timeout > 0 {
		ctxToUse, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	launcher := c.Launcher
	if launcher == "" {
		launcher = DefaultLauncher
	}

	cmd := exec.CommandContext(ctxToUse, launcher, c.Args(scriptPath)...)
	var stderr bytes.Buffer
	cmd.Stdout = nil // discarded
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	c.logDebug(fmt.Sprintf("running %s %v for %s", launcher, cmd.Args[1:], block.Location()))

	runErr := cmd.Run()
	result.Diagnostics = stderr.String()

	if runErr == nil {
		result.Passed = true
		return result, nil
	}

	// Interrupted by the caller: stop the run rather than blame the script
	if ctx.Err() != nil {
		return result, fmt.Errorf("check of %s interrupted: %w", block.Location(), ctx.Err())
	}

	if errors.Is(ctxToUse.Err(), context.DeadlineExceeded) {
		result.Passed = false
		result.Diagnostics = fmt.Sprintf("shellcheck timed out after %s\n%s", c.Timeout, result.Diagnostics)
		return result, nil
	}

	// Launcher succeeded but something it spawned held stderr open
	if errors.Is(runErr, exec.ErrWaitDelay) {
		c.logWarn(fmt.Sprintf("%s left stderr open after exiting for %s", launcher, block.Location()))
		result.Passed = true
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.Passed = false
		return result, nil
	}

	return result, fmt.Errorf("failed to run %s: %w", launcher, runErr)
}

// writeScript writes script byte-for-byte to a new temporary file and returns its path
func (c *ContainerChecker) writeScript(script string) (string, error) {
	f, err := os.CreateTemp(c.TempDir, "doccheck-*.sh")
	if err != nil {
		return "", fmt.Errorf("failed to create temp script: %w", err)
	}
	path := f.Name()

	if _, err := f.WriteString(script); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write temp script: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close temp script: %w", err)
	}
	return path, nil
}

func (c *ContainerChecker) removeScript(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.logWarn(fmt.Sprintf("failed to remove temp script %s: %v", path, err))
	}
}

func (c *ContainerChecker) mountPath() string {
	if c.MountPath == "" {
		return DefaultMountPath
	}
	return c.MountPath
}

func (c *ContainerChecker) logDebug(message string) {
	if c.Logger != nil {
		c.Logger.LogDebug(message)
	}
}

func (c *ContainerChecker) logWarn(message string) {
	if c.Logger != nil {
		c.Logger.LogWarn(message)
	}
}
