package pygmenu

import (
	"log/slog"
	"os/exec"
	"strings"
	"syscall"
)

// NormalizeCommand appends the shell background marker to command unless it
// already ends with one.
func NormalizeCommand(command string) string {
	if strings.HasSuffix(command, "&") {
		return command
	}
	return command + " &"
}

// ShellDispatcher runs commands through a shell and does not wait for them.
type ShellDispatcher struct {
	Shell  string
	logger *slog.Logger
}

// NewShellDispatcher returns a dispatcher using /bin/sh.
func NewShellDispatcher(logger *slog.Logger) *ShellDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShellDispatcher{Shell: "/bin/sh", logger: logger}
}

// Dispatch starts command in its own process group. Only a failure to start
// the shell is reported; the command's exit status is never looked at.
func (d *ShellDispatcher) Dispatch(command string) error {
	child := exec.Command(d.Shell, "-c", command)
	child.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	child.Stdin = nil
	child.Stdout = nil
	child.Stderr = nil

	if err := child.Start(); err != nil {
		return err
	}
	d.logger.Debug("command started", "pid", child.Process.Pid, "command", command)
	return child.Process.Release()
}
