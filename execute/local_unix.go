//go:build unix

package execute

import (
	"os/exec"
	"syscall"
)

// setProcessGroup puts the subprocess in its own process group, so an
// interrupt delivered to PANDA's process group (e.g. from the terminal)
// does not reach it directly. On interrupt, main cancels the context
// passed to exec.CommandContext, which kills the subprocess itself; other
// processes in its group are not signalled.
func setProcessGroup(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
