package execute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	log "github.com/golang/glog"
)

// Run launches cmd locally, waits for it to exit, and returns a Result.
// A non-zero exit status is reported via *ExitError but still yields a
// Result: the caller decides whether to treat it as fatal (per §7, the
// pool never does).
//
// Grounded on execute/localexec/localexec.go's run(): exec.CommandContext,
// buffered stdout/stderr, and an rpb.ActionResult-shaped return value.
func Run(ctx context.Context, cmd *Cmd) (*Result, error) {
	if len(cmd.Args) == 0 {
		return nil, fmt.Errorf("execute: %s: no arguments", cmd.ID)
	}
	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env
	setProcessGroup(c)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	end := time.Now()

	exitCode := exitCodeOf(err)
	res := newResult(exitCode, stdout.Bytes(), stderr.Bytes(), start, end)

	log.V(1).Infof("%s exit=%d stdout=%d stderr=%d", cmd.ID, exitCode, stdout.Len(), stderr.Len())

	if exitCode != 0 {
		log.Warningf("%s: cmd=%q dir=%q exit=%d: %v", cmd.ID, cmd.Args, cmd.Dir, exitCode, err)
		return res, &ExitError{ExitCode: exitCode}
	}
	return res, nil
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var eerr *exec.ExitError
	if !errors.As(err, &eerr) {
		return 1
	}
	if w, ok := eerr.ProcessState.Sys().(syscall.WaitStatus); ok {
		return w.ExitStatus()
	}
	return 1
}
