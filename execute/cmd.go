// Package execute runs the per-unit subprocess invocations the
// scheduler launches: replayed compiler commands and singleton tool
// commands. It is the launch layer; the replay argv itself is built by
// package pool from the normalized CompileCommand.
package execute

import (
	"fmt"

	"github.com/google/uuid"
)

// Cmd describes one subprocess to launch.
//
// Grounded on execute.Cmd in the teacher corpus, trimmed to the fields
// PANDA's local-only, non-cacheable design needs: no hash-fs, no
// remote-input substitution, no RSP files (none of the built-in or
// plugin actions in SPEC_FULL.md ever produce a response-file-sized
// command line).
type Cmd struct {
	// ID uniquely identifies this invocation in logs, following
	// execute.Cmd.ID's own doc comment in the teacher ("using a UUID is
	// fine").
	ID string

	// Desc is a short human-readable banner, e.g. "check syntax a.c".
	Desc string

	// Args is the full argv, Args[0] is the binary to execute.
	Args []string

	// Dir is the working directory to launch in.
	Dir string

	// Env is the subprocess environment; nil inherits the parent's.
	Env []string
}

// NewCmd builds a Cmd with a fresh ID.
func NewCmd(desc string, args []string, dir string) *Cmd {
	return &Cmd{
		ID:   uuid.NewString(),
		Desc: desc,
		Args: args,
		Dir:  dir,
	}
}

// String returns the Cmd's ID, matching execute.Cmd.String in the
// teacher.
func (c *Cmd) String() string {
	return c.ID
}

// ExitError reports a non-zero subprocess exit. The pool logs it and
// continues (§7): it never aborts a sibling task.
type ExitError struct {
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit=%d", e.ExitCode)
}
