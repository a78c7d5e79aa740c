package execute

import (
	"time"

	rpb "github.com/bazelbuild/remote-apis/build/bazel/remote/execution/v2"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// workerName tags results produced by local execution, mirroring
// execute/localexec.WorkerName in the teacher.
const workerName = "local"

// Result is the outcome of running one Cmd.
//
// Grounded on execute/localexec/localexec.go's run(), which builds an
// *rpb.ActionResult directly rather than a bespoke struct; PANDA keeps
// that choice so the exit-code/capture/timestamp bookkeeping stays
// identical to the teacher's, even though nothing here ever talks to a
// remote execution service.
type Result struct {
	Action *rpb.ActionResult
}

func newResult(exitCode int, stdout, stderr []byte, start, end time.Time) *Result {
	return &Result{
		Action: &rpb.ActionResult{
			ExitCode:  int32(exitCode),
			StdoutRaw: stdout,
			StderrRaw: stderr,
			ExecutionMetadata: &rpb.ExecutedActionMetadata{
				Worker:                      workerName,
				ExecutionStartTimestamp:     timestamppb.New(start),
				ExecutionCompletedTimestamp: timestamppb.New(end),
			},
		},
	}
}

// ExitCode returns the subprocess exit code.
func (r *Result) ExitCode() int {
	if r == nil || r.Action == nil {
		return -1
	}
	return int(r.Action.ExitCode)
}

// Stdout returns the captured stdout bytes, if capture was requested.
func (r *Result) Stdout() []byte {
	if r == nil || r.Action == nil {
		return nil
	}
	return r.Action.StdoutRaw
}

// Stderr returns the captured stderr bytes, if capture was requested.
func (r *Result) Stderr() []byte {
	if r == nil || r.Action == nil {
		return nil
	}
	return r.Action.StderrRaw
}
