// Package pool implements the fixed-size worker pool that drains the
// worklist, and the two per-unit task shapes it knows how to execute:
// CompilerAction (a replayed compilation) and ToolAction (a standalone
// tool driven by the unit's argv), per §4.6.
package pool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/golang/glog"

	"github.com/ctu-tools/panda/action"
	"github.com/ctu-tools/panda/cdb"
	"github.com/ctu-tools/panda/execute"
	"github.com/ctu-tools/panda/plugin"
)

// CompilerConfig carries the process-wide, read-only configuration a
// task needs to build a replay command (§5, "Process-wide state").
type CompilerConfig struct {
	CC, CXX    string
	OutputRoot string
}

// OutputPath returns the on-disk path for a per-unit action's output,
// per §3's "Output layout": the output root string-concatenated with
// the absolute source path, plus the action's extension.
func OutputPath(outputRoot, file, ext string) string {
	return outputRoot + file + ext
}

// CompilerAction replays cc's compilation under act, launching the
// configured compiler with cc.Arguments plus act.ExtraArgs, and (if
// act.OutputExt is set) an output flag pointing at the mirrored output
// path. Non-zero exit is logged, never returned as a fatal error (§7).
func CompilerAction(ctx context.Context, cfg CompilerConfig, cc cdb.CompileCommand, act *action.Descriptor) {
	compiler := act.Compiler(cc.Language, cfg.CC, cfg.CXX)
	args := append([]string{compiler}, cc.Arguments...)
	args = append(args, plugin.SubstituteOutputRoot(act.ExtraArgs, cfg.OutputRoot)...)

	var outPath string
	if act.OutputExt.HasOutput() {
		outPath = OutputPath(cfg.OutputRoot, cc.File, act.OutputExt.Ext(cc.Language))
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			log.Warningf("%s %s: creating output dir: %v", act.Prompt, cc.File, err)
			return
		}
		outputOpt := act.OutputOpt
		if outputOpt == "" {
			outputOpt = "-o"
		}
		args = append(args, outputOpt, outPath)
	}

	run := execute.NewCmd(fmt.Sprintf("%s %s", act.Prompt, cc.File), args, cc.Directory)
	_, err := execute.Run(ctx, run)
	if err != nil {
		log.Warningf("%s %s: %v", act.Prompt, cc.File, err)
	}
}

// ToolAction runs act's standalone tool against cc, appending the
// unit's pruned argv after a literal "--" separator (§4.6). When
// act.CaptureStream is set, the requested stream is captured and
// written to the mirrored output path.
func ToolAction(ctx context.Context, cfg CompilerConfig, cc cdb.CompileCommand, act *action.Descriptor) {
	tool := act.ToolBinary
	args := []string{tool, cc.File}
	args = append(args, plugin.SubstituteOutputRoot(act.ExtraArgs, cfg.OutputRoot)...)
	args = append(args, "--", "-w")
	args = append(args, cc.Arguments...)

	run := execute.NewCmd(fmt.Sprintf("%s %s", act.Prompt, cc.File), args, cc.Directory)
	res, err := execute.Run(ctx, run)
	if err != nil {
		log.Warningf("%s %s: %v", act.Prompt, cc.File, err)
	}
	if !act.OutputExt.HasOutput() {
		return
	}

	var captured []byte
	switch act.CaptureStream {
	case action.Stdout:
		captured = res.Stdout()
	case action.Stderr:
		captured = res.Stderr()
	}

	outPath := OutputPath(cfg.OutputRoot, cc.File, act.OutputExt.Ext(cc.Language))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Warningf("%s %s: creating output dir: %v", act.Prompt, cc.File, err)
		return
	}
	if err := os.WriteFile(outPath, captured, 0o644); err != nil {
		log.Warningf("%s %s: writing captured output: %v", act.Prompt, cc.File, err)
	}
}
