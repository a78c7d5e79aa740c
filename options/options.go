// Package options parses and validates PANDA's command-line surface
// into an immutable Options record, per §6 of SPEC_FULL.md. Argument
// parsing itself is a boundary concern (PURPOSE & SCOPE §1); this
// package exists only to turn argv into the structured record the
// scheduler consumes.
package options

import (
	"github.com/ctu-tools/panda/estimate"
	"github.com/ctu-tools/panda/worklist"
)

// Strategy names the scheduler work-ordering strategy (§3).
type Strategy string

const (
	FIFO Strategy = "fifo"
	LJF  Strategy = "ljf"
	SJF  Strategy = "sjf"
)

// Options is the immutable configuration record the scheduler consumes.
// Everything below this layer treats it as read-only (§5,
// "Process-wide state").
type Options struct {
	CDBPath    string
	OutputRoot string
	Jobs       int

	CC, CXX      string
	ExtdefMapper string

	EFMOutput      string // externalDefMap.txt
	InvocationList string // invocations.yaml
	InputFileList  string // inputs.ifl
	SourceFileList string // source-files.txt
	SFLPrefix      string

	// AllowList, if non-nil, restricts execution to these absolute
	// source paths (§3, §6 "Unit filters").
	AllowList map[string]bool

	Strategy Strategy
	Metric   estimate.Metric

	// EnabledActions holds the built-in per-unit action keys switched on
	// by the CLI (§4.2), e.g. "syntax", "compile", "extdef-map".
	EnabledActions map[string]bool

	// Whole-CDB reducers requested via -Y/-L/-F (§4.7, §6).
	EmitInvocationList bool
	EmitInputFileList  bool
	EmitSourceFileList bool

	// ASTCTU is true when the AST-based CTU flow (-P) is requested,
	// triggering the merged extdef map's path rewrite (§4.7, §8.7).
	ASTCTU bool

	PluginPaths []string

	Verbose bool
}

// WorklistStrategy maps the CLI strategy name to worklist.Strategy; FIFO
// is handled by the caller constructing a worklist.FIFO instead.
func (o *Options) WorklistStrategy() worklist.Strategy {
	if o.Strategy == SJF {
		return worklist.ShortestFirst
	}
	return worklist.LongestFirst
}

// ActionEnabled reports whether the built-in action key is switched on.
func (o *Options) ActionEnabled(key string) bool {
	return o.EnabledActions[key]
}

// UnitAllowed reports whether the absolute source path may run, per any
// active allow-list (§6, §7 "unit not in allow-list").
func (o *Options) UnitAllowed(absFile string) bool {
	if o.AllowList == nil {
		return true
	}
	return o.AllowList[absFile]
}
