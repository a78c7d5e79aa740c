// Package cdb parses a JSON compilation database into replay-ready
// CompileCommand records.
package cdb

// Language is the source language of a translation unit.
type Language string

const (
	LangC       Language = "c"
	LangCXX     Language = "c++"
	LangUnknown Language = "unknown"
)

// CompileCommand is one normalized translation unit, ready for replay
// under an arbitrary action.
type CompileCommand struct {
	// Directory is the absolute working directory used to launch the
	// original compiler.
	Directory string

	// File is the absolute path to the primary source file.
	File string

	// Language is the inferred (or -x overridden) source language.
	Language Language

	// Compiler is argv[0] of the original command, retained for
	// invocation-list emission.
	Compiler string

	// Arguments is the pruned, replay-ready argv tail (excludes argv[0]).
	Arguments []string
}

// Entry is one raw element of the compile_commands.json array, before
// normalization.
type Entry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Command   string   `json:"command"`
	Arguments []string `json:"arguments"`
}

var sourceExtLanguage = map[string]Language{
	".c": LangC,

	".C":   LangCXX,
	".cc":  LangCXX,
	".CC":  LangCXX,
	".cp":  LangCXX,
	".cpp": LangCXX,
	".CPP": LangCXX,
	".cxx": LangCXX,
	".CXX": LangCXX,
	".c++": LangCXX,
	".C++": LangCXX,
}
