// Package action holds the catalog of per-unit compiler-based-tool
// actions: the built-in table from SPEC_FULL.md §4.2/§11, plus the
// shape shared with user-supplied plugin descriptors (package plugin).
package action

import "github.com/ctu-tools/panda/cdb"

// Kind distinguishes the two ActionDescriptor shapes from SPEC_FULL.md §3.
type Kind int

const (
	// Integrated actions replay the compilation itself with extra flags.
	Integrated Kind = iota
	// Singleton actions run a standalone tool, with the unit's argv
	// appended after a literal "--" separator.
	Singleton
)

// Stream is a captured subprocess output stream.
type Stream int

const (
	NoStream Stream = iota
	Stdout
	Stderr
)

// ToolOverride pins a specific binary per language, overriding the
// configured default compiler/tool.
type ToolOverride struct {
	C   string
	CXX string
}

// Binary returns the override for lang, or "" if none is set.
func (t *ToolOverride) Binary(lang cdb.Language) string {
	if t == nil {
		return ""
	}
	if lang == cdb.LangCXX {
		return t.CXX
	}
	return t.C
}

// OutputExt names the output extension an action produces, which may
// differ between C and C++ (e.g. preprocess: .i vs .ii).
type OutputExt struct {
	C   string
	CXX string
}

// Ext returns the extension for lang, or "" if the zero value.
func (e OutputExt) Ext(lang cdb.Language) string {
	if lang == cdb.LangCXX && e.CXX != "" {
		return e.CXX
	}
	return e.C
}

// HasOutput reports whether this descriptor produces an output file.
func (e OutputExt) HasOutput() bool {
	return e.C != "" || e.CXX != ""
}

// Descriptor is one action: a named per-unit task the scheduler can
// enqueue against every normalized CompileCommand.
type Descriptor struct {
	Key    string
	Kind   Kind
	Prompt string

	// ExtraArgs is appended to the replay command (Integrated) or placed
	// after the source file, before "--" (Singleton).
	ExtraArgs []string

	// Integrated-only fields.
	OutputOpt string // flag preceding the output path; default "-o"
	OutputExt OutputExt
	Tool      *ToolOverride

	// Singleton-only fields.
	ToolBinary    string
	CaptureStream Stream
}

// Compiler resolves the binary to launch for this action against lang,
// given the configured defaults. Integrated actions only.
func (d *Descriptor) Compiler(lang cdb.Language, defaultCC, defaultCXX string) string {
	if bin := d.Tool.Binary(lang); bin != "" {
		return bin
	}
	if lang == cdb.LangCXX {
		return defaultCXX
	}
	return defaultCC
}
