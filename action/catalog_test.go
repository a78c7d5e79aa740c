package action

import (
	"testing"

	"github.com/ctu-tools/panda/cdb"
)

func TestBuiltinsExtensions(t *testing.T) {
	catalog := Builtins("/out", false, "clang-extdef-mapping")

	ast := catalog[KeyAST]
	if got := ast.OutputExt.Ext(cdb.LangC); got != ".ast" {
		t.Errorf("ast ext(c) = %q, want .ast", got)
	}
	pp := catalog[KeyPreprocess]
	if got := pp.OutputExt.Ext(cdb.LangC); got != ".i" {
		t.Errorf("preprocess ext(c) = %q, want .i", got)
	}
	if got := pp.OutputExt.Ext(cdb.LangCXX); got != ".ii" {
		t.Errorf("preprocess ext(c++) = %q, want .ii", got)
	}
	dep := catalog[KeyDep]
	if dep.OutputOpt != "-MF" {
		t.Errorf("dep outputOpt = %q, want -MF", dep.OutputOpt)
	}
	syntax := catalog[KeySyntax]
	if syntax.OutputExt.HasOutput() {
		t.Errorf("syntax action should not produce an output file")
	}
}

func TestBuiltinsAnalyzeVerbose(t *testing.T) {
	quiet := Builtins("/out", false, "clang-extdef-mapping")[KeyAnalyze]
	verbose := Builtins("/out", true, "clang-extdef-mapping")[KeyAnalyze]
	if len(verbose.ExtraArgs) <= len(quiet.ExtraArgs) {
		t.Errorf("verbose analyze args should be longer than quiet: %v vs %v", verbose.ExtraArgs, quiet.ExtraArgs)
	}
}

func TestExtdefMapSingleton(t *testing.T) {
	em := Builtins("/out", false, "clang-extdef-mapping")[KeyExtdefMap]
	if em.Kind != Singleton {
		t.Errorf("extdef-map kind = %v, want Singleton", em.Kind)
	}
	if em.CaptureStream != Stdout {
		t.Errorf("extdef-map capture = %v, want Stdout", em.CaptureStream)
	}
	if em.ToolBinary != "clang-extdef-mapping" {
		t.Errorf("extdef-map ToolBinary = %q, want the configured --efmer binary", em.ToolBinary)
	}
}

func TestToolOverride(t *testing.T) {
	d := &Descriptor{Tool: &ToolOverride{C: "my-cc", CXX: "my-cxx"}}
	if got := d.Compiler(cdb.LangC, "cc", "c++"); got != "my-cc" {
		t.Errorf("Compiler(c) = %q, want my-cc", got)
	}
	if got := d.Compiler(cdb.LangCXX, "cc", "c++"); got != "my-cxx" {
		t.Errorf("Compiler(c++) = %q, want my-cxx", got)
	}
	d2 := &Descriptor{}
	if got := d2.Compiler(cdb.LangC, "cc", "c++"); got != "cc" {
		t.Errorf("Compiler(c) no override = %q, want cc", got)
	}
}
