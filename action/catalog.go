package action

import "path/filepath"

// Keys for the built-in actions, also used as CLI switch identifiers
// (driven by the options package).
const (
	KeySyntax     = "syntax"
	KeyCompile    = "compile"
	KeyPreprocess = "preprocess"
	KeyAST        = "ast"
	KeyBitcode    = "bitcode"
	KeyLLVMIR     = "llvm-ir"
	KeyAsm        = "asm"
	KeyDep        = "dep"
	KeyAnalyze    = "analyze"
	KeyExtdefMap  = "extdef-map"
)

// Builtins constructs the fixed action catalog from SPEC_FULL.md §4.2.
// The analyzer action is parameterized by outputRoot and verbose, and
// the extdef-map action by extdefMapper (the configured --efmer
// binary), per the "shared mutable catalog" design note: it is rebuilt
// once, here, after options are parsed, rather than mutated later by
// workers.
func Builtins(outputRoot string, verbose bool, extdefMapper string) map[string]*Descriptor {
	analyzeArgs := []string{
		"--analyze",
		"-Xanalyzer", "-analyzer-output=html",
		"-Xanalyzer", "-analyzer-disable-checker=deadcode",
		"-o", filepath.Join(outputRoot, "csa-reports"),
	}
	if verbose {
		analyzeArgs = append(analyzeArgs, "-Xanalyzer", "-analyzer-display-progress")
	}

	catalog := map[string]*Descriptor{
		KeySyntax: {
			Key:       KeySyntax,
			Kind:      Integrated,
			Prompt:    "check syntax",
			ExtraArgs: []string{"-fsyntax-only", "-Wall"},
		},
		KeyCompile: {
			Key:       KeyCompile,
			Kind:      Integrated,
			Prompt:    "generate object",
			ExtraArgs: []string{"-c", "-w"},
			OutputOpt: "-o",
			OutputExt: OutputExt{C: ".o", CXX: ".o"},
		},
		KeyPreprocess: {
			Key:       KeyPreprocess,
			Kind:      Integrated,
			Prompt:    "preprocess",
			ExtraArgs: []string{"-E"},
			OutputOpt: "-o",
			OutputExt: OutputExt{C: ".i", CXX: ".ii"},
		},
		KeyAST: {
			Key:       KeyAST,
			Kind:      Integrated,
			Prompt:    "emit AST",
			ExtraArgs: []string{"-emit-ast", "-w"},
			OutputOpt: "-o",
			OutputExt: OutputExt{C: ".ast", CXX: ".ast"},
		},
		KeyBitcode: {
			Key:       KeyBitcode,
			Kind:      Integrated,
			Prompt:    "emit bitcode",
			ExtraArgs: []string{"-c", "-emit-llvm", "-w"},
			OutputOpt: "-o",
			OutputExt: OutputExt{C: ".bc", CXX: ".bc"},
		},
		KeyLLVMIR: {
			Key:       KeyLLVMIR,
			Kind:      Integrated,
			Prompt:    "emit LLVM IR",
			ExtraArgs: []string{"-c", "-emit-llvm", "-S", "-w"},
			OutputOpt: "-o",
			OutputExt: OutputExt{C: ".ll", CXX: ".ll"},
		},
		KeyAsm: {
			Key:       KeyAsm,
			Kind:      Integrated,
			Prompt:    "emit assembly",
			ExtraArgs: []string{"-S", "-w"},
			OutputOpt: "-o",
			OutputExt: OutputExt{C: ".s", CXX: ".s"},
		},
		KeyDep: {
			Key:       KeyDep,
			Kind:      Integrated,
			Prompt:    "emit dependency",
			ExtraArgs: []string{"-fsyntax-only", "-w", "-M"},
			OutputOpt: "-MF",
			OutputExt: OutputExt{C: ".d", CXX: ".d"},
		},
		KeyAnalyze: {
			Key:       KeyAnalyze,
			Kind:      Integrated,
			Prompt:    "run static analyzer",
			ExtraArgs: analyzeArgs,
		},
		KeyExtdefMap: {
			Key:           KeyExtdefMap,
			Kind:          Singleton,
			Prompt:        "run external definition mapper",
			ExtraArgs:     nil,
			ToolBinary:    extdefMapper,
			OutputExt:     OutputExt{C: ".extdef", CXX: ".extdef"},
			CaptureStream: Stdout,
		},
	}
	return catalog
}
