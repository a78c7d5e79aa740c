package options

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctu-tools/panda/action"
	"github.com/ctu-tools/panda/estimate"
)

// multiFlag accumulates repeated -flag occurrences into a slice,
// matching how --plugin PATH... is specified per §6.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// ParseArgs parses argv (excluding argv[0]) into an Options, following
// §6's CLI surface. It is registered the way
// subcmd/ninja/ninja.go's ninjaCmdRun.init() registers its flags: one
// local variable per flag, registered in a single place and folded into
// the Options record afterwards, with composite
// aliases expanded before the enabled-action set is read.
func ParseArgs(argv []string) (*Options, error) {
	fs := flag.NewFlagSet("panda", flag.ContinueOnError)

	cdbPath := fs.String("f", "./compile_commands.json", "path to the compilation database")
	fs.StringVar(cdbPath, "compilation-database", "./compile_commands.json", "path to the compilation database")
	jobs := fs.Int("j", 1, "number of worker goroutines")
	fs.IntVar(jobs, "jobs", 1, "number of worker goroutines")
	output := fs.String("o", "./panda-output", "output root directory")
	fs.StringVar(output, "output", "./panda-output", "output root directory")

	var fSyntax, fCompile, fPreprocess, fAST, fBitcode, fLLVMIR, fAsm, fDep bool
	var fExtdefSrc, fExtdefAST, fInvocationList, fInputFileList, fSourceFileList, fAnalyze bool
	fs.BoolVar(&fSyntax, "X", false, "check syntax")
	fs.BoolVar(&fCompile, "C", false, "compile")
	fs.BoolVar(&fPreprocess, "E", false, "preprocess")
	fs.BoolVar(&fAST, "A", false, "emit AST")
	fs.BoolVar(&fBitcode, "B", false, "emit bitcode")
	fs.BoolVar(&fLLVMIR, "R", false, "emit LLVM IR")
	fs.BoolVar(&fAsm, "S", false, "emit assembly")
	fs.BoolVar(&fDep, "D", false, "emit dependency")
	fs.BoolVar(&fExtdefSrc, "M", false, "run external-definition mapper (source form)")
	fs.BoolVar(&fExtdefAST, "P", false, "run external-definition mapper (AST form)")
	fs.BoolVar(&fInvocationList, "Y", false, "emit invocation list")
	fs.BoolVar(&fInputFileList, "L", false, "emit input-file list")
	fs.BoolVar(&fSourceFileList, "F", false, "emit source-file list")
	fs.BoolVar(&fAnalyze, "analyze", false, "run static analyzer")

	var ctuOnDemand, ctuLoadingAST bool
	fs.BoolVar(&ctuOnDemand, "ctu-on-demand-parsing", false, "alias for -M -Y -L")
	fs.BoolVar(&ctuLoadingAST, "ctu-loading-ast-files", false, "alias for -A -P -L")

	var plugins multiFlag
	fs.Var(&plugins, "plugin", "path to a plugin action descriptor (repeatable)")

	cc := fs.String("cc", "clang", "C compiler binary")
	cxx := fs.String("cxx", "clang++", "C++ compiler binary")
	efmer := fs.String("efmer", "clang-extdef-mapping", "external-definition mapper binary")

	efm := fs.String("efm", "externalDefMap.txt", "external-function-map output filename")
	ivcl := fs.String("ivcl", "invocations.yaml", "invocation-list output filename")
	ifl := fs.String("ifl", "inputs.ifl", "input-file-list output filename")
	sfl := fs.String("sfl", "source-files.txt", "source-file-list output filename")
	sflPrefix := fs.String("sfl-prefix", "", "filter source-file-list entries by this absolute path prefix")

	fileList := fs.String("file-list", "", "path to a file naming allowed units, one per line")

	strategy := fs.String("scheduler-strategy", string(LJF), "fifo, ljf, or sjf")
	metric := fs.String("measure-job-size-with", string(estimate.MetricSemicolon), "loc, semicolon, or comma")

	verbose := fs.Bool("verbose", false, "echo diagnostic/status information")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	// Composite aliases expand before the enabled-action set is read
	// (SPEC_FULL.md §12.3).
	if ctuOnDemand {
		fExtdefSrc, fInvocationList, fInputFileList = true, true, true
	}
	if ctuLoadingAST {
		fAST, fExtdefAST, fInputFileList = true, true, true
	}

	if fExtdefSrc && fExtdefAST {
		return nil, fmt.Errorf("-M and -P are mutually exclusive")
	}

	absCDB, err := filepath.Abs(*cdbPath)
	if err != nil {
		return nil, fmt.Errorf("resolving compilation database path: %w", err)
	}
	absOutput, err := filepath.Abs(*output)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}

	enabled := map[string]bool{}
	if fSyntax {
		enabled[action.KeySyntax] = true
	}
	if fCompile {
		enabled[action.KeyCompile] = true
	}
	if fPreprocess {
		enabled[action.KeyPreprocess] = true
	}
	if fAST {
		enabled[action.KeyAST] = true
	}
	if fBitcode {
		enabled[action.KeyBitcode] = true
	}
	if fLLVMIR {
		enabled[action.KeyLLVMIR] = true
	}
	if fAsm {
		enabled[action.KeyAsm] = true
	}
	if fDep {
		enabled[action.KeyDep] = true
	}
	if fExtdefSrc || fExtdefAST {
		enabled[action.KeyExtdefMap] = true
	}
	if fAnalyze {
		enabled[action.KeyAnalyze] = true
	}

	var allow map[string]bool
	positional := fs.Args()
	if len(positional) > 0 || *fileList != "" {
		allow = map[string]bool{}
		for _, p := range positional {
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil, fmt.Errorf("resolving positional file arg %q: %w", p, err)
			}
			allow[abs] = true
		}
		if *fileList != "" {
			paths, err := readFileList(*fileList)
			if err != nil {
				return nil, fmt.Errorf("reading --file-list: %w", err)
			}
			for _, p := range paths {
				allow[p] = true
			}
		}
	}

	opts := &Options{
		CDBPath:        absCDB,
		OutputRoot:     absOutput,
		Jobs:           *jobs,
		CC:             *cc,
		CXX:            *cxx,
		ExtdefMapper:   *efmer,
		EFMOutput:      *efm,
		InvocationList: *ivcl,
		InputFileList:  *ifl,
		SourceFileList: *sfl,
		SFLPrefix:      *sflPrefix,
		AllowList:      allow,
		Strategy:       Strategy(*strategy),
		Metric:         estimate.Metric(*metric),
		EnabledActions: enabled,
		ASTCTU:         fExtdefAST,
		PluginPaths:    []string(plugins),
		Verbose:        *verbose,
	}
	opts.EmitInvocationList = fInvocationList
	opts.EmitInputFileList = fInputFileList
	opts.EmitSourceFileList = fSourceFileList

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// readFileList reads one path per line, skipping blank lines and
// "#"-prefixed comments, per SPEC_FULL.md §12.2 (restored from
// original_source/panda.py's own allow-list reader).
func readFileList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		abs, err := filepath.Abs(line)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", line, err)
		}
		out = append(out, abs)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
