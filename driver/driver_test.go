package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctu-tools/panda/action"
	"github.com/ctu-tools/panda/estimate"
	"github.com/ctu-tools/panda/options"
	"github.com/ctu-tools/panda/pool"
)

func writeCDB(t *testing.T, dir string, files ...string) string {
	t.Helper()
	var entries []string
	for _, f := range files {
		src := filepath.Join(dir, f)
		if err := os.WriteFile(src, []byte("int x;\nint y;\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		entries = append(entries, `{"directory": "`+dir+`", "file": "`+src+`", "arguments": ["cc", "-c", "`+src+`"]}`)
	}
	cdbPath := filepath.Join(dir, "compile_commands.json")
	content := "[" + joinComma(entries) + "]"
	if err := os.WriteFile(cdbPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return cdbPath
}

func joinComma(s []string) string {
	out := ""
	for i, v := range s {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out
}

func baseOpts(t *testing.T, dir, cdbPath string) *options.Options {
	t.Helper()
	return &options.Options{
		CDBPath:        cdbPath,
		OutputRoot:     filepath.Join(dir, "out"),
		Jobs:           2,
		CC:             "/bin/echo",
		CXX:            "/bin/echo",
		ExtdefMapper:   "/bin/echo",
		EFMOutput:      "externalDefMap.txt",
		InvocationList: "invocations.yaml",
		InputFileList:  "inputs.ifl",
		SourceFileList: "source-files.txt",
		Strategy:       options.LJF,
		Metric:         estimate.MetricSemicolon,
		EnabledActions: map[string]bool{action.KeySyntax: true},
	}
}

func TestRunProcessesEveryUnit(t *testing.T) {
	dir := t.TempDir()
	cdbPath := writeCDB(t, dir, "a.c", "b.c")
	opts := baseOpts(t, dir, cdbPath)

	n, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 2 {
		t.Errorf("Run processed %d units, want 2", n)
	}
}

func TestRunEmitsInputFileList(t *testing.T) {
	dir := t.TempDir()
	cdbPath := writeCDB(t, dir, "a.c")
	opts := baseOpts(t, dir, cdbPath)
	opts.EmitInputFileList = true

	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatalf("Run: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(opts.OutputRoot, opts.InputFileList))
	if err != nil {
		t.Fatalf("reading input-file list: %v", err)
	}
	if string(content) != filepath.Join(dir, "a.c")+"\n" {
		t.Errorf("content = %q", content)
	}
}

func TestRunSkipsUnitsOutsideAllowList(t *testing.T) {
	dir := t.TempDir()
	cdbPath := writeCDB(t, dir, "a.c", "b.c")
	opts := baseOpts(t, dir, cdbPath)
	opts.AllowList = map[string]bool{filepath.Join(dir, "a.c"): true}

	n, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 1 {
		t.Errorf("Run processed %d units, want 1", n)
	}
}

// fakeExtdefMapper writes a script standing in for clang-extdef-mapping:
// it ignores its argv and always emits one legacy-format "<usr> <path>"
// line, so a successful run through action.Builtins' catalog entry
// (§4.8 step 2) can be told apart from the exec("") failure that
// ToolBinary's zero value would produce.
func fakeExtdefMapper(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "fake-extdef-mapper.sh")
	script := "#!/bin/sh\necho 'usr@fake /def/site.c'\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunProducesExtdefMapThroughBuiltinsCatalog(t *testing.T) {
	dir := t.TempDir()
	cdbPath := writeCDB(t, dir, "a.c")
	opts := baseOpts(t, dir, cdbPath)
	opts.EnabledActions[action.KeyExtdefMap] = true
	opts.ExtdefMapper = fakeExtdefMapper(t, dir)

	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatalf("Run: %v", err)
	}

	unitExtdef := pool.OutputPath(opts.OutputRoot, filepath.Join(dir, "a.c"), ".extdef")
	unitContent, err := os.ReadFile(unitExtdef)
	if err != nil {
		t.Fatalf("reading per-unit extdef file at %s: %v", unitExtdef, err)
	}
	if len(unitContent) == 0 {
		t.Errorf("per-unit .extdef file should be non-empty: extdef-map action must have run %s via the configured ExtdefMapper binary, not exec(\"\")", opts.ExtdefMapper)
	}

	merged, err := os.ReadFile(filepath.Join(opts.OutputRoot, opts.EFMOutput))
	if err != nil {
		t.Fatalf("reading merged external-function map: %v", err)
	}
	if len(merged) == 0 {
		t.Errorf("merged external-function map should be non-empty")
	}
}

func TestRunFailsOnMissingCDB(t *testing.T) {
	dir := t.TempDir()
	opts := baseOpts(t, dir, filepath.Join(dir, "does-not-exist.json"))
	if _, err := Run(context.Background(), opts); err == nil {
		t.Errorf("Run with missing CDB should fail")
	}
}
