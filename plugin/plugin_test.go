package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ctu-tools/panda/action"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadSingleton(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "query.json", `{
		"type": "Singleton",
		"action": {
			"prompt": "run clang-query",
			"tool": "clang-query",
			"args": ["-c", "match gotoStmt()"],
			"extension": ".q",
			"source": "stdout"
		}
	}`)
	descs, err := Load([]string{p})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(descs) != 1 {
		t.Fatalf("got %d descriptors, want 1", len(descs))
	}
	d := descs[0]
	if d.Kind != action.Singleton || d.ToolBinary != "clang-query" || d.CaptureStream != action.Stdout {
		t.Errorf("descriptor = %+v", d)
	}
	if d.OutputExt.Ext("c") != ".q" {
		t.Errorf("ext = %q, want .q", d.OutputExt.Ext("c"))
	}
}

func TestLoadIntegratedWithToolObject(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "my.json", `{
		"type": "Integrated",
		"action": {
			"prompt": "custom",
			"args": ["-custom-flag"],
			"extension": [".ia", ".iacxx"],
			"tool": {"c": "my-cc", "c++": "my-cxx"}
		}
	}`)
	descs, err := Load([]string{p})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := descs[0]
	if d.Tool == nil || d.Tool.C != "my-cc" || d.Tool.CXX != "my-cxx" {
		t.Errorf("tool override = %+v", d.Tool)
	}
	if d.OutputExt.C != ".ia" || d.OutputExt.CXX != ".iacxx" {
		t.Errorf("output ext = %+v", d.OutputExt)
	}
	if d.OutputOpt != "-o" {
		t.Errorf("default outopt = %q, want -o", d.OutputOpt)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	for _, tc := range []struct {
		name, content string
	}{
		{"missing_prompt.json", `{"type":"Integrated","action":{"args":["-x"]}}`},
		{"bad_type.json", `{"type":"Weird","action":{}}`},
		{"singleton_no_source.json", `{"type":"Singleton","action":{"prompt":"p","tool":"t","args":[],"extension":".x"}}`},
		{"not_json.json", `not json`},
	} {
		p := writeFile(t, dir, tc.name, tc.content)
		if _, err := Load([]string{p}); err == nil {
			t.Errorf("Load(%s) = nil error, want an error", tc.name)
		}
	}
}

func TestLoadDeduplicatesPaths(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "dup.json", `{
		"type": "Singleton",
		"action": {"prompt": "p", "tool": "t", "args": []}
	}`)
	descs, err := Load([]string{p, p})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(descs) != 1 {
		t.Errorf("got %d descriptors, want 1 after dedup", len(descs))
	}
}

func TestSubstituteOutputRoot(t *testing.T) {
	args := []string{"-o", "/path/to/output/reports", "-w"}
	got := SubstituteOutputRoot(args, "/out")
	want := []string{"-o", "/out/reports", "-w"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SubstituteOutputRoot = %v, want %v", got, want)
			break
		}
	}
}
