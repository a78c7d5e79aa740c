package reduce

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctu-tools/panda/cdb"
)

func TestInvocationArgs(t *testing.T) {
	u := cdb.CompileCommand{
		Compiler:  "clang",
		Arguments: []string{"-O2", "a.c"},
		Directory: "/p",
	}
	got := InvocationArgs(u, "/usr/lib/clang/18")
	want := []string{"clang", "-O2", "a.c", "-c", "-working-directory=/p", "-resource-dir=/usr/lib/clang/18"}
	if len(got) != len(want) {
		t.Fatalf("InvocationArgs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWriteInvocationListOneObjectPerLine(t *testing.T) {
	units := []cdb.CompileCommand{
		{File: "/p/a.c", Compiler: "clang", Arguments: []string{"-O2"}, Directory: "/p"},
		{File: "/p/b.c", Compiler: "clang", Arguments: nil, Directory: "/p"},
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "invocations.yaml")
	if err := WriteInvocationList(out, units, "/res"); err != nil {
		t.Fatalf("WriteInvocationList: %v", err)
	}
	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), content)
	}
	for i, line := range lines {
		var obj map[string][]string
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			t.Fatalf("line %d not valid JSON object: %v", i, err)
		}
		if len(obj) != 1 {
			t.Errorf("line %d has %d keys, want 1", i, len(obj))
		}
	}
	if !strings.Contains(lines[0], "/p/a.c") {
		t.Errorf("line 0 should reference /p/a.c: %s", lines[0])
	}
}
