package reduce

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ctu-tools/panda/cdb"
)

// ResourceDir runs "<compiler> -print-resource-dir" once and returns
// its trimmed stdout, per §4.7 "Invocation list".
func ResourceDir(ctx context.Context, compiler string) (string, error) {
	out, err := exec.CommandContext(ctx, compiler, "-print-resource-dir").Output()
	if err != nil {
		return "", fmt.Errorf("%s -print-resource-dir: %w", compiler, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// InvocationArgs builds one unit's replay argv for the invocation list:
// the original compiler and arguments, followed by -c,
// -working-directory=, and -resource-dir= (§4.7).
func InvocationArgs(u cdb.CompileCommand, resourceDir string) []string {
	argv := append([]string{u.Compiler}, u.Arguments...)
	argv = append(argv,
		"-c",
		"-working-directory="+u.Directory,
		"-resource-dir="+resourceDir,
	)
	return argv
}

// WriteInvocationList writes one bare JSON object per line, each
// mapping a unit's absolute file path to its replay argv. The file is
// a concatenation of single-line objects, not a JSON array (§4.7, §6).
func WriteInvocationList(path string, units []cdb.CompileCommand, resourceDir string) error {
	var b strings.Builder
	for _, u := range units {
		obj := map[string][]string{u.File: InvocationArgs(u, resourceDir)}
		line, err := json.Marshal(obj)
		if err != nil {
			return fmt.Errorf("marshaling invocation for %s: %w", u.File, err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
