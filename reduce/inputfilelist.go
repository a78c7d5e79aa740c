package reduce

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ctu-tools/panda/cdb"
)

// WriteInputFileList writes one absolute source path per line, in the
// order given (§4.7 "Input-file list"; CDB order, by convention).
func WriteInputFileList(path string, units []cdb.CompileCommand) error {
	var b strings.Builder
	for _, u := range units {
		b.WriteString(u.File)
		b.WriteByte('\n')
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
