package reduce

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	log "github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/ctu-tools/panda/cdb"
	"github.com/ctu-tools/panda/pool"
)

// ParseDepTokens parses the whitespace-delimited contents of a .d
// (dependency) file, dropping empty tokens, line-continuation
// backslashes, and the rule-target token (the one ending in ":"),
// per §4.7 "Source-file list".
func ParseDepTokens(contents string) []string {
	var out []string
	for _, tok := range strings.Fields(contents) {
		tok = strings.TrimSuffix(tok, "\\")
		if tok == "" || tok == "\\" || strings.HasSuffix(tok, ":") {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// ResolveExistingSources resolves each token against directory,
// absolutizes it, and keeps only tokens naming an existing regular
// file.
func ResolveExistingSources(directory string, tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		abs := tok
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(directory, tok)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		out = append(out, abs)
	}
	return out
}

// depEntry pairs a unit's dependency-file path with the directory its
// tokens must be resolved against.
type depEntry struct {
	depPath, directory string
}

// BuildSourceFileList reads each unit's .d output (mirrored under
// outputRoot, per §3's output-layout rule), unions the resolved source
// paths across all units, filters by prefix if set, and returns them
// sorted (§8.8). Units whose .d file is missing are warned and skipped
// (§4.7).
func BuildSourceFileList(ctx context.Context, jobs int, units []cdb.CompileCommand, outputRoot, prefix string) ([]string, error) {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	entries := make([]depEntry, len(units))
	for i, u := range units {
		entries[i] = depEntry{
			depPath:   pool.OutputPath(outputRoot, u.File, ".d"),
			directory: u.Directory,
		}
	}

	resolved := make([][]string, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			contents, err := os.ReadFile(e.depPath)
			if err != nil {
				log.Warningf("source-file list: %s missing, re-run with dep generation enabled: %v", e.depPath, err)
				return nil
			}
			tokens := ParseDepTokens(string(contents))
			resolved[i] = ResolveExistingSources(e.directory, tokens)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var union []string
	for _, paths := range resolved {
		for _, p := range paths {
			if prefix != "" && !strings.HasPrefix(p, prefix) {
				continue
			}
			if !seen[p] {
				seen[p] = true
				union = append(union, p)
			}
		}
	}
	sort.Strings(union)
	return union, nil
}

// WriteSourceFileList writes one absolute path per line.
func WriteSourceFileList(path string, sources []string) error {
	var b strings.Builder
	for _, s := range sources {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
