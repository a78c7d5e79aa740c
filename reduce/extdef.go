// Package reduce implements the whole-CDB reducers (§4.7). The
// external-function-map merge and the source-file list run after the
// worker pool joins, and their per-unit read step runs through an inner
// errgroup of the same width as the worker pool. The invocation list and
// the input-file list need no per-unit outputs; the driver runs them as
// ordinary pool tasks. The errgroup use mirrors the teacher's own use of
// errgroup for parallel per-file work (hashfs/state.go,
// toolsupport/ninjautil/file_parser.go).
package reduce

import (
	"bufio"
	"context"
	"os"
	"runtime"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// ExtdefEntry is one parsed line of a unit's external-definition map.
type ExtdefEntry struct {
	USR  string
	Path string
}

// ParseExtdefLine parses one non-empty line of an extdef file in either
// the length-prefixed form "<len>:<usr><sep><path>" or the legacy form
// "<usr> <path>" (§4.7, §8.6). The length-prefixed separator may be any
// single byte (SPEC_FULL.md §12, resolving the open question in §9).
// Malformed lines return ok=false and are skipped silently (§7,
// "Reducer partial").
func ParseExtdefLine(line string) (entry ExtdefEntry, ok bool) {
	if colon := strings.IndexByte(line, ':'); colon >= 0 {
		if n, err := strconv.Atoi(line[:colon]); err == nil && n >= 0 {
			rest := line[colon+1:]
			if len(rest) > n {
				usr := rest[:n]
				path := rest[n+1:] // skip the single separator byte
				return ExtdefEntry{USR: usr, Path: path}, true
			}
		}
	}
	if sp := strings.IndexByte(line, ' '); sp >= 0 && strings.IndexByte(line[sp+1:], ' ') < 0 {
		return ExtdefEntry{USR: line[:sp], Path: line[sp+1:]}, true
	}
	return ExtdefEntry{}, false
}

// ReadExtdefFile reads and parses every line of one unit's extdef file,
// in file order, dropping malformed lines.
func ReadExtdefFile(path string) ([]ExtdefEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []ExtdefEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if e, ok := ParseExtdefLine(line); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// MergeExtdefMaps reads paths (one per unit, in CDB order) concurrently
// through an errgroup limited to jobs workers, then folds the parsed
// entries sequentially so "later entries overwrite earlier" follows
// CDB order rather than completion order. A missing file is logged and
// skipped (§7, "Per-task failure").
func MergeExtdefMaps(ctx context.Context, jobs int, paths []string) ([]ExtdefEntry, error) {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	parsed := make([][]ExtdefEntry, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			entries, err := ReadExtdefFile(path)
			if err != nil {
				log.Warningf("external-function map: %s: %v", path, err)
				return nil
			}
			parsed[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var order []string
	byUSR := map[string]string{}
	for _, entries := range parsed {
		for _, e := range entries {
			if _, seen := byUSR[e.USR]; !seen {
				order = append(order, e.USR)
			}
			byUSR[e.USR] = e.Path
		}
	}
	merged := make([]ExtdefEntry, len(order))
	for i, usr := range order {
		merged[i] = ExtdefEntry{USR: usr, Path: byUSR[usr]}
	}
	return merged, nil
}

// RewriteForASTCTU rewrites each entry's path to outputRoot+path+".ast",
// per §4.7/§8.7: when AST-based CTU is requested, the merged map must
// point at the mirrored .ast output rather than the original source.
func RewriteForASTCTU(entries []ExtdefEntry, outputRoot string) []ExtdefEntry {
	out := make([]ExtdefEntry, len(entries))
	for i, e := range entries {
		out[i] = ExtdefEntry{USR: e.USR, Path: outputRoot + e.Path + ".ast"}
	}
	return out
}

// WriteExtdefMap writes merged entries as "<usr> <path>\n" lines, in
// the order given.
func WriteExtdefMap(path string, entries []ExtdefEntry) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.USR)
		b.WriteByte(' ')
		b.WriteString(e.Path)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
