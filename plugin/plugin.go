// Package plugin loads user-supplied ActionDescriptor JSON files, per
// SPEC_FULL.md §4.3.
package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctu-tools/panda/action"
)

// rawFile is the top-level shape of a plugin JSON document.
type rawFile struct {
	Comment string    `json:"comment"`
	Type    string    `json:"type"`
	Action  rawAction `json:"action"`
}

// rawAction is the union of both ActionDescriptor shapes as they appear
// on disk; only the fields relevant to Type are required.
type rawAction struct {
	Prompt    string          `json:"prompt"`
	Args      []string        `json:"args"`
	Tool      json.RawMessage `json:"tool"`
	Extension json.RawMessage `json:"extension"`
	Outopt    string          `json:"outopt"`
	Source    string          `json:"source"`
}

// Load reads and validates the plugin descriptors named by paths,
// deduplicating the path set first. Any structural error is fatal: the
// caller is expected to abort the process rather than proceed with a
// partially loaded plugin set (§4.3: "partial runs are not permitted").
func Load(paths []string) ([]*action.Descriptor, error) {
	seen := make(map[string]bool)
	var deduped []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("plugin: resolving path %q: %w", p, err)
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		deduped = append(deduped, p)
	}

	var descriptors []*action.Descriptor
	for _, p := range deduped {
		d, err := loadOne(p)
		if err != nil {
			return nil, fmt.Errorf("plugin: %s: %w", p, err)
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

func loadOne(path string) (*action.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plugin file: %w", err)
	}
	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing plugin JSON: %w", err)
	}

	key := filepath.Base(path)
	switch raw.Type {
	case "Integrated":
		return loadIntegrated(key, raw.Action)
	case "Singleton":
		return loadSingleton(key, raw.Action)
	default:
		return nil, fmt.Errorf("unknown plugin type %q (want Integrated or Singleton)", raw.Type)
	}
}

func loadIntegrated(key string, a rawAction) (*action.Descriptor, error) {
	if a.Prompt == "" {
		return nil, fmt.Errorf("Integrated plugin missing required field \"prompt\"")
	}
	if a.Args == nil {
		return nil, fmt.Errorf("Integrated plugin missing required field \"args\"")
	}
	d := &action.Descriptor{
		Key:       key,
		Kind:      action.Integrated,
		Prompt:    a.Prompt,
		ExtraArgs: a.Args,
		OutputOpt: "-o",
	}
	if a.Outopt != "" {
		d.OutputOpt = a.Outopt
	}
	if len(a.Extension) > 0 {
		ext, err := parseExtension(a.Extension)
		if err != nil {
			return nil, fmt.Errorf("Integrated plugin \"extension\": %w", err)
		}
		d.OutputExt = ext
	}
	if len(a.Tool) > 0 {
		tool, err := parseTool(a.Tool)
		if err != nil {
			return nil, fmt.Errorf("Integrated plugin \"tool\": %w", err)
		}
		d.Tool = tool
	}
	return d, nil
}

func loadSingleton(key string, a rawAction) (*action.Descriptor, error) {
	if a.Prompt == "" {
		return nil, fmt.Errorf("Singleton plugin missing required field \"prompt\"")
	}
	if a.Args == nil {
		return nil, fmt.Errorf("Singleton plugin missing required field \"args\"")
	}
	var tool string
	if len(a.Tool) > 0 {
		if err := json.Unmarshal(a.Tool, &tool); err != nil {
			return nil, fmt.Errorf("Singleton plugin \"tool\" must be a string: %w", err)
		}
	}
	if tool == "" {
		return nil, fmt.Errorf("Singleton plugin missing required field \"tool\"")
	}
	d := &action.Descriptor{
		Key:        key,
		Kind:       action.Singleton,
		Prompt:     a.Prompt,
		ExtraArgs:  a.Args,
		ToolBinary: tool,
	}
	if len(a.Extension) > 0 {
		ext, err := parseExtension(a.Extension)
		if err != nil {
			return nil, fmt.Errorf("Singleton plugin \"extension\": %w", err)
		}
		d.OutputExt = ext
		switch a.Source {
		case "stdout":
			d.CaptureStream = action.Stdout
		case "stderr":
			d.CaptureStream = action.Stderr
		default:
			return nil, fmt.Errorf(`Singleton plugin sets "extension" but "source" is %q, want "stdout" or "stderr"`, a.Source)
		}
	}
	return d, nil
}

// parseExtension accepts either a single extension string (applied to
// both languages) or a 2-element [cExt, cxxExt] array.
func parseExtension(raw json.RawMessage) (action.OutputExt, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return action.OutputExt{C: single, CXX: single}, nil
	}
	var pair []string
	if err := json.Unmarshal(raw, &pair); err != nil {
		return action.OutputExt{}, fmt.Errorf("must be a string or a 2-element array: %w", err)
	}
	if len(pair) != 2 {
		return action.OutputExt{}, fmt.Errorf("array form must have exactly 2 elements, got %d", len(pair))
	}
	return action.OutputExt{C: pair[0], CXX: pair[1]}, nil
}

// parseTool accepts either a single binary string (applied to both
// languages) or an object with "c" and "c++" keys.
func parseTool(raw json.RawMessage) (*action.ToolOverride, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return &action.ToolOverride{C: single, CXX: single}, nil
	}
	var obj struct {
		C   string `json:"c"`
		CXX string `json:"c++"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("must be a string or an object with \"c\" and \"c++\": %w", err)
	}
	if obj.C == "" || obj.CXX == "" {
		return nil, fmt.Errorf(`object form must contain both "c" and "c++"`)
	}
	return &action.ToolOverride{C: obj.C, CXX: obj.CXX}, nil
}

// SubstituteOutputRoot replaces the literal substring "/path/to/output"
// in args with outputRoot. Per §4.3, this happens at execution time, not
// load time, so descriptors stay immutable and shareable across workers.
func SubstituteOutputRoot(args []string, outputRoot string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = strings.ReplaceAll(a, "/path/to/output", outputRoot)
	}
	return out
}
