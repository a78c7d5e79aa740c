package cdb

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	log "github.com/golang/glog"
)

// Skip is returned by Normalize for a unit whose language is unknown and
// which therefore must not be executed, with a human-readable reason the
// caller should log. Invalid entries are reported as plain errors.
type Skip struct {
	Reason string
}

func (s *Skip) Error() string { return s.Reason }

// Decode reads a JSON compile-commands array, invoking fn for every
// successfully normalized unit. Entries that are invalid or resolve to
// an unknown language are logged and skipped, matching §4.1's
// never-execute-unknown-language rule.
func Decode(r io.Reader, fn func(CompileCommand)) error {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("cdb: reading array start: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return fmt.Errorf("cdb: expected a JSON array, got %v", tok)
	}
	for dec.More() {
		var raw Entry
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("cdb: decoding entry: %w", err)
		}
		cc, err := Normalize(raw)
		if err != nil {
			var skip *Skip
			if asSkip(err, &skip) {
				log.Warningf("cdb: skipping unit: %s", skip.Reason)
				continue
			}
			log.Warningf("cdb: skipping invalid entry: %v", err)
			continue
		}
		fn(cc)
	}
	return nil
}

func asSkip(err error, out **Skip) bool {
	s, ok := err.(*Skip)
	if ok {
		*out = s
	}
	return ok
}

// Normalize turns one raw CDB entry into a replay-ready CompileCommand.
// It returns a *Skip error for an unknown-language unit and a plain
// error for an invalid entry.
func Normalize(raw Entry) (CompileCommand, error) {
	if raw.File == "" || raw.Directory == "" || (raw.Command == "" && len(raw.Arguments) == 0) {
		return CompileCommand{}, fmt.Errorf("invalid entry: missing file, directory, or arguments/command (file=%q directory=%q)", raw.File, raw.Directory)
	}

	directory, err := filepath.Abs(raw.Directory)
	if err != nil {
		return CompileCommand{}, fmt.Errorf("invalid entry: resolving directory %q: %w", raw.Directory, err)
	}

	file := raw.File
	if !filepath.IsAbs(file) {
		file = filepath.Join(directory, file)
	}
	file = filepath.Clean(file)

	var argv []string
	if len(raw.Arguments) > 0 {
		argv = raw.Arguments
	} else {
		argv, err = splitCommand(raw.Command)
		if err != nil {
			return CompileCommand{}, fmt.Errorf("invalid entry: splitting command %q: %w", raw.Command, err)
		}
	}
	if len(argv) == 0 {
		return CompileCommand{}, fmt.Errorf("invalid entry: empty argument vector")
	}

	compiler := argv[0]
	lang := inferLanguage(file)

	pruned, override, overridden := prune(argv[1:])
	if overridden {
		lang = override
	}

	if lang == LangUnknown {
		return CompileCommand{}, &Skip{Reason: fmt.Sprintf("unknown language for %s", file)}
	}

	return CompileCommand{
		Directory: directory,
		File:      file,
		Language:  lang,
		Compiler:  compiler,
		Arguments: pruned,
	}, nil
}

// inferLanguage derives a Language from a source file's extension,
// defaulting to LangUnknown, per the table in §4.1.
func inferLanguage(file string) Language {
	ext := filepath.Ext(file)
	if lang, ok := sourceExtLanguage[ext]; ok {
		return lang
	}
	return LangUnknown
}
