package cdb

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrune(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "drops singleton flags",
			args: []string{"-O2", "-c", "-fsyntax-only", "-save-temps", "a.c"},
			want: []string{"-O2", "a.c"},
		},
		{
			name: "drops paired flags with their value",
			args: []string{"-o", "a.o", "-MF", "a.d", "-MT", "a.o", "-MQ", "x", "-MJ", "y", "a.c"},
			want: []string{"a.c"},
		},
		{
			name: "drops -o= form",
			args: []string{"-o=a.o", "a.c"},
			want: []string{"a.c"},
		},
		{
			name: "drops -M/-W/-g prefixed flags",
			args: []string{"-MD", "-Wall", "-Wno-unused", "-g3", "-g", "a.c"},
			want: []string{"a.c"},
		},
		{
			name: "keeps everything else in order",
			args: []string{"-I../..", "-DFOO=1", "-std=c++17", "a.cc"},
			want: []string{"-I../..", "-DFOO=1", "-std=c++17", "a.cc"},
		},
		{
			name: "keeps -x tokens verbatim",
			args: []string{"-x", "c++", "-xc", "a.c"},
			want: []string{"-x", "c++", "-xc", "a.c"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Prune(tc.args)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Prune(%v) mismatch (-want +got):\n%s", tc.args, diff)
			}
		})
	}
}

func TestPruneIdempotent(t *testing.T) {
	args := []string{"-O2", "-c", "-o", "a.o", "-MD", "-MF", "a.d", "-Wall", "-g", "-save-temps", "-I..", "a.c"}
	once := Prune(args)
	twice := Prune(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Prune is not idempotent (-once +twice):\n%s", diff)
	}
	banned := []string{"-c", "-fsyntax-only", "-save-temps", "-o", "-MF", "-MT", "-MQ", "-MJ"}
	for _, tok := range once {
		for _, b := range banned {
			if tok == b {
				t.Errorf("pruned argv still contains %q", tok)
			}
		}
		if len(tok) >= 2 {
			switch tok[:2] {
			case "-M", "-W", "-g":
				t.Errorf("pruned argv still contains prefixed flag %q", tok)
			}
		}
	}
}

func TestMatchLangFlag(t *testing.T) {
	args := []string{"-x", "c++", "foo"}
	lang, ok, n := matchLangFlag(args, 0)
	if !ok || lang != "c++" || n != 2 {
		t.Errorf("matchLangFlag(-x c++) = %q, %t, %d", lang, ok, n)
	}
	args2 := []string{"-xc", "foo"}
	lang2, ok2, n2 := matchLangFlag(args2, 0)
	if !ok2 || lang2 != "c" || n2 != 1 {
		t.Errorf("matchLangFlag(-xc) = %q, %t, %d", lang2, ok2, n2)
	}
}
