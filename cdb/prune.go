package cdb

import "strings"

// singleTokenDrops are argv tokens removed outright.
var singleTokenDrops = map[string]bool{
	"-c":            true,
	"-fsyntax-only": true,
	"-save-temps":   true,
}

// pairTokenDrops are argv tokens removed together with the token that
// immediately follows them.
var pairTokenDrops = map[string]bool{
	"-o":  true,
	"-MF": true,
	"-MT": true,
	"-MQ": true,
	"-MJ": true,
}

// prunePrefixes are two-byte argv prefixes removed regardless of the
// rest of the token (e.g. -Wall, -MD, -g3).
var prunePrefixes = []string{"-M", "-W", "-g"}

// prune removes build-specific flags from args that would interfere
// with replaying the compilation under a different action, per §3 of
// SPEC_FULL.md. It also reports a language override if -x is found.
//
// Grounded on the argv-scanning style of
// toolsupport/gccutil.ScanDepsParams: exact-match flags are checked
// first, then prefix-match flags, then the token is kept as-is.
func prune(args []string) (pruned []string, langOverride Language, overridden bool) {
	pruned = make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if lang, ok, consumed := matchLangFlag(args, i); ok {
			langOverride = Language(lang)
			overridden = true
			pruned = append(pruned, args[i:i+consumed]...)
			i += consumed - 1
			continue
		}

		if singleTokenDrops[arg] {
			continue
		}
		if pairTokenDrops[arg] {
			i++ // also drop the following token
			continue
		}
		if strings.HasPrefix(arg, "-o=") {
			continue
		}
		if len(arg) >= 2 && prefixDropped(arg[:2]) {
			continue
		}
		pruned = append(pruned, arg)
	}
	return pruned, langOverride, overridden
}

func prefixDropped(p2 string) bool {
	for _, p := range prunePrefixes {
		if p2 == p {
			return true
		}
	}
	return false
}

// matchLangFlag recognizes "-x LANG" (two tokens) or "-xLANG" (one
// token), returning the language string, whether it matched, and how
// many argv tokens it consumed.
func matchLangFlag(args []string, i int) (lang string, ok bool, consumed int) {
	arg := args[i]
	if arg == "-x" {
		if i+1 < len(args) {
			return args[i+1], true, 2
		}
		return "", false, 0
	}
	if strings.HasPrefix(arg, "-x") && len(arg) > 2 {
		return arg[2:], true, 1
	}
	return "", false, 0
}

// Prune is the exported, idempotent form of the pruning rules (testable
// property §8.1): it never reports a language override, since that is
// only meaningful during normalization.
func Prune(args []string) []string {
	pruned, _, _ := prune(args)
	return pruned
}
