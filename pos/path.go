package pos

import (
	"os"
	"path/filepath"
	"strings"
)

// CanonicalPath resolves symlinks and makes p absolute, the fallback
// identity used by the script-sourcing subsystem (§4.4, §8 "script
// identity") on platforms without a usable dev+inode stat. It degrades
// gracefully: if the path does not exist yet, it is still cleaned and made
// absolute so that two spellings of the same not-yet-existing path compare
// equal.
func CanonicalPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = filepath.Clean(p)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// SwapDotUnderscore toggles the leading '.' / '_' of a basename, used by
// do_source's retry step 4 to find `.vimrc` when `_vimrc` was requested or
// vice versa on platforms where dotfiles are awkward.
func SwapDotUnderscore(p string) string {
	dir, base := filepath.Split(p)
	if base == "" {
		return p
	}
	switch base[0] {
	case '.':
		base = "_" + base[1:]
	case '_':
		base = "." + base[1:]
	default:
		return p
	}
	return filepath.Join(dir, base)
}

// ExpandEnv expands $VAR and ${VAR} references the way a shell-adjacent
// sourcing step expects, tolerating an unset variable by writing it back
// as $VAR rather than silently blanking it (os.Expand always blanks, so
// we special-case it). An unset ${VAR} reference comes back as $VAR,
// without its braces.
func ExpandEnv(p string) string {
	return os.Expand(p, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return "$" + name
	})
}

// IsDir reports whether p names a directory, used by do_source's directory
// rejection step.
func IsDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// SplitContinuation reports whether line is a script continuation line: one
// whose first non-blank character is '\', per §4.4/§6 "Continuation line".
func SplitContinuation(line string) (rest string, isCont bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "\\") {
		return trimmed[1:], true
	}
	return line, false
}
