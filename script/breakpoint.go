package script

import (
	"strings"

	"github.com/coregx/vimcore/regex"
)

// BreakpointKind distinguishes a function breakpoint from a file
// breakpoint (spec.md §3 Breakpoint).
type BreakpointKind uint8

const (
	BreakFunc BreakpointKind = iota
	BreakFile
)

// Breakpoint is one compiled :breakadd entry (spec.md §3).
type Breakpoint struct {
	Nr      int
	Kind    BreakpointKind
	Name    string
	Lnum    int
	Forceit bool

	pattern *regex.Prog
}

// BreakpointTable holds every active breakpoint plus the monotonic
// debug_tick counter that bumps on every add/remove so outstanding
// SourceCookies notice and recompute their next break line (spec.md §3).
type BreakpointTable struct {
	entries []Breakpoint
	nextNr  int
	tick    int
}

// Tick returns the current debug_tick value.
func (t *BreakpointTable) Tick() int { return t.tick }

// Add compiles and registers a new breakpoint, matching :breakadd's
// grammar (spec.md §4.4, §6). name is converted to a regex via
// filePatToRegPat and compiled with the vimcore regex engine — reusing
// regex.Compile is the reason breakpoint names support the same glob
// metacharacters ex-command file patterns do, instead of a bespoke
// matcher.
func (t *BreakpointTable) Add(kind BreakpointKind, name string, lnum int, forceit bool) (Breakpoint, error) {
	pat := filePatToRegPat(name)
	prog, err := regex.Compile(pat, regex.DefaultFlags())
	if err != nil {
		return Breakpoint{}, &SourceError{Fname: name, Err: err}
	}
	t.nextNr++
	bp := Breakpoint{Nr: t.nextNr, Kind: kind, Name: name, Lnum: lnum, Forceit: forceit, pattern: prog}
	t.entries = append(t.entries, bp)
	t.tick++
	return bp, nil
}

// Delete removes the breakpoint with the given number, or returns
// ErrBreakpointNotFound if none has it (":breakdel *" goes through
// DeleteAll instead).
func (t *BreakpointTable) Delete(nr int) error {
	for i, bp := range t.entries {
		if bp.Nr == nr {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			t.tick++
			return nil
		}
	}
	return ErrBreakpointNotFound
}

// DeleteAll clears the whole table (":breakdel *").
func (t *BreakpointTable) DeleteAll() {
	t.entries = nil
	t.tick++
}

// List returns every active breakpoint, for :breaklist.
func (t *BreakpointTable) List() []Breakpoint { return t.entries }

// DebuggyFind iterates the breakpoint table for entries of the given
// file/func-ness matching name, and returns the smallest Lnum strictly
// greater than afterLnum, or ok=false if none match (spec.md §4.4
// "debuggy_find").
func DebuggyFind(isFile bool, name string, afterLnum int, table *BreakpointTable) (bp Breakpoint, ok bool) {
	wantKind := BreakFunc
	if isFile {
		wantKind = BreakFile
	}
	best := -1
	for i := range table.entries {
		e := &table.entries[i]
		if e.Kind != wantKind || e.Lnum <= afterLnum {
			continue
		}
		m := regex.NewMatcher(e.pattern)
		if _, matched, err := m.Find(name, regex.MatchOptions{}); err != nil || !matched {
			continue
		}
		if best == -1 || e.Lnum < best {
			best = e.Lnum
			bp = *e
			ok = true
		}
	}
	return bp, ok
}

// filePatToRegPat converts a simple glob-style breakpoint/file pattern
// ('*' any run, '?' one char, literal otherwise) into a vimcore regex
// source string, the Go analogue of file_pat_to_reg_pat (spec.md
// §4.4 "Breakpoint compilation").
func filePatToRegPat(pat string) string {
	var b strings.Builder
	b.WriteString(`\v^`)
	for _, r := range pat {
		switch r {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		case '.', '\\', '^', '$', '[', ']', '}', '~', '#':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '(', ')', '{', '|', '+', '=', '<', '>', '%', '&', '@':
			// a backslash would make these operators, so use a
			// one-character collection instead.
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(`$`)
	return b.String()
}
