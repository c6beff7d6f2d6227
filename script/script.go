// Package script implements the script sourcing and profiling subsystem
// (spec.md §4.4): reading ex-command files with line-continuation,
// encoding/BOM handling and platform line-ending detection, assigning
// each sourced file a stable identity and SID, and cooperating with a
// breakpoint debugger and a per-line profiler.
package script

// LineNum names a 1-based source line number, used throughout for
// breakpoint and profile line accounting.
type LineNum = int

// Dispatcher mirrors do_cmdline(line, get_line_fn, cookie, flags): the
// ex-command dispatcher that vimcore calls into. It is owned by the
// embedding editor, not implemented here.
type Dispatcher interface {
	// DoCmdline executes line, pulling any further lines through get,
	// and returns the error the commands raised, if any.
	DoCmdline(line string, get LineGetter, cookie any, nestingLevel int) error
}

// CookieKind tags which variant of line-getter state a LineGetter
// closure is reading from (spec.md §9 "duck-typed source cookies" ->
// tagged variants, replacing pointer-equality dispatch on getline_fn).
type CookieKind uint8

const (
	CookieScript CookieKind = iota
	CookieInteractive
	CookieFunction
)

// LineGetter yields one ex-command line at a time, or ok=false at EOF.
// Implementations close over a *SourceCookie, an interactive prompt, or
// a function body depending on Kind().
type LineGetter interface {
	Kind() CookieKind
	GetLine() (line string, ok bool)
}

// Evaluator is the narrow slice of spec.md §6's evaluator collaborator
// that script needs: resolving `<SID>` and expression-in-breakpoint
// constructs is out of scope, but :debug's `{cmd}` prompt can ask the
// embedding editor to run arbitrary expressions for inspection.
type Evaluator interface {
	EvalToString(expr string) (string, bool)
}

// Autocmd fires SourceCmd/SourcePre around do_source per spec.md §4.4
// step 3 and §6's autocommand-dispatch collaborator.
type Autocmd interface {
	// Apply fires event for fname; handled reports whether a SourceCmd
	// hook claimed responsibility for sourcing the file itself, in
	// which case do_source stops without opening the file.
	Apply(event, fname string) (handled bool)
}

// Options mirrors the read-only option-system slice script needs,
// populated by the embedding editor the way operator.Options and
// regex.Flags are (spec.md §6, SPEC_FULL.md §1 Ambient Stack).
type Options struct {
	// CpoC disables backslash line-continuation when 'C' is present in
	// cpoptions (spec.md §4.4 get_source_line step 3).
	CpoC bool
	// DebugGreedy mirrors :debuggreedy: keep pending typeahead instead
	// of swapping it out while do_debug blocks on input.
	DebugGreedy bool
	// ProfilingEnabled gates the pr_force breakpoint check in step 7 of
	// do_source; no other code path reads it.
	ProfilingEnabled bool
}

// Sourcer is the entry point for the subsystem: one instance per
// editor process, holding the script registry, breakpoint table, and
// debug state. Not safe for concurrent use — mirrors the teacher's
// PikeVM/lazy.Cache single-goroutine-per-instance discipline, since
// sourcing_lnum/sourcing_name/debug_break_level are process-global by
// spec.md §5 and §9 "pervasive global state".
type Sourcer struct {
	_ noCopy

	Opts    Options
	Dispatch Dispatcher
	Auto    Autocmd
	Eval    Evaluator

	scripts *Registry
	breaks  BreakpointTable
	debug   debugState
}

// NewSourcer creates a Sourcer ready to source files.
func NewSourcer(opts Options, dispatch Dispatcher, auto Autocmd, eval Evaluator) *Sourcer {
	return &Sourcer{
		Opts:     opts,
		Dispatch: dispatch,
		Auto:     auto,
		Eval:     eval,
		scripts:  NewRegistry(),
	}
}

// Scripts exposes the script registry for :scriptnames and :profile dump.
func (s *Sourcer) Scripts() *Registry { return s.scripts }

// Breakpoints exposes the breakpoint table for :breakadd/:breakdel/:breaklist.
func (s *Sourcer) Breakpoints() *BreakpointTable { return &s.breaks }

// noCopy documents that Sourcer holds process-wide mutable state and
// must not be copied after first use; go vet's copylocks check doesn't
// fire on it directly, but the convention matches the teacher's own
// scratch-holding types.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
