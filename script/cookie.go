package script

// EolFormat is the detected (or forced) line-ending convention of a
// sourced file (spec.md §3 SourceCookie).
type EolFormat uint8

const (
	EolUnknown EolFormat = iota
	EolUnix
	EolDos
	EolMac
)

// SourceCookie is per-invocation scanner state for one do_source call
// (spec.md §3). Lives only during DoSource; read-ahead state is
// released on Close. It is driven through a scriptLineGetter, which
// pairs it with the owning Sourcer so get_source_line can reach the
// breakpoint table and profiling state.
type SourceCookie struct {
	fname   string
	data    []byte
	pos     int // byte offset of the next unread chunk of data
	nextLine *string
	finished bool
	eol      EolFormat
	warnedDosMismatch bool

	decoder bomDecoder

	breakpointLnum int
	dbgTickSeen    int

	sourcingLnum int

	si *ScriptItem
}

// Name returns the cookie's source file name, for breakpoint matching
// and :scriptnames-style diagnostics.
func (sc *SourceCookie) Name() string { return sc.fname }

// SourcingLnum returns the 1-based line number of the last line handed
// to the dispatcher, the `sourcing_lnum` global of spec.md §4.4.
func (sc *SourceCookie) SourcingLnum() int { return sc.sourcingLnum }

func (sc *SourceCookie) close() {
	sc.data = nil
	sc.nextLine = nil
}
