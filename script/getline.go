package script

import "github.com/coregx/vimcore/pos"

// getSourceLine implements get_source_line (spec.md §4.4): recomputes
// the next breakpoint line when the debug tick has advanced, reads
// (or consumes read-ahead) a physical line, splices in backslash
// continuations, and fires dbg_breakpoint when sourcing has crossed
// the cached breakpoint line.
func (s *Sourcer) getSourceLine(sc *SourceCookie) (string, bool) {
	if sc.dbgTickSeen != s.breaks.Tick() {
		sc.dbgTickSeen = s.breaks.Tick()
		if bp, ok := DebuggyFind(true, sc.fname, sc.sourcingLnum, &s.breaks); ok {
			sc.breakpointLnum = bp.Lnum
		} else {
			sc.breakpointLnum = 0
		}
	}

	first, ok := sc.nextOrRead()
	if !ok {
		return "", false
	}
	sc.sourcingLnum++

	if !s.Opts.CpoC {
		buf := newContinuationBuffer()
		buf.writeLine(first)
		for {
			peeked, ok := sc.nextOrRead()
			if !ok {
				break
			}
			rest, isCont := pos.SplitContinuation(peeked)
			if !isCont {
				sc.unread(peeked)
				break
			}
			sc.sourcingLnum++
			// rest keeps whatever whitespace followed the backslash in
			// the source, so no separator is inserted here: the join
			// relies on the continuation line's own leading space.
			buf.writeLine(rest)
		}
		first = buf.String()
	}

	if sc.breakpointLnum != 0 && sc.sourcingLnum >= sc.breakpointLnum {
		s.dbgBreakpoint(sc.fname, sc.sourcingLnum)
		if bp, ok := DebuggyFind(true, sc.fname, sc.sourcingLnum, &s.breaks); ok {
			sc.breakpointLnum = bp.Lnum
		} else {
			sc.breakpointLnum = 0
		}
	}

	return first, true
}

// unread pushes a line back as the single read-ahead slot, mirroring
// the cookie's `next_line` field (spec.md §3 SourceCookie).
func (sc *SourceCookie) unread(line string) {
	sc.nextLine = &line
}

// nextOrRead consumes the read-ahead slot if present, otherwise reads
// a fresh physical line via the encoding/EOL-aware scanner.
func (sc *SourceCookie) nextOrRead() (string, bool) {
	if sc.nextLine != nil {
		line := *sc.nextLine
		sc.nextLine = nil
		return line, true
	}
	return sc.getOneLine()
}
