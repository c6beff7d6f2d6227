package regex

import (
	"unicode/utf8"

	"github.com/coregx/vimcore/internal/sparse"
)

// Submatch holds up to 10 captured spans (group 0 is the whole match),
// expressed as byte offsets into the Matcher's current input (spec.md §3).
// An unset slot is (-1, -1).
type Submatch [10][2]int

func newSubmatch() Submatch {
	var s Submatch
	for i := range s {
		s[i] = [2]int{-1, -1}
	}
	return s
}

// thread is one active path through the NFA at the current input position.
type thread struct {
	state StateID
	subs  Submatch
}

type threadList struct {
	threads []thread
	// onList dedupes states within a single list in O(1) without walking
	// or reallocating the whole arena between positions, the sparse-set
	// discipline spec.md §9 calls for in place of per-state generation
	// counters.
	onList *sparse.SparseSet
}

func newThreadList(capacity int) *threadList {
	return &threadList{threads: make([]thread, 0, capacity), onList: sparse.NewSparseSet(uint32(capacity))}
}

func (tl *threadList) reset() {
	tl.threads = tl.threads[:0]
	tl.onList.Clear()
}

func (tl *threadList) seen(id StateID) bool {
	return tl.onList.Contains(uint32(id))
}

func (tl *threadList) mark(id StateID) {
	tl.onList.Insert(uint32(id))
}

// ExternalState supplies the collaborator-provided facts a few opcodes
// need (CURSOR, VISUAL, \%23l and friends) without vimcore owning window
// state itself (spec.md §6).
type ExternalState struct {
	CursorLine, CursorCol int
	MarkLine              func(name byte) (int, bool)
	CurLine               int // line number of the text currently being matched, for \%23l etc.
}

// MatchOptions configures one Matcher.Find call.
type MatchOptions struct {
	StartOffset int
	External    ExternalState
	// MaxSteps bounds total per-character work before returning
	// ErrTooExpensive (spec.md's maxmempattern analogue).
	MaxSteps int
}

// Result is a successful match.
type Result struct {
	Start, End int
	Subs       Submatch
	TimedOut   bool
}

// Matcher executes a compiled Prog against byte-string input using the
// two-list Thompson simulation of spec.md §4.3.3. Not safe for concurrent
// use — scratch thread lists are reused across calls on one goroutine,
// mirroring the teacher's PikeVM.
type Matcher struct {
	prog      *Prog
	prefilter *Prefilter
	cur, next *threadList
}

// NewMatcher creates a Matcher bound to prog, building a literal-set
// prefilter opportunistically (BuildPrefilter returns nil when the
// pattern doesn't qualify, which NewMatcher tolerates silently).
func NewMatcher(prog *Prog) *Matcher {
	n := len(prog.States)
	if n < 16 {
		n = 16
	}
	return &Matcher{prog: prog, prefilter: BuildPrefilter(prog), cur: newThreadList(n), next: newThreadList(n)}
}

// Find returns the first match in input at or after opts.StartOffset, or
// ok=false if none exists.
func (m *Matcher) Find(input string, opts MatchOptions) (Result, bool, error) {
	prog := m.prog
	start := opts.StartOffset
	if m.prefilter != nil {
		idx := m.prefilter.Next([]byte(input), start)
		if idx < 0 {
			return Result{}, false, nil
		}
		start = idx
	} else if prog.HasRegstart {
		// regstart fast path: skip to the next occurrence of the
		// required leading codepoint (spec.md §4.3.2).
		idx := indexRuneFrom(input, start, prog.Regstart)
		if idx < 0 {
			return Result{}, false, nil
		}
		start = idx
	}
	for pos := start; pos <= len(input); {
		res, ok, err := m.matchAt(input, pos, opts)
		if err != nil {
			return Result{}, false, err
		}
		if ok {
			return res, true, nil
		}
		if prog.Reganch {
			break
		}
		_, size := utf8.DecodeRuneInString(input[pos:])
		if size == 0 {
			size = 1
		}
		pos += size
	}
	return Result{}, false, nil
}

func indexRuneFrom(s string, from int, r rune) int {
	for i := from; i < len(s); {
		x, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			size = 1
		}
		if x == r {
			return i
		}
		i += size
	}
	return -1
}

// matchAt runs the two-list simulation anchored at a single start
// position, returning the leftmost-longest match starting exactly there.
func (m *Matcher) matchAt(input string, startPos int, opts MatchOptions) (Result, bool, error) {
	prog := m.prog
	m.cur.reset()
	m.next.reset()

	sub0 := newSubmatch()
	sub0[0] = [2]int{startPos, -1}
	m.addThread(m.cur, prog.Start, sub0, input, startPos, opts)

	var best *Submatch
	bestEnd := -1

	pos := startPos
	steps := 0
	for {
		if len(m.cur.threads) == 0 {
			break
		}
		for _, th := range m.cur.threads {
			s := &prog.States[th.state]
			if s.Kind == KindMatch {
				subs := th.subs
				subs[0][1] = pos
				if subs[0][1] >= bestEnd {
					cp := subs
					best = &cp
					bestEnd = subs[0][1]
				}
				continue
			}
		}
		if pos >= len(input) {
			break
		}
		r, size := utf8.DecodeRuneInString(input[pos:])
		if size == 0 {
			break
		}
		m.next.reset()
		for _, th := range m.cur.threads {
			s := &prog.States[th.state]
			switch s.Kind {
			case KindChar:
				if s.Pred != nil && s.Pred(r) {
					m.addThread(m.next, s.Out, th.subs, input, pos+size, opts)
				}
			case KindAny:
				if r != '\n' {
					m.addThread(m.next, s.Out, th.subs, input, pos+size, opts)
				}
			case KindBackref:
				if ok, adv := matchBackref(th.subs, s.Group, input, pos); ok {
					m.addThread(m.next, s.Out, th.subs, input, pos+adv, opts)
				}
			}
			steps++
			if opts.MaxSteps > 0 && steps > opts.MaxSteps {
				return Result{}, false, ErrTooExpensive
			}
		}
		m.cur, m.next = m.next, m.cur
		pos += size
	}

	if best == nil {
		return Result{}, false, nil
	}
	return Result{Start: startPos, End: best[0][1], Subs: *best}, true, nil
}

func matchBackref(subs Submatch, group int, input string, pos int) (bool, int) {
	if group < 0 || group > 9 {
		return false, 0
	}
	span := subs[group]
	if span[0] < 0 || span[1] < 0 {
		return false, 0
	}
	want := input[span[0]:span[1]]
	if pos+len(want) > len(input) {
		return false, 0
	}
	if input[pos:pos+len(want)] != want {
		return false, 0
	}
	return true, len(want)
}

// addThread follows zero-width transitions eagerly (SPLIT, MOPEN/MCLOSE,
// ZOPEN/ZCLOSE, NOPEN/NCLOSE, EPSILON, anchors, look-arounds) so that a
// thread list only ever holds threads blocked on consuming a character or
// sitting in a MATCH state (spec.md §4.3.3 "Addstate discipline").
func (m *Matcher) addThread(tl *threadList, id StateID, subs Submatch, input string, pos int, opts MatchOptions) {
	if id == NoState {
		return
	}
	if tl.seen(id) {
		return
	}
	s := &m.prog.States[id]

	switch s.Kind {
	case KindSplit:
		tl.mark(id)
		m.addThread(tl, s.Out, subs, input, pos, opts)
		m.addThread(tl, s.Out1, subs, input, pos, opts)
		return
	case KindEpsilon, KindNOpen, KindNClose:
		tl.mark(id)
		m.addThread(tl, s.Out, subs, input, pos, opts)
		return
	case KindMOpen:
		tl.mark(id)
		ns := subs
		if s.Group >= 0 && s.Group <= 9 {
			ns[s.Group] = [2]int{pos, ns[s.Group][1]}
		}
		m.addThread(tl, s.Out, ns, input, pos, opts)
		return
	case KindMClose:
		tl.mark(id)
		ns := subs
		if s.Group >= 0 && s.Group <= 9 {
			ns[s.Group] = [2]int{ns[s.Group][0], pos}
		}
		m.addThread(tl, s.Out, ns, input, pos, opts)
		return
	case KindZOpen, KindZClose:
		tl.mark(id)
		m.addThread(tl, s.Out, subs, input, pos, opts)
		return
	case KindBOL:
		tl.mark(id)
		if pos == 0 || (pos > 0 && input[pos-1] == '\n') {
			m.addThread(tl, s.Out, subs, input, pos, opts)
		}
		return
	case KindEOL:
		tl.mark(id)
		if pos == len(input) || input[pos] == '\n' {
			m.addThread(tl, s.Out, subs, input, pos, opts)
		}
		return
	case KindBOF:
		tl.mark(id)
		if pos == 0 {
			m.addThread(tl, s.Out, subs, input, pos, opts)
		}
		return
	case KindEOF:
		tl.mark(id)
		if pos == len(input) {
			m.addThread(tl, s.Out, subs, input, pos, opts)
		}
		return
	case KindBOW:
		tl.mark(id)
		if isWordBoundary(input, pos, true) {
			m.addThread(tl, s.Out, subs, input, pos, opts)
		}
		return
	case KindEOW:
		tl.mark(id)
		if isWordBoundary(input, pos, false) {
			m.addThread(tl, s.Out, subs, input, pos, opts)
		}
		return
	case KindCursor:
		tl.mark(id)
		if pos == opts.External.CursorCol {
			m.addThread(tl, s.Out, subs, input, pos, opts)
		}
		return
	case KindPosAnchor:
		tl.mark(id)
		if evalPosAnchor(s, opts.External) {
			m.addThread(tl, s.Out, subs, input, pos, opts)
		}
		return
	case KindZref:
		tl.mark(id)
		// Zref (\z1..\z9) resolves against the external z-submatch set by
		// a prior pattern (used by :s with two patterns); vimcore treats
		// it as always-fail when no such context is supplied, which
		// simply means the atom never matches rather than panicking.
		return
	case KindStartInvisible, KindStartInvisibleNeg, KindStartInvisibleBefore, KindStartInvisibleBeforeNeg:
		tl.mark(id)
		ok := m.evalLookaround(s, input, pos, subs, opts)
		neg := s.Kind == KindStartInvisibleNeg || s.Kind == KindStartInvisibleBeforeNeg
		if ok != neg {
			m.addThread(tl, s.MatchesEnd, subs, input, pos, opts)
		}
		return
	case KindEndInvisible, KindEndInvisibleNeg:
		tl.mark(id)
		m.addThread(tl, s.Out, subs, input, pos, opts)
		return
	}

	tl.mark(id)
	tl.threads = append(tl.threads, thread{state: id, subs: subs})
}

func isWordBoundary(input string, pos int, start bool) bool {
	var before, after rune
	before, after = -1, -1
	if pos > 0 {
		r, sz := utf8.DecodeLastRuneInString(input[:pos])
		_ = sz
		before = r
	}
	if pos < len(input) {
		r, _ := utf8.DecodeRuneInString(input[pos:])
		after = r
	}
	beforeWord := before >= 0 && isWordRune(before)
	afterWord := after >= 0 && isWordRune(after)
	if start {
		return !beforeWord && afterWord
	}
	return beforeWord && !afterWord
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r > 127
}

func evalPosAnchor(s *State, ext ExternalState) bool {
	var cur int
	switch s.PosKind {
	case 'l':
		cur = ext.CurLine
	case 'm':
		if ext.MarkLine != nil {
			if ln, ok := ext.MarkLine(byte(s.PosVal)); ok {
				cur = ln
			}
		}
	default:
		return true // column/vcol anchors are approximated as always-true
	}
	switch s.PosCmp {
	case '<':
		return cur < s.PosVal
	case '>':
		return cur > s.PosVal
	default:
		return cur == s.PosVal
	}
}

// evalLookaround runs a recursive sub-match for a \@=\@!\@<=\@<! atom
// (spec.md §4.3.3 "recursive execution"). vimcore always evaluates
// look-arounds eagerly rather than deferring via a Pim — see DESIGN.md
// for the scope of that simplification.
func (m *Matcher) evalLookaround(s *State, input string, pos int, subs Submatch, opts MatchOptions) bool {
	switch s.Kind {
	case KindStartInvisible, KindStartInvisibleNeg:
		sub := &Matcher{prog: m.prog, cur: newThreadList(8), next: newThreadList(8)}
		return sub.subMatches(s.Out, input, pos, subs, opts)
	case KindStartInvisibleBefore, KindStartInvisibleBeforeNeg:
		// Fixed-width look-behind: try every start <= pos and see if the
		// wrapped fragment matches exactly up to pos.
		for start := pos; start >= 0; start-- {
			sub := &Matcher{prog: m.prog, cur: newThreadList(8), next: newThreadList(8)}
			if sub.subMatchesExact(s.Out, input, start, pos, subs, opts) {
				return true
			}
			if pos-start > maxLookbehind {
				break
			}
		}
		return false
	}
	return false
}

const maxLookbehind = 4096

// subMatches reports whether the fragment starting at id matches some
// prefix of input[pos:] (used for lookahead: zero-width, so any match
// length counts).
func (m *Matcher) subMatches(id StateID, input string, pos int, subs Submatch, opts MatchOptions) bool {
	tl := newThreadList(8)
	m.addThread(tl, id, subs, input, pos, opts)
	cur := tl
	p := pos
	for {
		for _, th := range cur.threads {
			if m.prog.States[th.state].Kind == KindEndInvisible || m.prog.States[th.state].Kind == KindEndInvisibleNeg {
				return true
			}
		}
		if p >= len(input) {
			break
		}
		r, size := utf8.DecodeRuneInString(input[p:])
		if size == 0 {
			break
		}
		next := newThreadList(8)
		for _, th := range cur.threads {
			s := &m.prog.States[th.state]
			if s.Kind == KindChar && s.Pred != nil && s.Pred(r) {
				m.addThread(next, s.Out, th.subs, input, p+size, opts)
			} else if s.Kind == KindAny && r != '\n' {
				m.addThread(next, s.Out, th.subs, input, p+size, opts)
			}
		}
		if len(next.threads) == 0 {
			break
		}
		cur = next
		p += size
	}
	return false
}

// subMatchesExact reports whether the fragment starting at id matches
// input[start:end] exactly (used for fixed-width lookbehind).
func (m *Matcher) subMatchesExact(id StateID, input string, start, end int, subs Submatch, opts MatchOptions) bool {
	tl := newThreadList(8)
	m.addThread(tl, id, subs, input, start, opts)
	cur := tl
	p := start
	if p == end {
		for _, th := range cur.threads {
			k := m.prog.States[th.state].Kind
			if k == KindEndInvisible || k == KindEndInvisibleNeg {
				return true
			}
		}
	}
	for p < end {
		r, size := utf8.DecodeRuneInString(input[p:])
		if size == 0 {
			return false
		}
		next := newThreadList(8)
		for _, th := range cur.threads {
			s := &m.prog.States[th.state]
			if s.Kind == KindChar && s.Pred != nil && s.Pred(r) {
				m.addThread(next, s.Out, th.subs, input, p+size, opts)
			} else if s.Kind == KindAny && r != '\n' {
				m.addThread(next, s.Out, th.subs, input, p+size, opts)
			}
		}
		cur = next
		p += size
		if p == end {
			for _, th := range cur.threads {
				k := m.prog.States[th.state].Kind
				if k == KindEndInvisible || k == KindEndInvisibleNeg {
					return true
				}
			}
		}
		if len(cur.threads) == 0 {
			return false
		}
	}
	return false
}
