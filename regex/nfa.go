package regex

// StateID indexes into a Prog's state arena. This is the arena+integer-index
// design spec.md §9 calls for in place of the source language's raw
// out/out1 pointers, the same shape the teacher's nfa.StateID already uses.
type StateID uint32

// NoState marks an absent transition (the teacher's InvalidState).
const NoState StateID = 0xFFFFFFFF

// Kind enumerates the closed set of NFA opcodes spec.md §4.3.1 requires.
type Kind uint8

const (
	KindMatch Kind = iota
	KindChar       // literal/class/collection: Pred decides the match
	KindAny
	KindSplit // epsilon to Out and Out1; Out taken first (greedy priority)
	KindEpsilon
	KindBOL
	KindEOL
	KindBOW
	KindEOW
	KindBOF
	KindEOF
	KindCursor
	KindMOpen
	KindMClose
	KindZOpen
	KindZClose
	KindNOpen
	KindNClose
	KindBackref
	KindZref
	KindStartInvisible // look-around: evaluated eagerly, see exec.go's evalLookaround
	KindStartInvisibleNeg
	KindStartInvisibleBefore
	KindStartInvisibleBeforeNeg
	KindEndInvisible
	KindEndInvisibleNeg
	KindPosAnchor
)

// State is one arena slot. Which fields are meaningful depends on Kind,
// matching the teacher's tagged-union-by-kind State layout.
type State struct {
	Kind Kind

	// KindChar/KindAny: Pred tests the next rune.
	Pred func(rune) bool
	// Lit, valid when hasLit is set, lets compile.go fast-path a single-codepoint
	// literal without going through Pred (used to compute regstart).
	Lit rune
	hasLit bool

	Out, Out1 StateID

	// Group index for MOpen/MClose/ZOpen/ZClose/Backref/Zref.
	Group int

	// PosAnchor operands.
	PosCmp  byte
	PosKind byte
	PosVal  int

	// Look-around operands (StartInvisible* family): LookVal is the
	// fixed look-behind width in bytes, or -1 for unbounded; MatchesEnd
	// is the id of the corresponding EndInvisible state (so the executor
	// knows where the wrapped fragment terminates when recursing).
	LookVal   int
	MatchesEnd StateID
}

// Prog is the compiled result of Compile(pattern, flags): spec.md §3's
// RegexProg.
type Prog struct {
	States   []State
	Start    StateID
	NSubexp  int // highest \(\) group index used, 0..9
	NZsubexp int

	Reganch   bool   // every path begins with BOL/BOF
	Regstart  rune   // single codepoint every match must begin with
	HasRegstart bool
	MatchText string // set when the whole pattern reduces to one literal
	HasZend    bool
	HasBackref bool
	HasZsubexpr bool
	RegFlags  Flags
	Pattern   string
}

// Compile parses and builds an executable Prog for pattern under flags.
func Compile(pattern string, flags Flags) (*Prog, error) {
	postfix, err := Parse(pattern, flags)
	if err != nil {
		return nil, err
	}
	prog, err := buildNFA(postfix, flags)
	if err != nil {
		return nil, err
	}
	prog.Pattern = pattern
	prog.RegFlags = flags
	computeOptimizations(prog)
	return prog, nil
}
