package regex

import "github.com/coregx/vimcore/internal/charset"

// pfOp enumerates the postfix opcode set the parser emits and compile.go
// consumes to drive Thompson construction (spec.md §4.3.1/§4.3.2).
type pfOp uint8

const (
	pfLit pfOp = iota
	pfAny
	pfClass
	pfColl
	pfBOL
	pfEOL
	pfBOW
	pfEOW
	pfBOF
	pfEOF
	pfConcat
	pfOr
	pfStar
	pfStarNG
	pfQuest
	pfQuestNG
	pfMopen
	pfMclose
	pfZopen
	pfZclose
	pfNopen
	pfNclose
	pfBackref
	pfZref
	pfLookNoWidth
	pfLookNoWidthNeg
	pfLookJustBefore
	pfLookJustBeforeNeg
	pfLookLikePattern
	pfOptChars
	pfPosAnchor
	pfCursor
)

// RuneRange is an inclusive codepoint range used by bracket collections.
type RuneRange struct{ Lo, Hi rune }

// Collection is a parsed `[…]` bracket expression.
type Collection struct {
	Neg     bool
	Ranges  []RuneRange
	Classes []func(rune) bool
}

// Matches reports whether r satisfies the collection, honoring negation.
func (c *Collection) Matches(r rune) bool {
	hit := false
	for _, rr := range c.Ranges {
		if r >= rr.Lo && r <= rr.Hi {
			hit = true
			break
		}
	}
	if !hit {
		for _, f := range c.Classes {
			if f(r) {
				hit = true
				break
			}
		}
	}
	if c.Neg {
		return !hit
	}
	return hit
}

// Instr is one postfix instruction.
type Instr struct {
	Op    pfOp
	R     rune
	Class func(rune) bool
	Neg   bool
	Coll  *Collection
	Group int // group index for M/Z-open/close and backrefs
	Count int // operand count for pfOptChars

	LookVal int  // byte/line offset for JustBefore variants; -1 = unbounded
	PosCmp  byte // '<', '>', '='
	PosKind byte // 'l' line, 'c' col, 'v' vcol, 'm' mark
	PosVal  int
}

// Program is the flat postfix instruction stream produced by the parser.
// It grows geometrically (spec.md §4.3.1: "starts at ~25x(pattern_len+1),
// grown 1.5x when exhausted").
type Program struct {
	Instrs []Instr
}

func newProgram(patternLen int) *Program {
	cap := 25 * (patternLen + 1)
	if cap < 16 {
		cap = 16
	}
	return &Program{Instrs: make([]Instr, 0, cap)}
}

func (p *Program) emit(in Instr) int {
	if len(p.Instrs) == cap(p.Instrs) {
		grown := make([]Instr, len(p.Instrs), cap(p.Instrs)*3/2+16)
		copy(grown, p.Instrs)
		p.Instrs = grown
	}
	p.Instrs = append(p.Instrs, in)
	return len(p.Instrs) - 1
}

// classPredicate resolves a \w-style escape letter for the lexer.
func classPredicate(letter byte) (func(rune) bool, bool, bool) {
	return charset.ClassPredicate(letter)
}
