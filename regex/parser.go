package regex

import (
	"strconv"
	"unicode/utf8"
)

const universalMeta = ".*^$[()|+=?{}<>@%&"

func bareSpecialSet(m Magic) string {
	switch m {
	case MagicVeryMagic:
		return universalMeta
	case MagicMagic:
		return ".*^$["
	default: // NoMagic, VeryNoMagic
		return "^$"
	}
}

func isBareSpecial(m Magic, c byte) bool {
	set := bareSpecialSet(m)
	for i := 0; i < len(set); i++ {
		if set[i] == c {
			return true
		}
	}
	return false
}

// parser is a recursive-descent parser over the Vim regex dialect,
// producing a flat postfix Instr stream (spec.md §4.3.1).
type parser struct {
	src      string
	i        int
	magic    Magic
	flags    Flags
	prog     *Program
	groupNum int // next \( group index, 1-based
	zgroupNum int
	err      error
}

// Parse compiles pattern's source into a postfix Program under the given
// flags. It returns a *CompileError on any syntax problem.
func Parse(pattern string, flags Flags) (*Program, error) {
	p := &parser{src: pattern, magic: flags.Magic, flags: flags, prog: newProgram(len(pattern))}
	p.parsePattern()
	if p.err != nil {
		return nil, &CompileError{Pattern: pattern, Pos: p.i, Err: p.err}
	}
	if p.i != len(p.src) {
		return nil, &CompileError{Pattern: pattern, Pos: p.i, Err: ErrUnmatchedParen}
	}
	return p.prog, nil
}

func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *parser) eof() bool { return p.i >= len(p.src) }
func (p *parser) cur() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.i]
}
func (p *parser) at(off int) byte {
	if p.i+off >= len(p.src) {
		return 0
	}
	return p.src[p.i+off]
}

// isMeta classifies the byte at the current position: whether it (possibly
// with a following backslash/char) opens a metachar under the active magic
// level, vs a plain literal rune to decode.
func (p *parser) peekIsAltBar() bool {
	if p.cur() == '\\' && p.at(1) == '|' {
		return true
	}
	if p.magic == MagicVeryMagic && p.cur() == '|' {
		return true
	}
	return false
}

func (p *parser) peekIsAndAmp() bool {
	if p.cur() == '\\' && p.at(1) == '&' {
		return true
	}
	if p.magic == MagicVeryMagic && p.cur() == '&' {
		return true
	}
	return false
}

func (p *parser) peekIsCloseParen() bool {
	if p.cur() == '\\' && p.at(1) == ')' {
		return true
	}
	if p.magic == MagicVeryMagic && p.cur() == ')' {
		return true
	}
	return false
}

// parsePattern ::= branch ('\|' branch)*
func (p *parser) parsePattern() {
	p.parseBranch()
	for p.err == nil && p.peekIsAltBar() {
		p.skipAltBar()
		p.parseBranch()
		p.prog.emit(Instr{Op: pfOr})
	}
}

func (p *parser) skipAltBar() {
	if p.cur() == '\\' {
		p.i += 2
	} else {
		p.i++
	}
}
func (p *parser) skipAndAmp() {
	if p.cur() == '\\' {
		p.i += 2
	} else {
		p.i++
	}
}
func (p *parser) skipCloseParen() {
	if p.cur() == '\\' {
		p.i += 2
	} else {
		p.i++
	}
}

// parseBranch ::= concat ('\&' concat)*
// Every concat but the last is wrapped as a zero-width lookahead assertion
// (emitted immediately, since it is already the most-recent fragment on
// the postfix stream) so that all of them must match at the branch's start
// position, while only the final concat's match is kept.
func (p *parser) parseBranch() {
	p.parseConcat()
	for p.err == nil && p.peekIsAndAmp() {
		p.prog.emit(Instr{Op: pfLookNoWidth})
		p.skipAndAmp()
		p.parseConcat()
		p.prog.emit(Instr{Op: pfConcat})
	}
}

// parseConcat ::= piece+
// consumeMagicSwitch recognizes \v \m \M \V anywhere in the pattern and
// switches the active magic level for everything that follows, the same
// as Vim's own mid-pattern magic overrides. It consumes nothing and
// returns false when the current position isn't one of these four.
func (p *parser) consumeMagicSwitch() bool {
	if p.cur() != '\\' {
		return false
	}
	switch p.at(1) {
	case 'v':
		p.magic = MagicVeryMagic
	case 'm':
		p.magic = MagicMagic
	case 'M':
		p.magic = MagicNoMagic
	case 'V':
		p.magic = MagicVeryNoMagic
	default:
		return false
	}
	p.i += 2
	return true
}

func (p *parser) parseConcat() {
	count := 0
	for p.err == nil && !p.atConcatBoundary() {
		for p.consumeMagicSwitch() {
		}
		if p.atConcatBoundary() {
			break
		}
		p.parsePiece()
		count++
		if p.err != nil {
			return
		}
		if count > 1 {
			p.prog.emit(Instr{Op: pfConcat})
		}
	}
	if count == 0 {
		// empty concat: push a zero-width always-match placeholder via
		// an empty collection match (BOL-like no-op modeled as EOF-free
		// epsilon): reuse pfBOL is wrong; instead emit a trivial class
		// that always passes by using pfClass with nil predicate meaning
		// "epsilon" — handled specially in compile.go.
		p.prog.emit(Instr{Op: pfClass, Class: nil})
	}
}

func (p *parser) atConcatBoundary() bool {
	if p.eof() {
		return true
	}
	if p.peekIsAltBar() || p.peekIsAndAmp() || p.peekIsCloseParen() {
		return true
	}
	return false
}

// parsePiece ::= atom multi?
func (p *parser) parsePiece() {
	atomStart := len(p.prog.Instrs)
	p.parseAtom()
	if p.err != nil {
		return
	}
	p.parseMulti(atomStart)
}

// parseMulti handles *, \+, \=, \?, \{min,max}, and \@<lookaround>,
// duplicating the atom's postfix slice [atomStart:end) as needed.
func (p *parser) parseMulti(atomStart int) {
	for {
		switch {
		case p.cur() == '*' && isBareSpecial(p.magic, '*'):
			p.i++
			p.prog.emit(Instr{Op: pfStar})
		case p.cur() == '\\' && p.at(1) == '+':
			p.i += 2
			p.emitPlus(atomStart)
		case p.magic == MagicVeryMagic && p.cur() == '+':
			p.i++
			p.emitPlus(atomStart)
		case p.cur() == '\\' && (p.at(1) == '=' || p.at(1) == '?'):
			p.i += 2
			p.prog.emit(Instr{Op: pfQuest})
		case p.magic == MagicVeryMagic && (p.cur() == '=' || p.cur() == '?'):
			p.i++
			p.prog.emit(Instr{Op: pfQuest})
		case p.cur() == '\\' && p.at(1) == '{':
			p.i += 2
			p.parseBrace(atomStart, true)
		case p.magic == MagicVeryMagic && p.cur() == '{':
			p.i++
			p.parseBrace(atomStart, false)
		case p.cur() == '\\' && p.at(1) == '@':
			p.i += 2
			p.parseLookaround(atomStart)
		case p.magic == MagicVeryMagic && p.cur() == '@':
			p.i++
			p.parseLookaround(atomStart)
		default:
			return
		}
		if p.err != nil {
			return
		}
	}
}

func (p *parser) emitPlus(atomStart int) {
	// a+  ==  a a*   (duplicate the atom, then star the duplicate, concat)
	seg := append([]Instr(nil), p.prog.Instrs[atomStart:]...)
	for _, in := range seg {
		p.prog.emit(in)
	}
	p.prog.emit(Instr{Op: pfStar})
	p.prog.emit(Instr{Op: pfConcat})
}

// parseBrace handles \{min,max} (escaped) or {min,max} (very magic).
func (p *parser) parseBrace(atomStart int, escaped bool) {
	closeTok := "}"
	_ = closeTok
	numStart := p.i
	for !p.eof() && p.src[p.i] != '}' && !(escaped == false && p.src[p.i] == '}') {
		if escaped && p.cur() == '\\' && p.at(1) == '}' {
			break
		}
		p.i++
	}
	body := p.src[numStart:p.i]
	if escaped {
		if p.cur() == '\\' && p.at(1) == '}' {
			p.i += 2
		}
	} else {
		if p.cur() == '}' {
			p.i++
		}
	}
	minS, maxS, hasComma := splitBrace(body)
	min, max := 0, -1
	if minS != "" {
		v, err := strconv.Atoi(minS)
		if err != nil {
			p.fail(ErrNumericOverflow)
			return
		}
		min = v
	}
	if hasComma {
		if maxS != "" {
			v, err := strconv.Atoi(maxS)
			if err != nil {
				p.fail(ErrNumericOverflow)
				return
			}
			max = v
		}
	} else {
		max = min
	}
	if max != -1 && max < min {
		p.fail(ErrReverseRange)
		return
	}

	seg := append([]Instr(nil), p.prog.Instrs[atomStart:]...)
	// Remove original single copy, we'll rebuild min..max copies.
	p.prog.Instrs = p.prog.Instrs[:atomStart]

	emitted := 0
	for i := 0; i < min; i++ {
		for _, in := range seg {
			p.prog.emit(in)
		}
		emitted++
		if emitted > 1 {
			p.prog.emit(Instr{Op: pfConcat})
		}
	}
	if max == -1 {
		// unbounded tail: one more optional copy that repeats via star
		for _, in := range seg {
			p.prog.emit(in)
		}
		p.prog.emit(Instr{Op: pfStar})
		emitted++
		if emitted > 1 {
			p.prog.emit(Instr{Op: pfConcat})
		}
	} else {
		for i := min; i < max; i++ {
			for _, in := range seg {
				p.prog.emit(in)
			}
			p.prog.emit(Instr{Op: pfQuest})
			emitted++
			if emitted > 1 {
				p.prog.emit(Instr{Op: pfConcat})
			}
		}
	}
	if emitted == 0 {
		// {0,0}: contributes nothing — emit epsilon.
		p.prog.emit(Instr{Op: pfClass, Class: nil})
	}
}

func splitBrace(s string) (min, max string, hasComma bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			return s[:i], s[i+1:], true
		}
	}
	return s, s, false
}

// parseLookaround handles \@= \@! \@<= \@<! \@> applied to the atom
// occupying [atomStart:end).
func (p *parser) parseLookaround(atomStart int) {
	var op pfOp
	val := -1
	switch {
	case p.cur() == '=':
		p.i++
		op = pfLookNoWidth
	case p.cur() == '!':
		p.i++
		op = pfLookNoWidthNeg
	case p.cur() == '>':
		p.i++
		// atomic group \@>: modeled as a no-width-forward wrap that, once
		// matched, commits (no backtracking into it). The executor
		// approximates this as a normal greedy no-width-forward match
		// since the Thompson/PikeVM simulation does not backtrack.
		op = pfLookNoWidth
	case p.cur() == '<' && p.at(1) == '=':
		p.i += 2
		op = pfLookJustBefore
	case p.cur() == '<' && p.at(1) == '!':
		p.i += 2
		op = pfLookJustBeforeNeg
	default:
		p.fail(ErrMisplacedQuant)
		return
	}
	p.prog.emit(Instr{Op: op, LookVal: val})
}

// parseAtom dispatches on the current rune under the active magic level.
func (p *parser) parseAtom() {
	if p.eof() {
		p.fail(ErrMisplacedQuant)
		return
	}
	c := p.cur()
	if c == '\\' {
		p.parseEscape()
		return
	}
	if isBareSpecial(p.magic, c) {
		switch c {
		case '.':
			p.i++
			p.prog.emit(Instr{Op: pfAny})
			return
		case '^':
			p.i++
			p.prog.emit(Instr{Op: pfBOL})
			return
		case '$':
			p.i++
			p.prog.emit(Instr{Op: pfEOL})
			return
		case '[':
			p.parseCollection()
			return
		case '(':
			p.parseGroup()
			return
		case '<':
			p.i++
			p.prog.emit(Instr{Op: pfBOW})
			return
		case '>':
			p.i++
			p.prog.emit(Instr{Op: pfEOW})
			return
		}
		// very-magic-only bare metas that are not atom-openers here
		// (|, &, ), +, =, ?, {, @, %) fall through to be treated
		// literally if reached as an atom start — they are otherwise
		// consumed by parseMulti/parsePattern/parseBranch.
	}
	r, size := utf8.DecodeRuneInString(p.src[p.i:])
	if r == utf8.RuneError && size <= 1 {
		p.fail(ErrMisplacedQuant)
		return
	}
	p.i += size
	p.prog.emit(Instr{Op: pfLit, R: r})
}

func (p *parser) parseGroup() {
	// '(' already confirmed bare (very magic) or via '\(' handled in
	// parseEscape; this path is only reached for bare very-magic '('.
	p.i++
	p.groupNum++
	n := p.groupNum
	if n > 9 {
		p.fail(ErrTooManyGroups)
		return
	}
	p.prog.emit(Instr{Op: pfMopen, Group: n})
	p.parsePattern()
	if p.err != nil {
		return
	}
	if !p.peekIsCloseParen() {
		p.fail(ErrUnmatchedParen)
		return
	}
	p.skipCloseParen()
	p.prog.emit(Instr{Op: pfMclose, Group: n})
	p.prog.emit(Instr{Op: pfConcat})
}

func (p *parser) parseEscape() {
	if p.at(1) == 0 {
		// lone trailing backslash: treat literally
		p.i++
		p.prog.emit(Instr{Op: pfLit, R: '\\'})
		return
	}
	next := p.at(1)
	switch {
	case next == '(':
		p.i += 2
		p.groupNum++
		n := p.groupNum
		if n > 9 {
			p.fail(ErrTooManyGroups)
			return
		}
		p.prog.emit(Instr{Op: pfMopen, Group: n})
		p.parsePattern()
		if p.err != nil {
			return
		}
		if !p.peekIsCloseParen() {
			p.fail(ErrUnmatchedParen)
			return
		}
		p.skipCloseParen()
		p.prog.emit(Instr{Op: pfMclose, Group: n})
		p.prog.emit(Instr{Op: pfConcat})
		return
	case next == '<':
		p.i += 2
		p.prog.emit(Instr{Op: pfBOW})
		return
	case next == '>':
		p.i += 2
		p.prog.emit(Instr{Op: pfEOW})
		return
	case next >= '1' && next <= '9':
		p.i += 2
		p.prog.emit(Instr{Op: pfBackref, Group: int(next - '0')})
		return
	case next == 'z':
		p.parseZEscape()
		return
	case next == '%':
		p.parsePercentEscape()
		return
	}
	if f, neg, ok := classPredicate(next); ok {
		p.i += 2
		p.prog.emit(Instr{Op: pfClass, Class: f, Neg: neg})
		return
	}
	if isBareSpecial(p.magic, next) {
		// escaped bare-special becomes a literal.
		p.i += 2
		p.prog.emit(Instr{Op: pfLit, R: rune(next)})
		return
	}
	// unknown escape: treat the following byte literally (lenient, mirrors
	// the source dialect's tolerance of over-escaping).
	p.i += 2
	p.prog.emit(Instr{Op: pfLit, R: rune(next)})
}

func (p *parser) parseZEscape() {
	// p.cur() == '\\', p.at(1) == 'z'
	third := p.at(2)
	switch {
	case third == '(':
		p.i += 3
		p.zgroupNum++
		n := p.zgroupNum
		p.prog.emit(Instr{Op: pfZopen, Group: n})
		p.parsePattern()
		if p.err != nil {
			return
		}
		if !(p.cur() == '\\' && p.at(1) == ')') {
			p.fail(ErrUnmatchedParen)
			return
		}
		p.i += 2
		p.prog.emit(Instr{Op: pfZclose, Group: n})
		p.prog.emit(Instr{Op: pfConcat})
	case third >= '1' && third <= '9':
		p.i += 3
		p.prog.emit(Instr{Op: pfZref, Group: int(third - '0')})
	case third == 's':
		p.i += 3
		// \zs: "match starts here" — reset submatch 0's start.
		p.prog.emit(Instr{Op: pfMopen, Group: 0})
	case third == 'e':
		p.i += 3
		p.prog.emit(Instr{Op: pfMclose, Group: 0})
	default:
		p.i += 2
		p.prog.emit(Instr{Op: pfLit, R: 'z'})
	}
}

func (p *parser) parsePercentEscape() {
	third := p.at(2)
	switch {
	case third == '(':
		p.i += 3
		p.prog.emit(Instr{Op: pfNopen})
		p.parsePattern()
		if p.err != nil {
			return
		}
		if !(p.cur() == '\\' && p.at(1) == ')') {
			p.fail(ErrUnmatchedParen)
			return
		}
		p.i += 2
		p.prog.emit(Instr{Op: pfNclose})
		p.prog.emit(Instr{Op: pfConcat})
	case third == '^':
		p.i += 3
		p.prog.emit(Instr{Op: pfBOF})
	case third == '$':
		p.i += 3
		p.prog.emit(Instr{Op: pfEOF})
	case third == '#':
		p.i += 3
		p.prog.emit(Instr{Op: pfCursor})
	case third == '[':
		p.i += 3
		p.parseOptChars()
	case third == 'd' || third == 'o' || third == 'x' || third == 'u' || third == 'U':
		p.parseNumericEscape(third)
	case third == '<' || third == '>' || third == '\'' || (third >= '0' && third <= '9'):
		p.parsePositionAnchor()
	default:
		p.i += 2
		p.prog.emit(Instr{Op: pfLit, R: '%'})
	}
}

func (p *parser) parseNumericEscape(kind byte) {
	p.i += 3 // skip \%d / \%o / \%x / \%u / \%U
	start := p.i
	base := 10
	maxDigits := -1
	switch kind {
	case 'o':
		base = 8
	case 'x':
		base = 16
		maxDigits = 2
	case 'u':
		base = 16
		maxDigits = 4
	case 'U':
		base = 16
		maxDigits = 8
	}
	for !p.eof() && isBaseDigit(p.cur(), base) && (maxDigits < 0 || p.i-start < maxDigits) {
		p.i++
	}
	if p.i == start {
		p.fail(ErrNumericOverflow)
		return
	}
	v, err := strconv.ParseInt(p.src[start:p.i], base, 64)
	if err != nil || v > 0x10FFFF {
		p.fail(ErrNumericOverflow)
		return
	}
	p.prog.emit(Instr{Op: pfLit, R: rune(v)})
}

func isBaseDigit(c byte, base int) bool {
	switch base {
	case 8:
		return c >= '0' && c <= '7'
	case 16:
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	default:
		return c >= '0' && c <= '9'
	}
}

// parsePositionAnchor parses \%23l \%<10c \%>5v \%'m into a pfPosAnchor
// instruction. Execution support is documented in exec.go; this keeps the
// parser complete even where the executor's comparison is approximate.
func (p *parser) parsePositionAnchor() {
	p.i += 2 // skip \%
	cmp := byte('=')
	if p.cur() == '<' || p.cur() == '>' {
		cmp = p.cur()
		p.i++
	}
	if p.cur() == '\'' {
		p.i++
		mark := p.cur()
		p.i++
		p.prog.emit(Instr{Op: pfPosAnchor, PosCmp: cmp, PosKind: 'm', PosVal: int(mark)})
		return
	}
	start := p.i
	for !p.eof() && p.cur() >= '0' && p.cur() <= '9' {
		p.i++
	}
	val, _ := strconv.Atoi(p.src[start:p.i])
	kind := byte('l')
	if p.cur() == 'l' || p.cur() == 'c' || p.cur() == 'v' {
		kind = p.cur()
		p.i++
	}
	p.prog.emit(Instr{Op: pfPosAnchor, PosCmp: cmp, PosKind: kind, PosVal: val})
}

// parseOptChars handles \%[abc] -> optional sequence of literal atoms.
func (p *parser) parseOptChars() {
	start := p.i
	for !p.eof() && p.cur() != ']' {
		p.i++
	}
	if p.eof() {
		p.fail(ErrUnterminatedColl)
		return
	}
	chars := p.src[start:p.i]
	p.i++ // skip ]
	count := utf8.RuneCountInString(chars)
	for _, r := range chars {
		p.prog.emit(Instr{Op: pfLit, R: r})
	}
	p.prog.emit(Instr{Op: pfOptChars, Count: count})
}

// parseCollection parses a `[…]` bracket expression into a pfColl atom.
func (p *parser) parseCollection() {
	p.i++ // skip '['
	coll := &Collection{}
	if p.cur() == '^' {
		coll.Neg = true
		p.i++
	}
	first := true
	for {
		if p.eof() {
			p.fail(ErrUnterminatedColl)
			return
		}
		if p.cur() == ']' && !first {
			p.i++
			break
		}
		first = false
		if p.cur() == '[' && p.at(1) == ':' {
			end := indexFrom(p.src, p.i+2, ":]")
			if end < 0 {
				p.fail(ErrUnterminatedColl)
				return
			}
			name := p.src[p.i+2 : end]
			if f, neg, ok := classPredicate(posixLetter(name)); ok {
				if neg {
					coll.Classes = append(coll.Classes, func(r rune) bool { return !f(r) })
				} else {
					coll.Classes = append(coll.Classes, f)
				}
			}
			p.i = end + 2
			continue
		}
		if p.cur() == '[' && p.at(1) == '=' {
			end := indexFrom(p.src, p.i+2, "=]")
			if end < 0 {
				p.fail(ErrUnterminatedColl)
				return
			}
			base, _ := utf8.DecodeRuneInString(p.src[p.i+2 : end])
			for _, r := range equivClass(base) {
				coll.Ranges = append(coll.Ranges, RuneRange{r, r})
			}
			p.i = end + 2
			continue
		}
		lo, size := utf8.DecodeRuneInString(p.src[p.i:])
		p.i += size
		if p.cur() == '-' && p.at(1) != ']' && p.at(1) != 0 {
			p.i++
			hi, size2 := utf8.DecodeRuneInString(p.src[p.i:])
			p.i += size2
			coll.Ranges = append(coll.Ranges, RuneRange{lo, hi})
		} else {
			coll.Ranges = append(coll.Ranges, RuneRange{lo, lo})
		}
	}
	p.prog.emit(Instr{Op: pfColl, Coll: coll})
}

func indexFrom(s string, from int, sub string) int {
	idx := -1
	for i := from; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			idx = i
			break
		}
	}
	return idx
}

func posixLetter(name string) byte {
	switch name {
	case "alpha":
		return 'a'
	case "digit":
		return 'd'
	case "lower":
		return 'l'
	case "upper":
		return 'u'
	case "space":
		return 's'
	case "alnum":
		return 'i'
	case "xdigit":
		return 'x'
	default:
		return 0
	}
}
