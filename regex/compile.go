package regex

// patch is one unresolved outgoing edge: state S's Out (which==0) or Out1
// (which==1) field needs to be filled in once the successor is known.
// This is the explicit PatchList spec.md §9 asks for in place of the
// source's union-aliased Ptrlist trick.
type patch struct {
	state StateID
	which int
}

type patchList []patch

func (pl patchList) patch(b *builder, target StateID) {
	for _, p := range pl {
		if p.which == 0 {
			b.states[p.state].Out = target
		} else {
			b.states[p.state].Out1 = target
		}
	}
}

func appendPatch(a, b patchList) patchList {
	out := make(patchList, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// frag is a Thompson-construction fragment: an entry state plus the list
// of dangling out-edges still to be patched.
type frag struct {
	start StateID
	out   patchList
}

type builder struct {
	states []State
}

func (b *builder) alloc(s State) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id
}

// buildNFA runs the postfix->NFA Thompson construction of spec.md §4.3.2
// over the parser's Instr stream using an explicit fragment stack.
func buildNFA(prog *Program, flags Flags) (*Prog, error) {
	b := &builder{states: make([]State, 0, len(prog.Instrs)*2+4)}
	var stack []frag
	maxGroup := 0
	hasBackref := false
	hasZsub := false

	push := func(f frag) { stack = append(stack, f) }
	pop := func() frag {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f
	}

	for _, in := range prog.Instrs {
		switch in.Op {
		case pfLit:
			r := in.R
			pred := literalPred(r, flags.IgnoreCase)
			id := b.alloc(State{Kind: KindChar, Pred: pred, Lit: r, hasLit: true})
			push(frag{start: id, out: patchList{{id, 0}}})

		case pfAny:
			id := b.alloc(State{Kind: KindAny})
			push(frag{start: id, out: patchList{{id, 0}}})

		case pfClass:
			if in.Class == nil {
				// epsilon placeholder (empty concat / {0,0}).
				id := b.alloc(State{Kind: KindEpsilon})
				push(frag{start: id, out: patchList{{id, 0}}})
				continue
			}
			pred := in.Class
			if in.Neg {
				inner := pred
				pred = func(r rune) bool { return !inner(r) }
			}
			id := b.alloc(State{Kind: KindChar, Pred: pred})
			push(frag{start: id, out: patchList{{id, 0}}})

		case pfColl:
			coll := in.Coll
			id := b.alloc(State{Kind: KindChar, Pred: coll.Matches})
			push(frag{start: id, out: patchList{{id, 0}}})

		case pfBOL, pfEOL, pfBOW, pfEOW, pfBOF, pfEOF, pfCursor:
			id := b.alloc(State{Kind: anchorKind(in.Op)})
			push(frag{start: id, out: patchList{{id, 0}}})

		case pfPosAnchor:
			id := b.alloc(State{Kind: KindPosAnchor, PosCmp: in.PosCmp, PosKind: in.PosKind, PosVal: in.PosVal})
			push(frag{start: id, out: patchList{{id, 0}}})

		case pfConcat:
			b2 := pop()
			a := pop()
			a.out.patch(b, b2.start)
			push(frag{start: a.start, out: b2.out})

		case pfOr:
			b2 := pop()
			a := pop()
			id := b.alloc(State{Kind: KindSplit, Out: a.start, Out1: b2.start})
			push(frag{start: id, out: appendPatch(a.out, b2.out)})

		case pfStar:
			a := pop()
			id := b.alloc(State{Kind: KindSplit, Out: a.start})
			a.out.patch(b, id)
			push(frag{start: id, out: patchList{{id, 1}}})

		case pfStarNG:
			a := pop()
			id := b.alloc(State{Kind: KindSplit, Out1: a.start})
			a.out.patch(b, id)
			push(frag{start: id, out: patchList{{id, 0}}})

		case pfQuest:
			a := pop()
			id := b.alloc(State{Kind: KindSplit, Out: a.start})
			push(frag{start: id, out: appendPatch(a.out, patchList{{id, 1}})})

		case pfQuestNG:
			a := pop()
			id := b.alloc(State{Kind: KindSplit, Out1: a.start})
			push(frag{start: id, out: appendPatch(a.out, patchList{{id, 0}})})

		case pfMopen:
			id := b.alloc(State{Kind: KindMOpen, Group: in.Group})
			if in.Group > maxGroup {
				maxGroup = in.Group
			}
			push(frag{start: id, out: patchList{{id, 0}}})

		case pfMclose:
			a := pop()
			id := b.alloc(State{Kind: KindMClose, Group: in.Group})
			a.out.patch(b, id)
			push(frag{start: a.start, out: patchList{{id, 0}}})

		case pfZopen, pfZclose:
			a := pop()
			kind := KindZOpen
			if in.Op == pfZclose {
				kind = KindZClose
				hasZsub = true
			}
			id := b.alloc(State{Kind: kind, Group: in.Group, Out: a.start})
			push(frag{start: id, out: a.out})

		case pfNopen, pfNclose:
			a := pop()
			kind := KindNOpen
			if in.Op == pfNclose {
				kind = KindNClose
			}
			id := b.alloc(State{Kind: kind, Out: a.start})
			push(frag{start: id, out: a.out})

		case pfBackref:
			hasBackref = true
			id := b.alloc(State{Kind: KindBackref, Group: in.Group})
			push(frag{start: id, out: patchList{{id, 0}}})

		case pfZref:
			hasBackref = true
			id := b.alloc(State{Kind: KindZref, Group: in.Group})
			push(frag{start: id, out: patchList{{id, 0}}})

		case pfLookNoWidth, pfLookNoWidthNeg, pfLookJustBefore, pfLookJustBeforeNeg, pfLookLikePattern:
			a := pop()
			kind, negKind := lookKinds(in.Op)
			end := b.alloc(State{Kind: negKind})
			a.out.patch(b, end)
			start := b.alloc(State{Kind: kind, Out: a.start, LookVal: in.LookVal, MatchesEnd: end})
			push(frag{start: start, out: patchList{{end, 0}}})

		case pfOptChars:
			// Pop Count literal fragments and build a right-leaning chain
			// of optional splits in which each atom can only follow the
			// one before it: (a(b(c...)?)?)?
			n := in.Count
			frags := make([]frag, n)
			for i := n - 1; i >= 0; i-- {
				frags[i] = pop()
			}
			var acc *frag
			for i := n - 1; i >= 0; i-- {
				f := frags[i]
				var combinedStart StateID
				var combinedOut patchList
				if acc != nil {
					f.out.patch(b, acc.start)
					combinedStart = f.start
					combinedOut = acc.out
				} else {
					combinedStart = f.start
					combinedOut = f.out
				}
				id := b.alloc(State{Kind: KindSplit, Out: combinedStart})
				wrapped := frag{start: id, out: appendPatch(patchList{{id, 1}}, combinedOut)}
				acc = &wrapped
			}
			push(*acc)

		default:
			// unreached opcode kinds (literal-escape-only helpers).
		}
	}

	if len(stack) != 1 {
		return nil, &CompileError{Err: ErrUnmatchedParen}
	}
	final := pop()
	matchID := b.alloc(State{Kind: KindMatch})
	final.out.patch(b, matchID)

	return &Prog{
		States:      b.states,
		Start:       final.start,
		NSubexp:     maxGroup,
		HasBackref:  hasBackref,
		HasZsubexpr: hasZsub,
	}, nil
}

func anchorKind(op pfOp) Kind {
	switch op {
	case pfBOL:
		return KindBOL
	case pfEOL:
		return KindEOL
	case pfBOW:
		return KindBOW
	case pfEOW:
		return KindEOW
	case pfBOF:
		return KindBOF
	case pfEOF:
		return KindEOF
	case pfCursor:
		return KindCursor
	}
	return KindEpsilon
}

func lookKinds(op pfOp) (start, end Kind) {
	switch op {
	case pfLookNoWidth:
		return KindStartInvisible, KindEndInvisible
	case pfLookNoWidthNeg:
		return KindStartInvisibleNeg, KindEndInvisibleNeg
	case pfLookJustBefore:
		return KindStartInvisibleBefore, KindEndInvisible
	case pfLookJustBeforeNeg:
		return KindStartInvisibleBeforeNeg, KindEndInvisibleNeg
	default:
		return KindStartInvisible, KindEndInvisible
	}
}

func literalPred(r rune, ignoreCase bool) func(rune) bool {
	if !ignoreCase {
		return func(x rune) bool { return x == r }
	}
	lo, up := foldPair(r)
	return func(x rune) bool { return x == lo || x == up }
}

func foldPair(r rune) (lo, up rune) {
	switch {
	case r >= 'a' && r <= 'z':
		return r, r - ('a' - 'A')
	case r >= 'A' && r <= 'Z':
		return r + ('a' - 'A'), r
	default:
		return r, r
	}
}

// computeOptimizations fills in Reganch/Regstart/MatchText (spec.md
// §4.3.2's optimization hints), walking the built arena starting at Start.
func computeOptimizations(p *Prog) {
	p.Reganch = pathAllAnchored(p, p.Start, map[StateID]bool{})
	if r, ok := singleStartRune(p, p.Start, map[StateID]bool{}); ok {
		p.Regstart = r
		p.HasRegstart = true
	}
	if lit, ok := literalChain(p); ok {
		p.MatchText = lit
	}
}

func pathAllAnchored(p *Prog, id StateID, seen map[StateID]bool) bool {
	if seen[id] {
		return true
	}
	seen[id] = true
	s := &p.States[id]
	switch s.Kind {
	case KindBOL, KindBOF:
		return true
	case KindMOpen, KindMClose, KindZOpen, KindZClose, KindNOpen, KindNClose, KindEpsilon:
		return pathAllAnchored(p, s.Out, seen)
	case KindSplit:
		return pathAllAnchored(p, s.Out, seen) && pathAllAnchored(p, s.Out1, seen)
	default:
		return false
	}
}

func singleStartRune(p *Prog, id StateID, seen map[StateID]bool) (rune, bool) {
	if seen[id] {
		return 0, false
	}
	seen[id] = true
	s := &p.States[id]
	switch s.Kind {
	case KindChar:
		if s.hasLit {
			return s.Lit, true
		}
		return 0, false
	case KindMOpen, KindMClose, KindZOpen, KindZClose, KindNOpen, KindNClose, KindEpsilon, KindBOL, KindBOF:
		return singleStartRune(p, s.Out, seen)
	case KindSplit:
		r1, ok1 := singleStartRune(p, s.Out, seen)
		r2, ok2 := singleStartRune(p, s.Out1, seen)
		if ok1 && ok2 && r1 == r2 {
			return r1, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// literalChain detects the degenerate case MOPEN0 -> lit -> lit -> ... ->
// MCLOSE0 -> MATCH and returns the equivalent literal string.
func literalChain(p *Prog) (string, bool) {
	id := p.Start
	var runes []rune
	for {
		s := &p.States[id]
		switch s.Kind {
		case KindMOpen, KindMClose, KindNOpen, KindNClose, KindZOpen, KindZClose, KindEpsilon:
			id = s.Out
			continue
		case KindChar:
			if !s.hasLit {
				return "", false
			}
			runes = append(runes, s.Lit)
			id = s.Out
			continue
		case KindMatch:
			if len(runes) == 0 {
				return "", false
			}
			return string(runes), true
		default:
			return "", false
		}
	}
}
