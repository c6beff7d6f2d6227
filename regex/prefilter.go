package regex

import "github.com/coregx/ahocorasick"

// Prefilter narrows down candidate match start positions before the full
// NFA simulation runs, the same role the teacher's prefilter package plays
// for its DFA/meta strategies (spec.md §4.3.2 "Regstart/MatchText").
// vimcore only needs the literal-set case: a pattern that is an
// alternation of bare literals (`\vfoo|bar|baz`) is common in Vim syntax
// patterns and searches, and Aho-Corasick answers "where's the next hit"
// in one pass instead of running the NFA thread list at every offset.
type Prefilter struct {
	auto *ahocorasick.Automaton
}

// BuildPrefilter inspects prog and returns a Prefilter when the compiled
// pattern reduces to a flat set of literal alternatives, or nil otherwise.
func BuildPrefilter(prog *Prog) *Prefilter {
	lits, ok := literalAlternatives(prog)
	if !ok || len(lits) < 2 {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	for _, l := range lits {
		builder.AddPattern([]byte(l))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &Prefilter{auto: auto}
}

// Next returns the offset of the next place a literal branch could begin
// at or after from, or -1 if none remains in haystack.
func (pf *Prefilter) Next(haystack []byte, from int) int {
	if pf == nil || pf.auto == nil {
		return from
	}
	if from >= len(haystack) {
		return -1
	}
	m := pf.auto.Find(haystack, from)
	if m == nil {
		return -1
	}
	return m.Start
}

// literalAlternatives walks a Start -(split)-> lit-chain,lit-chain,...
// shape and extracts the flat literal set, failing closed (ok=false) the
// moment it sees anything else (captures, classes, anchors).
func literalAlternatives(p *Prog) ([]string, bool) {
	var lits []string
	seen := map[StateID]bool{}
	var walk func(id StateID) bool
	walk = func(id StateID) bool {
		if seen[id] {
			return false
		}
		seen[id] = true
		s := &p.States[id]
		switch s.Kind {
		case KindSplit:
			return walk(s.Out) && walk(s.Out1)
		case KindMOpen, KindMClose, KindNOpen, KindNClose, KindEpsilon:
			return walk(s.Out)
		default:
			lit, ok := literalRun(p, id)
			if !ok {
				return false
			}
			lits = append(lits, lit)
			return true
		}
	}
	if !walk(p.Start) {
		return nil, false
	}
	return lits, true
}

func literalRun(p *Prog, id StateID) (string, bool) {
	var runes []rune
	for {
		s := &p.States[id]
		switch s.Kind {
		case KindChar:
			if !s.hasLit {
				return "", false
			}
			runes = append(runes, s.Lit)
			id = s.Out
		case KindMOpen, KindMClose, KindNOpen, KindNClose, KindEpsilon:
			id = s.Out
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
