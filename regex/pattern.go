// Package regex implements the Vim-dialect NFA regular-expression engine
// described in spec.md §4.3: a Thompson-style VM compiling a postfix
// program from the pattern source, building an NFA over an index-addressed
// state arena (per spec.md §9's "arena + integer indices" design note, the
// same shape the teacher's nfa.StateID arena already uses), then executing
// it with a two-list simulation supporting submatch capture, zero-width
// lookaround, backreferences, and multi-line matching.
package regex

// Magic is the magicness context controlling which characters are
// metacharacters without escaping (spec.md §4.3.1).
type Magic uint8

const (
	MagicVeryNoMagic Magic = iota // \V
	MagicNoMagic                  // \M
	MagicMagic                    // \m (default)
	MagicVeryMagic                // \v
)

// Flags mirrors the compile-time regflags the caller passes to Compile.
type Flags struct {
	Magic        Magic
	IgnoreCase   bool
	MultiLine    bool // pattern may match across buffer lines
	KeepCase     bool // \c / \C override already resolved by caller
}

// DefaultFlags returns the conventional 'magic' dialect with case
// sensitivity left to the pattern's own \c/\C markers.
func DefaultFlags() Flags { return Flags{Magic: MagicMagic} }
