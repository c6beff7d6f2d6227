package pos

import "unicode/utf8"

// TabStops models the `tabstop`/`vartabstop` option pair: either a single
// fixed width, or an explicit list of stops consumed left to right with the
// last entry repeating indefinitely (vim's `vartabstop` semantics).
type TabStops struct {
	Width int   // used when Stops is empty
	Stops []int // vartabstop list; last element repeats
}

// stopAt returns the tab width to apply when the cursor sits at virtual
// column vcol (0-based).
func (t TabStops) stopAt(vcol int) int {
	if len(t.Stops) == 0 {
		if t.Width <= 0 {
			return 8
		}
		return t.Width
	}
	col := 0
	for i, w := range t.Stops {
		if vcol < col+w || i == len(t.Stops)-1 {
			return w
		}
		col += w
	}
	return t.Stops[len(t.Stops)-1]
}

// CharVcols returns the number of screen columns consumed by the rune r
// when it starts at virtual column vcol. A TAB expands to the next tab
// stop; everything else uses its display width (double for East-Asian
// wide runes, one otherwise — composing marks are handled by callers via
// the NFA_COMPOSING machinery, not here).
func CharVcols(r rune, vcol int, ts TabStops) int {
	switch r {
	case '\t':
		w := ts.stopAt(vcol)
		return w - (vcol % w)
	case 0:
		return 1
	default:
		if r < 0x20 {
			return 2 // ^X style caret notation
		}
		return RuneWidth(r)
	}
}

// RuneWidth is a minimal East-Asian-width oracle: wide/fullwidth ranges
// return 2, everything else returns 1. This mirrors the fixed-table
// approach the original editor uses (no ICU/Unicode database dependency).
func RuneWidth(r rune) int {
	switch {
	case r >= 0x1100 && r <= 0x115F,
		r == 0x2329, r == 0x232A,
		r >= 0x2E80 && r <= 0xA4CF && r != 0x303F,
		r >= 0xAC00 && r <= 0xD7A3,
		r >= 0xF900 && r <= 0xFAFF,
		r >= 0xFE30 && r <= 0xFE6F,
		r >= 0xFF00 && r <= 0xFF60,
		r >= 0xFFE0 && r <= 0xFFE6,
		r >= 0x20000 && r <= 0x3FFFD:
		return 2
	default:
		return 1
	}
}

// StringVcol computes the virtual column reached after scanning the first
// byteCol bytes of line. startVcol is the virtual column of byte 0.
func StringVcol(line string, byteCol int, startVcol int, ts TabStops) int {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	vcol := startVcol
	i := 0
	for i < byteCol {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r == utf8.RuneError && size <= 1 {
			vcol++
			i++
			continue
		}
		vcol += CharVcols(r, vcol, ts)
		i += size
	}
	return vcol
}

// ByteColAtVcol returns the byte offset of the first character whose
// virtual-column span contains vcol, along with the virtual column at
// which that character starts and the number of columns it occupies.
// If vcol lies past the end of line, returns (len(line), vcol-at-eol, 0).
func ByteColAtVcol(line string, vcol int, ts TabStops) (byteCol, charVcol, charWidth int) {
	cur := 0
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r == utf8.RuneError && size <= 1 {
			size = 1
			r = rune(line[i])
		}
		w := CharVcols(r, cur, ts)
		if cur+w > vcol {
			return i, cur, w
		}
		cur += w
		i += size
	}
	return len(line), cur, 0
}
