package operator

import (
	"unicode/utf8"

	"github.com/coregx/vimcore/pos"
)

// blockPrep walks lnum's text with a per-codepoint char-size iterator
// (respecting TAB stops / vartabstop) to determine exactly where a
// block-wise region [oap.StartVcol, oap.EndVcol] intersects the line,
// mirroring ops.c's block_prep (spec.md §4.1 "Key cross-cutting
// algorithms"). isDel additionally asks for one-past-end columns to
// include a trailing partial wide character, matching op_delete's needs.
func (e *Engine) blockPrep(oap *pos.OpArg, lnum int, isDel bool) pos.BlockDef {
	line := e.Buf.Line(lnum)
	ts := e.Opts.tabStops()

	var bd pos.BlockDef
	bd.StartVcol = oap.StartVcol
	bd.EndVcol = oap.EndVcol
	bd.IsMax = oap.EndVcol == maxCol

	startCol, startCharVcol, startCharW := pos.ByteColAtVcol(line, oap.StartVcol, ts)
	if startCharVcol < oap.StartVcol && startCharW > 0 {
		// left edge falls inside a multi-column character (TAB or wide
		// rune): pad with spaces for the portion inside the block.
		bd.StartSpaces = startCharVcol + startCharW - oap.StartVcol
		bd.PreWhitesp = oap.StartVcol - startCharVcol
	}
	bd.StartCharVcols = startCharW
	bd.TextCol = startCol

	if startCol >= len(line) {
		bd.IsShort = true
		bd.TextLen = 0
		return bd
	}

	if bd.IsMax {
		bd.TextLen = len(line) - startCol
		bd.IsOneChar = false
		return bd
	}

	endCol, endCharVcol, endCharW := pos.ByteColAtVcol(line, oap.EndVcol+1, ts)
	if endCol >= len(line) {
		endCol = len(line)
	} else if endCharVcol <= oap.EndVcol && endCharW > 0 {
		// right edge falls inside a multi-column character: pad the
		// remainder with endspaces; a delete also takes the whole character.
		bd.EndSpaces = endCharVcol + endCharW - oap.EndVcol - 1
		_, size := utf8.DecodeRuneInString(line[endCol:])
		if isDel {
			endCol += size
		}
	}
	bd.EndCharVcols = endCharW
	bd.TextLen = endCol - startCol
	bd.IsOneChar = bd.StartCharVcols > 0 && startCol+utf8SizeAt(line, startCol) >= endCol
	return bd
}

// maxCol stands in for MAXCOL: an end-vcol that means "through end of
// line" regardless of the line's actual width.
const maxCol = 1<<31 - 1

func utf8SizeAt(s string, i int) int {
	if i >= len(s) {
		return 1
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return size
}

// mbAdjustOpend advances oap.End.Col to include the trailing bytes of a
// multi-byte character for inclusive char-wise operators (ops.c
// mb_adjust_opend).
func mbAdjustOpend(oap *pos.OpArg, line string) {
	if !oap.Inclusive || oap.End.Col >= len(line) {
		return
	}
	_, size := utf8.DecodeRuneInString(line[oap.End.Col:])
	if size > 1 {
		oap.End.Col += size - 1
	}
}

// adjustCursorEOL steps the cursor back one codepoint when it sits one
// past end-of-line on a non-empty line and virtualedit does not permit
// "onemore" (and we are not in insert/replace mode). Under virtualedit=all
// it instead records the stepped-over character's width in Coladd rather
// than moving the byte column (ops.c adjust_cursor_eol).
func (e *Engine) adjustCursorEOL() {
	cur := e.Cur.Get()
	line := e.Buf.Line(cur.Lnum)
	if len(line) == 0 || cur.Col < len(line) {
		return
	}
	ve := e.Cur.VirtualEdit()
	if ve&VirtualEditOnemore != 0 || ve&VirtualEditInsert != 0 {
		return
	}
	// find the start byte of the last codepoint
	prev := cur.Col - 1
	for prev > 0 && isUTF8Continuation(line[prev]) {
		prev--
	}
	r, size := utf8.DecodeRuneInString(line[prev:])
	if ve&VirtualEditAll != 0 {
		cur.Coladd = pos.CharVcols(r, 0, e.Opts.tabStops())
		e.Cur.Set(cur)
		return
	}
	_ = size
	cur.Col = prev
	cur.Coladd = 0
	e.Cur.Set(cur)
}

func isUTF8Continuation(b byte) bool { return b&0xC0 == 0x80 }
