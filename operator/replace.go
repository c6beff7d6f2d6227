package operator

import (
	"strings"
	"unicode/utf8"

	"github.com/coregx/vimcore/pos"
)

// OpReplace overwrites every character in oap's region with ch (ops.c
// op_replace). ch == '\r' or '\n' splits the line instead of inserting a
// literal control character. Block-wise replace preserves the block's
// geometry, padding with spaces where the block starts or ends inside a
// TAB; a double-wide ch can only replace an even number of cells, so an
// odd block width gets one extra EndSpaces pad.
func (e *Engine) OpReplace(oap *pos.OpArg, ch rune) error {
	if !e.Buf.Modifiable() {
		return &OpError{Op: oap.Op, Err: ErrNotModifiable}
	}
	if err := e.Buf.USave(oap.Start.Lnum-1, oap.End.Lnum+1); err != nil {
		return &OpError{Op: oap.Op, Err: err}
	}

	if ch == '\r' || ch == '\n' {
		return e.replaceWithNewline(oap)
	}

	switch oap.MotionType {
	case pos.MTBlock:
		e.replaceBlock(oap, ch)
	case pos.MTLine:
		for lnum := oap.Start.Lnum; lnum <= oap.End.Lnum; lnum++ {
			e.replaceRange(lnum, 0, len(e.Buf.Line(lnum)), ch)
		}
	default:
		if oap.Start.Lnum == oap.End.Lnum {
			end := oap.End.Col
			if oap.Inclusive {
				end++
			}
			e.replaceRange(oap.Start.Lnum, oap.Start.Col, end, ch)
		} else {
			e.replaceRange(oap.Start.Lnum, oap.Start.Col, len(e.Buf.Line(oap.Start.Lnum)), ch)
			for lnum := oap.Start.Lnum + 1; lnum < oap.End.Lnum; lnum++ {
				e.replaceRange(lnum, 0, len(e.Buf.Line(lnum)), ch)
			}
			end := oap.End.Col
			if oap.Inclusive {
				end++
			}
			e.replaceRange(oap.End.Lnum, 0, end, ch)
		}
	}
	return nil
}

// replaceRange overwrites line[startCol:endCol] with rune ch repeated
// once per codepoint covered (not per byte), preserving the line's total
// character count even when ch's UTF-8 length differs from the replaced
// characters'.
func (e *Engine) replaceRange(lnum, startCol, endCol int, ch rune) {
	line := e.Buf.Line(lnum)
	if startCol > len(line) {
		startCol = len(line)
	}
	if endCol > len(line) {
		endCol = len(line)
	}
	if startCol >= endCol {
		return
	}
	n := utf8.RuneCountInString(line[startCol:endCol])
	e.Buf.SetLine(lnum, line[:startCol]+strings.Repeat(string(ch), n)+line[endCol:])
}

// replaceWithNewline splits every covered line at its right edge,
// modeling replace-with-CR/NL as a line split rather than a literal
// control byte.
func (e *Engine) replaceWithNewline(oap *pos.OpArg) error {
	for lnum := oap.End.Lnum; lnum >= oap.Start.Lnum; lnum-- {
		line := e.Buf.Line(lnum)
		col := 0
		if lnum == oap.Start.Lnum {
			col = oap.Start.Col
		}
		if col > len(line) {
			col = len(line)
		}
		end := len(line)
		if lnum == oap.End.Lnum {
			end = oap.End.Col
			if oap.Inclusive {
				end++
			}
			if end > len(line) {
				end = len(line)
			}
			if end < col {
				end = col
			}
		}
		// A zero-width exclusive region (col == end) is a valid split
		// point, not a no-op: it drops no text and still breaks the
		// line at col.
		e.Buf.SetLine(lnum, line[:col])
		e.Buf.AppendLine(lnum, line[end:])
	}
	return nil
}

func (e *Engine) replaceBlock(oap *pos.OpArg, ch rune) {
	for lnum := oap.Start.Lnum; lnum <= oap.End.Lnum; lnum++ {
		bd := e.blockPrep(oap, lnum, true)
		if bd.IsShort && !bd.IsMax {
			continue
		}
		line := e.Buf.Line(lnum)
		end := bd.TextCol + bd.TextLen
		if end > len(line) {
			end = len(line)
		}
		startSpaces, endSpaces := bd.StartSpaces, bd.EndSpaces
		if (oap.EndVcol-oap.StartVcol+1)%2 != 0 && pos.RuneWidth(ch) == 2 {
			endSpaces++
		}
		n := utf8.RuneCountInString(line[bd.TextCol:end])
		replaced := strings.Repeat(string(ch), n)
		e.Buf.SetLine(lnum, line[:bd.TextCol]+
			strings.Repeat(" ", startSpaces)+replaced+strings.Repeat(" ", endSpaces)+
			line[end:])
	}
}
