package operator

import (
	"strings"
	"unicode/utf8"

	"github.com/coregx/vimcore/internal/charset"
	"github.com/coregx/vimcore/pos"
)

// OpTilde applies the casing transform implied by oap.Op (TOGGLE/UPPER/
// LOWER/ROT13) to every character in oap's region (ops.c op_tilde /
// swapchars). Iterates by codepoint, not byte, so multi-byte case pairs
// with different UTF-8 lengths are handled by delete-and-reinsert rather
// than in-place byte mutation.
func (e *Engine) OpTilde(oap *pos.OpArg) error {
	if !e.Buf.Modifiable() {
		return &OpError{Op: oap.Op, Err: ErrNotModifiable}
	}
	if err := e.Buf.USave(oap.Start.Lnum-1, oap.End.Lnum+1); err != nil {
		return &OpError{Op: oap.Op, Err: err}
	}
	xform := caseTransform(oap.Op)

	switch oap.MotionType {
	case pos.MTBlock:
		for lnum := oap.Start.Lnum; lnum <= oap.End.Lnum; lnum++ {
			bd := e.blockPrep(oap, lnum, false)
			if bd.IsShort && !bd.IsMax {
				continue
			}
			end := bd.TextCol + bd.TextLen
			e.tildeRange(lnum, bd.TextCol, end, xform)
		}
	case pos.MTLine:
		for lnum := oap.Start.Lnum; lnum <= oap.End.Lnum; lnum++ {
			e.tildeRange(lnum, 0, len(e.Buf.Line(lnum)), xform)
		}
	default:
		if oap.Start.Lnum == oap.End.Lnum {
			end := oap.End.Col
			if oap.Inclusive {
				end++
			}
			e.tildeRange(oap.Start.Lnum, oap.Start.Col, end, xform)
		} else {
			e.tildeRange(oap.Start.Lnum, oap.Start.Col, len(e.Buf.Line(oap.Start.Lnum)), xform)
			for lnum := oap.Start.Lnum + 1; lnum < oap.End.Lnum; lnum++ {
				e.tildeRange(lnum, 0, len(e.Buf.Line(lnum)), xform)
			}
			end := oap.End.Col
			if oap.Inclusive {
				end++
			}
			e.tildeRange(oap.End.Lnum, 0, end, xform)
		}
	}
	return nil
}

func caseTransform(op pos.OpKind) func(rune) rune {
	switch op {
	case pos.OpUpper:
		return charset.ToUpper
	case pos.OpLower:
		return charset.ToLower
	case pos.OpRot13:
		return charset.Rot13
	default:
		return charset.ToggleCase
	}
}

func (e *Engine) tildeRange(lnum, startCol, endCol int, xform func(rune) rune) {
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
	var b strings.Builder
	b.WriteString(line[:startCol])
	i := startCol
	for i < endCol {
		r, size := utf8.DecodeRuneInString(line[i:])
		b.WriteRune(xform(r))
		i += size
	}
	b.WriteString(line[endCol:])
	e.Buf.SetLine(lnum, b.String())
}
