package operator

import (
	"strings"

	"github.com/coregx/vimcore/pos"
	"github.com/coregx/vimcore/register"
)

// OpDelete applies a delete/change over oap's region (ops.c op_delete).
// Fails with ErrNotModifiable on a read-only buffer. An empty, non-visual
// region is a cursor-only undo save (no text change). A named register
// receives the deleted text. Register "1" also receives it, with "1".."9"
// shifted down, when the deletion is line-wise, block-wise, spans more
// than one line, or oap.UseRegOne is set. A char-wise deletion within a
// single line goes to the small-delete register "-", matching the open
// question recorded in spec.md §9: the source writes "-" whenever the
// delete is char-wise and single-line regardless of whether a register
// was named, and vimcore preserves that observed behavior.
func (e *Engine) OpDelete(oap *pos.OpArg) (Result, error) {
	if !e.Buf.Modifiable() {
		return Result{}, &OpError{Op: oap.Op, Err: ErrNotModifiable}
	}
	if oap.Empty && !oap.IsVisual {
		_ = e.Buf.USave(oap.Start.Lnum, oap.Start.Lnum)
		return Result{MarkStart: oap.Start, MarkEnd: oap.Start}, nil
	}

	if err := e.Buf.USave(oap.Start.Lnum-1, oap.End.Lnum+1); err != nil {
		return Result{}, &OpError{Op: oap.Op, Err: err}
	}

	rows, mt, width := e.collectRegion(oap)
	mt = promoteLinewise(oap, mt)

	if oap.RegName != 0 && register.ValidYankReg(oap.RegName, true) {
		e.writeRegisterSilent(oap.RegName, rows, mt, width)
	}

	singleLineChar := mt == pos.MTChar && oap.Start.Lnum == oap.End.Lnum
	shiftNumbered := mt != pos.MTChar || oap.End.Lnum > oap.Start.Lnum || oap.UseRegOne
	if shiftNumbered {
		e.shiftNumberedRegisters(rows, mt, width)
	}
	if singleLineChar {
		e.writeRegisterSilent('-', rows, mt, width)
	}

	if oap.RegName != '_' {
		pub := oap.RegName
		if pub == 0 {
			pub = '1'
			if singleLineChar {
				pub = '-'
			}
		}
		reg := e.Regs.GetYankRegister(pub, register.ModeYank)
		e.Regs.Publish(pub, reg)
		if e.Autocmd != nil {
			e.Autocmd.Apply("TextYankPost", "", 0)
		}
	}

	switch {
	case mt == pos.MTBlock:
		e.deleteBlock(oap)
	case mt == pos.MTLine || oap.Op == pos.OpChange && oap.MotionType == pos.MTLine:
		e.deleteLines(oap)
	default:
		e.deleteChar(oap)
	}

	markEnd := oap.End
	if mt == pos.MTBlock {
		markEnd.Col = oap.Start.Col
	}
	e.Buf.SetMark('[', oap.Start)
	e.Buf.SetMark(']', markEnd)

	return Result{MarkStart: oap.Start, MarkEnd: markEnd, Changed: true}, nil
}

func (e *Engine) writeRegisterSilent(name rune, rows []string, mt pos.MT, width int) {
	text := strings.Join(rows, "\n")
	if mt == pos.MTLine {
		text += "\n"
	}
	_ = e.Regs.WriteReg(name, text, false, mt, width)
}

// shiftNumberedRegisters implements the "1"->"9" ring shift: old 8->9,
// ..., 1->2, new content -> "1"; the 10th register's prior content is
// dropped.
func (e *Engine) shiftNumberedRegisters(rows []string, mt pos.MT, width int) {
	for n := '9'; n > '1'; n-- {
		src := e.Regs.GetYankRegister(n-1, register.ModeYank)
		if src == nil || len(src.Rows) == 0 {
			continue
		}
		e.writeRegisterSilent(n, src.Rows, src.Type, src.Width)
	}
	e.writeRegisterSilent('1', rows, mt, width)
}

// deleteLines removes whole lines oap.Start.Lnum..=oap.End.Lnum. For an
// OpChange, it deletes all but the first line, then clears the first
// line's text (preserving indent under autoindent) instead of removing
// it, so insert mode can resume there.
func (e *Engine) deleteLines(oap *pos.OpArg) {
	if oap.Op == pos.OpChange {
		if oap.End.Lnum > oap.Start.Lnum {
			e.Buf.DeleteLines(oap.Start.Lnum+1, oap.End.Lnum-oap.Start.Lnum)
		}
		indent := ""
		if e.Opts.AutoIndent {
			line := e.Buf.Line(oap.Start.Lnum)
			indent = line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		}
		e.Buf.SetLine(oap.Start.Lnum, indent)
		return
	}
	n := oap.End.Lnum - oap.Start.Lnum + 1
	e.Buf.DeleteLines(oap.Start.Lnum, n)
	e.Buf.MarkAdjust(oap.Start.Lnum, 0, -n, 0)
	e.Buf.ChangedLines(oap.Start.Lnum, 0, oap.End.Lnum+1, -n, true)
}

// deleteChar handles char-wise delete, single- or multi-line.
func (e *Engine) deleteChar(oap *pos.OpArg) {
	if oap.Start.Lnum == oap.End.Lnum {
		line := e.Buf.Line(oap.Start.Lnum)
		end := oap.End.Col
		if oap.Inclusive {
			end++
		}
		if end > len(line) {
			end = len(line)
		}
		start := oap.Start.Col
		if start > len(line) {
			start = len(line)
		}
		e.Buf.SetLine(oap.Start.Lnum, line[:start]+line[end:])
		return
	}

	first := e.Buf.Line(oap.Start.Lnum)
	start := oap.Start.Col
	if start > len(first) {
		start = len(first)
	}
	e.Buf.SetLine(oap.Start.Lnum, first[:start])

	if oap.End.Lnum > oap.Start.Lnum+1 {
		e.Buf.DeleteLines(oap.Start.Lnum+1, oap.End.Lnum-oap.Start.Lnum-1)
		oap.End.Lnum = oap.Start.Lnum + 1
	}

	last := e.Buf.Line(oap.End.Lnum)
	end := oap.End.Col
	if !oap.Inclusive {
		// exclusive end keeps byte at End.Col; delete up to it.
	} else {
		end++
	}
	if end > len(last) {
		end = len(last)
	}
	e.Buf.SetLine(oap.End.Lnum, last[end:])
	e.joinLines(oap.Start.Lnum)
}

// joinLines merges lnum and lnum+1 with no separator, used to fuse the
// truncated first line with the remainder of the last line after a
// multi-line char-wise delete.
func (e *Engine) joinLines(lnum int) {
	if lnum >= e.Buf.LineCount() {
		return
	}
	a := e.Buf.Line(lnum)
	b := e.Buf.Line(lnum + 1)
	e.Buf.SetLine(lnum, a+b)
	e.Buf.DeleteLines(lnum+1, 1)
	e.Buf.MarkAdjust(lnum+1, 0, -1, 0)
}

// deleteBlock rebuilds each line in the block as prefix + spaces(pad) +
// suffix, per ops.c op_delete's block-wise branch.
func (e *Engine) deleteBlock(oap *pos.OpArg) {
	for lnum := oap.Start.Lnum; lnum <= oap.End.Lnum; lnum++ {
		bd := e.blockPrep(oap, lnum, true)
		if bd.IsShort && !bd.IsMax {
			continue
		}
		line := e.Buf.Line(lnum)
		prefix := line[:bd.TextCol]
		end := bd.TextCol + bd.TextLen
		if end > len(line) {
			end = len(line)
		}
		suffix := line[end:]
		pad := strings.Repeat(" ", bd.StartSpaces+bd.EndSpaces)
		e.Buf.SetLine(lnum, prefix+pad+suffix)
	}
}
