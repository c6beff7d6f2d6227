package operator

import (
	"strings"

	"github.com/coregx/vimcore/pos"
)

// OpShift indents or dedents oap.LineCount lines by amount x shiftwidth
// (ops.c op_shift). Block-wise shift operates only on the block's
// columns; line/char-wise shift operates on whole lines. Lines whose
// first non-blank is '#' are skipped when smartindent is active and '#'
// is not excluded from cinoptions.
func (e *Engine) OpShift(oap *pos.OpArg, cursTop bool, amount int) error {
	if !e.Buf.Modifiable() {
		return &OpError{Op: oap.Op, Err: ErrNotModifiable}
	}
	if err := e.Buf.USave(oap.Start.Lnum-1, oap.End.Lnum+1); err != nil {
		return &OpError{Op: oap.Op, Err: err}
	}

	if oap.MotionType == pos.MTBlock {
		e.shiftBlock(oap, amount)
	} else {
		left := oap.Op == pos.OpShiftLeft
		for lnum := oap.Start.Lnum; lnum <= oap.End.Lnum; lnum++ {
			if e.skipSmartindentHash(lnum) {
				continue
			}
			e.shiftLine(lnum, left, amount)
		}
	}

	e.Buf.SetMark('[', pos.Pos{Lnum: oap.Start.Lnum, Col: 0})
	endCol := len(e.Buf.Line(oap.End.Lnum))
	e.Buf.SetMark(']', pos.Pos{Lnum: oap.End.Lnum, Col: endCol})

	if oap.LineCount > e.Opts.Report && e.Report != nil {
		e.Report("%d lines %sed", oap.LineCount, shiftVerb(oap.Op))
	}
	return nil
}

func shiftVerb(op pos.OpKind) string {
	if op == pos.OpShiftLeft {
		return "<"
	}
	return ">"
}

func (e *Engine) skipSmartindentHash(lnum int) bool {
	if !e.Opts.SmartIndent || e.Opts.CinKeysHash {
		return false
	}
	line := e.Buf.Line(lnum)
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "#")
}

// shiftLine re-indents a single line by amount shiftwidths, preserving
// tabs/spaces per the expandtab option (ops.c shift_line).
func (e *Engine) shiftLine(lnum int, left bool, amount int) {
	line := e.Buf.Line(lnum)
	indentCols := indentWidth(line, e.Opts.tabStops())
	rest := strings.TrimLeft(line, " \t")
	if rest == "" {
		e.Buf.SetLine(lnum, "")
		return
	}

	sw := e.Opts.ShiftWidth
	if sw <= 0 {
		sw = e.Opts.TabStop
	}
	var newIndent int
	if left {
		newIndent = indentCols - sw*amount
		if newIndent < 0 {
			newIndent = 0
		}
	} else {
		newIndent = indentCols + sw*amount
	}
	e.Buf.SetLine(lnum, buildIndent(newIndent, e.Opts)+rest)
}

func indentWidth(line string, ts pos.TabStops) int {
	i := 0
	vcol := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		vcol = pos.StringVcol(line, i+1, 0, ts)
		i++
	}
	return vcol
}

func buildIndent(width int, o Options) string {
	if width <= 0 {
		return ""
	}
	if o.ExpandTab {
		return strings.Repeat(" ", width)
	}
	ts := o.TabStop
	if ts <= 0 {
		ts = 8
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("\t", width/ts))
	b.WriteString(strings.Repeat(" ", width%ts))
	return b.String()
}

// shiftBlock shifts only the columns covered by a visual-block region
// (ops.c shift_block), computing a fresh BlockDef per line.
func (e *Engine) shiftBlock(oap *pos.OpArg, amount int) {
	left := oap.Op == pos.OpShiftLeft
	sw := e.Opts.ShiftWidth
	if sw <= 0 {
		sw = e.Opts.TabStop
	}
	for lnum := oap.Start.Lnum; lnum <= oap.End.Lnum; lnum++ {
		bd := e.blockPrep(oap, lnum, true)
		if bd.IsShort && !bd.IsMax {
			continue
		}
		line := e.Buf.Line(lnum)
		prefix := line[:bd.TextCol]
		suffix := line[bd.TextCol+bd.TextLen:]

		curVcol := bd.StartVcol + bd.StartSpaces
		var newVcol int
		if left {
			newVcol = curVcol - sw*amount
			if newVcol < 0 {
				newVcol = 0
			}
		} else {
			newVcol = curVcol + sw*amount
		}
		e.Buf.SetLine(lnum, prefix+buildIndent(newVcol, e.Opts)+suffix)
	}
}
