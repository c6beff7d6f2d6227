package operator

import (
	"strings"

	"github.com/coregx/vimcore/pos"
	"github.com/coregx/vimcore/register"
)

// OpYank populates the selected register from oap's region (ops.c
// op_yank / op_yank_reg). Returns false if the named register is not
// writable; a black-hole yank returns true without doing any work.
func (e *Engine) OpYank(oap *pos.OpArg, message bool) bool {
	name := oap.RegName
	if name == '_' {
		return true
	}
	if name != 0 && !register.ValidYankReg(name, true) {
		return false
	}

	rows, mt, width := e.collectRegion(oap)
	mt = promoteLinewise(oap, mt)

	target := name
	if target == 0 {
		target = '"'
	}
	text := strings.Join(rows, "\n") + "\n"
	if mt != pos.MTLine {
		text = strings.Join(rows, "\n")
	}

	if err := e.Regs.WriteReg(target, text, false, mt, width); err != nil {
		return false
	}
	if name == 0 {
		_ = e.Regs.WriteReg('"', text, false, mt, width)
	}

	if target != '_' {
		reg := e.Regs.GetYankRegister(target, register.ModeYank)
		e.Regs.Publish(target, reg)
		if e.Autocmd != nil {
			e.Autocmd.Apply("TextYankPost", "", 0)
		}
	}
	if message && oap.LineCount > e.Opts.Report && e.Report != nil {
		e.Report("%d lines yanked", oap.LineCount)
	}
	return true
}

// collectRegion extracts the rows, resulting motion type, and block width
// (when applicable) a yank/delete over oap's region would capture.
func (e *Engine) collectRegion(oap *pos.OpArg) (rows []string, mt pos.MT, width int) {
	switch oap.MotionType {
	case pos.MTLine:
		for lnum := oap.Start.Lnum; lnum <= oap.End.Lnum; lnum++ {
			rows = append(rows, e.Buf.Line(lnum))
		}
		return rows, pos.MTLine, 0

	case pos.MTBlock:
		maxWidth := 0
		for lnum := oap.Start.Lnum; lnum <= oap.End.Lnum; lnum++ {
			bd := e.blockPrep(oap, lnum, false)
			line := e.Buf.Line(lnum)
			var b strings.Builder
			b.WriteString(strings.Repeat(" ", bd.StartSpaces))
			if bd.TextCol <= len(line) {
				end := bd.TextCol + bd.TextLen
				if end > len(line) {
					end = len(line)
				}
				b.WriteString(line[bd.TextCol:end])
			}
			b.WriteString(strings.Repeat(" ", bd.EndSpaces))
			row := b.String()
			if oap.ExclTrWs {
				row = strings.TrimRight(row, " \t")
			}
			if len(row) > maxWidth {
				maxWidth = len(row)
			}
			rows = append(rows, row)
		}
		width = oap.EndVcol - oap.StartVcol
		if oap.EndVcol == maxCol {
			width--
		}
		return rows, pos.MTBlock, width

	default: // char-wise
		if promoteLinewise(oap, pos.MTChar) == pos.MTLine {
			for lnum := oap.Start.Lnum; lnum <= oap.End.Lnum; lnum++ {
				rows = append(rows, e.Buf.Line(lnum))
			}
			return rows, pos.MTLine, 0
		}
		if oap.Start.Lnum == oap.End.Lnum {
			line := e.Buf.Line(oap.Start.Lnum)
			end := oap.End.Col
			if oap.Inclusive {
				end++
			}
			if end > len(line) {
				end = len(line)
			}
			if oap.Start.Col > len(line) {
				return []string{""}, pos.MTChar, 0
			}
			return []string{line[oap.Start.Col:end]}, pos.MTChar, 0
		}
		first := e.Buf.Line(oap.Start.Lnum)
		startCol := oap.Start.Col
		if startCol > len(first) {
			startCol = len(first)
		}
		rows = append(rows, first[startCol:])
		for lnum := oap.Start.Lnum + 1; lnum < oap.End.Lnum; lnum++ {
			rows = append(rows, e.Buf.Line(lnum))
		}
		last := e.Buf.Line(oap.End.Lnum)
		end := oap.End.Col
		if oap.Inclusive {
			end++
		}
		if end > len(last) {
			end = len(last)
		}
		rows = append(rows, last[:end])
		return rows, pos.MTChar, 0
	}
}

// promoteLinewise implements the classic Vi quirk: a char-wise yank that
// starts at column 0, ends at column 0, spans >= 2 lines, and has a
// non-inclusive end is promoted to line-wise.
func promoteLinewise(oap *pos.OpArg, mt pos.MT) pos.MT {
	if mt == pos.MTChar && oap.Start.Col == 0 && oap.End.Col == 0 &&
		oap.End.Lnum > oap.Start.Lnum && !oap.Inclusive {
		return pos.MTLine
	}
	return mt
}
