package operator

import (
	"strings"

	"github.com/coregx/vimcore/pos"
)

// OpInsert runs the embedding editor's interactive insert once at oap's
// start, then — for block-wise insert — splices the typed text onto
// every other line the block covers at the same block column (ops.c
// op_insert). count1 repeats the typed text count1 times before
// splicing, matching "3Itext<Esc>" semantics.
func (e *Engine) OpInsert(oap *pos.OpArg, count1 int) error {
	if !e.Buf.Modifiable() {
		return &OpError{Op: pos.OpInsert, Err: ErrNotModifiable}
	}
	if err := e.Buf.USave(oap.Start.Lnum-1, oap.End.Lnum+1); err != nil {
		return &OpError{Op: pos.OpInsert, Err: err}
	}

	if oap.MotionType != pos.MTBlock {
		typed, _ := e.Insert.RunInsert(oap.Start)
		return e.applySimpleInsert(oap.Start, strings.Repeat(typed, count1))
	}

	// Remember each line's pre-insert byte column and length before
	// entering insert, since the editor may change indentation as a side
	// effect of running the insert loop.
	beforeCols := make([]int, 0, oap.End.Lnum-oap.Start.Lnum+1)
	beforeLens := make([]int, 0, cap(beforeCols))
	for lnum := oap.Start.Lnum; lnum <= oap.End.Lnum; lnum++ {
		bd := e.blockPrep(oap, lnum, false)
		beforeCols = append(beforeCols, bd.TextCol)
		beforeLens = append(beforeLens, len(e.Buf.Line(lnum)))
	}

	typed, autoIndent := e.Insert.RunInsert(oap.Start)
	typed = strings.Repeat(typed, count1)
	if typed == "" {
		return nil
	}

	for i, lnum := range lineRange(oap.Start.Lnum+1, oap.End.Lnum) {
		idx := i + 1
		col := beforeCols[idx]
		if beforeLens[idx] < col {
			continue // IsShort: nothing to splice onto on this line.
		}
		line := e.Buf.Line(lnum)
		insertCol := col
		if insertCol > len(line) {
			insertCol = len(line)
		}
		prefix := line[:insertCol]
		if autoIndent > 0 && strings.TrimSpace(prefix) == "" {
			prefix = buildIndent(autoIndent, e.Opts)
		}
		e.Buf.SetLine(lnum, prefix+typed+line[insertCol:])
	}
	return nil
}

func lineRange(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func (e *Engine) applySimpleInsert(at pos.Pos, typed string) error {
	if typed == "" {
		return nil
	}
	line := e.Buf.Line(at.Lnum)
	col := at.Col
	if col > len(line) {
		col = len(line)
	}
	parts := strings.Split(typed, "\n")
	if len(parts) == 1 {
		e.Buf.SetLine(at.Lnum, line[:col]+typed+line[col:])
		return nil
	}
	tail := line[col:]
	e.Buf.SetLine(at.Lnum, line[:col]+parts[0])
	for i := 1; i < len(parts); i++ {
		text := parts[i]
		if i == len(parts)-1 {
			text += tail
		}
		e.Buf.AppendLine(at.Lnum+i-1, text)
	}
	return nil
}

// OpChange deletes oap's region then hands control to insert mode; for a
// block-wise change the same typed text is mirrored onto every other
// block line, exactly like OpInsert (ops.c op_change).
func (e *Engine) OpChange(oap *pos.OpArg) (bool, error) {
	wasBlock := oap.MotionType == pos.MTBlock
	blockOap := *oap
	if _, err := e.OpDelete(oap); err != nil {
		return false, err
	}
	if !wasBlock {
		typed, _ := e.Insert.RunInsert(e.Cur.Get())
		if err := e.applySimpleInsert(e.Cur.Get(), typed); err != nil {
			return false, err
		}
		return true, nil
	}
	return true, e.OpInsert(&blockOap, 1)
}
