package operator

import "github.com/coregx/vimcore/pos"

// OpReindent applies a caller-supplied indenter to each line in oap's
// range (ops.c op_reindent). The indenter is an external collaborator
// (the embedding editor's cindent/lisp-indent/indentexpr logic) invoked
// once per line; vimcore only calls set_indent with its result. For lisp
// indent the first line is conventionally skipped unless the range is a
// single line — that policy lives in the caller's indenter, not here,
// since vimcore has no notion of "lisp indent" itself. Progress is
// reported every 50 lines for slow indenters.
func (e *Engine) OpReindent(oap *pos.OpArg, indenter func(lnum int) int) error {
	if !e.Buf.Modifiable() {
		return &OpError{Op: oap.Op, Err: ErrNotModifiable}
	}
	if err := e.Buf.USave(oap.Start.Lnum-1, oap.End.Lnum+1); err != nil {
		return &OpError{Op: oap.Op, Err: err}
	}

	count := 0
	for lnum := oap.Start.Lnum; lnum <= oap.End.Lnum; lnum++ {
		target := indenter(lnum)
		e.setIndent(lnum, target)
		count++
		if count%50 == 0 && e.Report != nil {
			e.Report("%d lines to indent, %d done", oap.End.Lnum-oap.Start.Lnum+1, count)
		}
	}
	if oap.LineCount > e.Opts.Report && e.Report != nil {
		e.Report("%d lines indented", oap.LineCount)
	}
	return nil
}

// setIndent rewrites lnum's leading whitespace to exactly `width` virtual
// columns, preserving the rest of the line's text.
func (e *Engine) setIndent(lnum, width int) {
	line := e.Buf.Line(lnum)
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	rest := line[i:]
	if width < 0 {
		width = 0
	}
	e.Buf.SetLine(lnum, buildIndent(width, e.Opts)+rest)
}
