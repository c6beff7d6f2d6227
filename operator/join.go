package operator

import (
	"strings"

	"github.com/coregx/vimcore/pos"
)

// DoJoin joins count consecutive lines starting at the cursor (ops.c
// do_join). insertSpace requests one separating space per join,
// suppressed when the preceding char is TAB or the following is ')', and
// doubled to two spaces after '.'/'?'/'!' when joinspaces is set. useFo
// with the comment-join formatoption strips comment leaders from
// continuation lines. setMarks asks for '[ '] to bracket the joined
// line.
func (e *Engine) DoJoin(count int, insertSpace, saveUndo, useFo, setMarks bool) error {
	if !e.Buf.Modifiable() {
		return &OpError{Op: pos.OpJoin, Err: ErrNotModifiable}
	}
	if count < 2 {
		count = 2
	}
	cur := e.Cur.Get()
	last := cur.Lnum + count - 1
	if last > e.Buf.LineCount() {
		last = e.Buf.LineCount()
	}
	if last <= cur.Lnum {
		return nil
	}
	if saveUndo {
		if err := e.Buf.USave(cur.Lnum-1, last+1); err != nil {
			return &OpError{Op: pos.OpJoin, Err: err}
		}
	}

	pieces := make([]string, 0, last-cur.Lnum+1)
	pieces = append(pieces, e.Buf.Line(cur.Lnum))
	for lnum := cur.Lnum + 1; lnum <= last; lnum++ {
		piece := e.Buf.Line(lnum)
		if useFo && e.Opts.FormatOpts.CommentJoin {
			piece = stripCommentLeader(piece)
		} else {
			piece = strings.TrimLeft(piece, " \t")
		}
		pieces = append(pieces, piece)
	}

	var b strings.Builder
	joinCursorCol := len(pieces[0])
	b.WriteString(pieces[0])
	for i := 1; i < len(pieces); i++ {
		sep := ""
		if insertSpace && pieces[i] != "" {
			sep = joinSeparator(b.String(), pieces[i], e.Opts.JoinSpaces)
		}
		if i == 1 {
			// cursor (non-CpoJ) lands on the first join boundary.
			joinCursorCol = b.Len() + len(sep)
		}
		b.WriteString(sep)
		b.WriteString(pieces[i])
	}
	joined := b.String()

	e.Buf.SetLine(cur.Lnum, joined)
	removed := last - cur.Lnum
	if removed > 0 {
		e.Buf.DeleteLines(cur.Lnum+1, removed)
		e.Buf.MarkAdjust(cur.Lnum+1, 0, -removed, 0)
	}

	finalCol := joinCursorCol
	if e.Opts.CpoJ {
		finalCol = len(joined)
	}
	newCur := pos.Pos{Lnum: cur.Lnum, Col: finalCol}
	e.Cur.Set(newCur)

	if setMarks {
		e.Buf.SetMark('[', pos.Pos{Lnum: cur.Lnum, Col: 0})
		e.Buf.SetMark(']', newCur)
	}
	return nil
}

// joinSeparator computes the text to splice between the accumulated
// result and the next piece: a single space by default, none after a
// TAB or before ')', and two spaces after a sentence-ending '.'/'?'/'!'
// when joinspaces is set.
func joinSeparator(accum, next string, joinSpaces bool) string {
	if accum == "" {
		return ""
	}
	last := accum[len(accum)-1]
	if last == '\t' {
		return ""
	}
	if len(next) > 0 && next[0] == ')' {
		return ""
	}
	if joinSpaces && (last == '.' || last == '?' || last == '!') {
		return "  "
	}
	return " "
}

// stripCommentLeader removes a leading comment-leader prefix (e.g. "// ",
// "# ", "-- ") from a continuation line before it is joined onto the
// previous one, per the 'j' formatoptions flag. Recognizes the common
// single-line leader shapes; block-comment leaders belong to the
// embedding editor's comments option and are out of scope here.
func stripCommentLeader(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	for _, leader := range []string{"// ", "//", "# ", "#", "-- ", "--", "* ", "*"} {
		if strings.HasPrefix(trimmed, leader) {
			return strings.TrimLeft(trimmed[len(leader):], " \t")
		}
	}
	return trimmed
}
