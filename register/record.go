package register

import (
	"errors"
	"strings"

	"github.com/coregx/vimcore/pos"
)

// ErrNotRecording is returned by DoRecord(0) when no recording is active.
var ErrNotRecording = errors.New("not recording")

// Typeahead is the narrow collaborator the register system pushes keys
// into for @-register execution (spec.md §4.2 do_execreg).
type Typeahead interface {
	Push(keys string)
}

// DoRecord toggles macro recording into register c. Passing the same
// register name again (or any name while already recording) stops the
// current recording and commits it; spec.md's "recorded register contents"
// are the accumulated raw keys with the internal K_SPECIAL escaping
// already removed by the caller's key-feed layer (vimcore does not own the
// K_SPECIAL encoding — that belongs to the externally owned typeahead
// stream).
func (t *Table) DoRecord(c rune) error {
	if t.recording {
		reg := t.recordReg
		content := string(t.recordBuf)
		t.recording = false
		t.recordBuf = nil
		return t.WriteReg(reg, content, false, pos.MTChar, 0)
	}
	if c == 0 {
		return ErrNotRecording
	}
	if !ValidYankReg(c, true) {
		return &RegisterError{Name: c, Err: ErrInvalidRegister}
	}
	t.recording = true
	t.recordReg = c
	t.recordBuf = t.recordBuf[:0]
	return nil
}

// FeedRecording appends raw input to the in-progress recording; a no-op
// when not recording. The external key-input loop calls this for every key
// consumed while DoRecord is active.
func (t *Table) FeedRecording(s string) {
	if t.recording {
		t.recordBuf = append(t.recordBuf, s...)
	}
}

// IsRecording reports whether a macro recording is in progress, and into
// which register.
func (t *Table) IsRecording() (rune, bool) { return t.recordReg, t.recording }

// DoExecReg pushes register regname's contents onto the typeahead stream.
// `@:` re-executes the last ex command (regname==':'), `@.` replays the
// last inserted text, `@=` evaluates the expression register first. When
// colon is set, continuation lines (backslash at BOL) are concatenated and
// the whole thing is prefixed with ':'.
func (t *Table) DoExecReg(regname rune, colon, addcr bool, ta Typeahead) error {
	var text string
	switch regname {
	case ':':
		s, ok := t.GetSpecReg(':')
		if !ok {
			return &RegisterError{Name: regname, Err: errors.New("no previous command line")}
		}
		text = s
	case '.':
		s, ok := t.GetSpecReg('.')
		if !ok {
			return &RegisterError{Name: regname, Err: errors.New("no inserted text")}
		}
		text = s
	case '=':
		s, ok := t.GetSpecReg('=')
		if !ok {
			return &RegisterError{Name: regname, Err: errors.New("expression evaluation failed")}
		}
		text = s
	default:
		reg := t.GetYankRegister(regname, ModePaste)
		if reg == nil {
			return &RegisterError{Name: regname, Err: errors.New("empty register")}
		}
		text = strings.Join(reg.Rows, "\n")
	}

	if colon {
		lines := strings.Split(text, "\n")
		var b strings.Builder
		for _, ln := range lines {
			rest, isCont := pos.SplitContinuation(ln)
			if isCont && b.Len() > 0 {
				b.WriteString(rest)
			} else {
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(ln)
			}
		}
		text = ":" + b.String()
	}
	if addcr {
		text += "\r"
	}
	ta.Push(text)
	return nil
}

// CmdlineEditor is the narrow collaborator for inserting text into the
// command line, used by CmdlinePasteReg.
type CmdlineEditor interface {
	Insert(text string)
}

// CmdlinePasteReg pastes register name's content into the command line.
// Rows are joined with '\r' whether or not literally is set; remcr strips
// trailing CR/NL from the final row.
func (t *Table) CmdlinePasteReg(name rune, literally, remcr bool, ed CmdlineEditor) error {
	reg := t.GetYankRegister(name, ModePaste)
	if reg == nil {
		return &RegisterError{Name: name, Err: errors.New("empty register")}
	}
	rows := reg.Rows
	sep := "\r"
	if literally {
		sep = "\r"
	}
	text := strings.Join(rows, sep)
	if remcr {
		text = strings.TrimRight(text, "\r\n")
	}
	ed.Insert(text)
	return nil
}
