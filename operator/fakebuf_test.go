package operator

import (
	"github.com/coregx/vimcore/pos"
	"github.com/coregx/vimcore/register"
)

func newTestTable() *register.Table { return register.NewTable(register.SpecRegisters{}) }

// fakeBuffer is a minimal in-memory Buffer for operator tests, the shape
// the teacher's own tests use for scratch fixtures rather than a mock
// framework.
type fakeBuffer struct {
	lines        []string
	modifiable   bool
	marks        map[byte]pos.Pos
	changedCalls int
}

func newFakeBuffer(lines ...string) *fakeBuffer {
	return &fakeBuffer{lines: append([]string{}, lines...), modifiable: true, marks: map[byte]pos.Pos{}}
}

func (b *fakeBuffer) Line(lnum int) string {
	if lnum < 1 || lnum > len(b.lines) {
		return ""
	}
	return b.lines[lnum-1]
}

func (b *fakeBuffer) SetLine(lnum int, text string) {
	if lnum < 1 || lnum > len(b.lines) {
		return
	}
	b.lines[lnum-1] = text
}

func (b *fakeBuffer) AppendLine(after int, text string) {
	if after < 0 {
		after = 0
	}
	if after > len(b.lines) {
		after = len(b.lines)
	}
	b.lines = append(b.lines[:after], append([]string{text}, b.lines[after:]...)...)
}

func (b *fakeBuffer) DeleteLines(from, count int) {
	if count <= 0 || from < 1 || from > len(b.lines) {
		return
	}
	end := from - 1 + count
	if end > len(b.lines) {
		end = len(b.lines)
	}
	b.lines = append(b.lines[:from-1], b.lines[end:]...)
}

func (b *fakeBuffer) LineCount() int { return len(b.lines) }

func (b *fakeBuffer) Modifiable() bool { return b.modifiable }

func (b *fakeBuffer) USave(top, bot int) error { return nil }

func (b *fakeBuffer) MarkAdjust(lnum, col, lnumDelta, colDelta int) {}

func (b *fakeBuffer) ChangedLines(from, col, to, delta int, freeUndo bool) { b.changedCalls++ }

func (b *fakeBuffer) SetMark(name byte, p pos.Pos) {
	if b.marks == nil {
		b.marks = map[byte]pos.Pos{}
	}
	b.marks[name] = p
}

// fakeCursor is a minimal Cursor.
type fakeCursor struct {
	p  pos.Pos
	ve VirtualEditFlags
}

func (c *fakeCursor) Get() pos.Pos                 { return c.p }
func (c *fakeCursor) Set(p pos.Pos)                { c.p = p }
func (c *fakeCursor) VirtualEdit() VirtualEditFlags { return c.ve }

// fakeInsert feeds a fixed string back as "typed" by the user.
type fakeInsert struct {
	text   string
	indent int
}

func (f *fakeInsert) RunInsert(at pos.Pos) (string, int) { return f.text, f.indent }

func newEngine(buf *fakeBuffer) *Engine {
	return &Engine{
		Buf:  buf,
		Cur:  &fakeCursor{},
		Regs: newTestTable(),
		Opts: Options{ShiftWidth: 4, TabStop: 8, ExpandTab: true, Report: 2},
	}
}
