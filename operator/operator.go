// Package operator implements the operator/motion engine described in
// spec.md §4.1: given an OpArg computed by the (external) command parser,
// it applies the edit to a buffer, maintains the '[ ']  marks, drives undo,
// and deposits yielded text into the register system.
package operator

import (
	"github.com/coregx/vimcore/pos"
	"github.com/coregx/vimcore/register"
)

// Buffer is the narrow collaborator the operator engine edits through
// (spec.md §6 "Buffer abstraction"). The embedding editor owns storage,
// undo, and mark adjustment; the engine never touches memory it doesn't
// own directly.
type Buffer interface {
	Line(lnum int) string
	SetLine(lnum int, text string)
	AppendLine(after int, text string)
	DeleteLines(from, count int)
	LineCount() int
	Modifiable() bool

	USave(top, bot int) error
	MarkAdjust(lnum, col, lnumDelta, colDelta int)
	ChangedLines(from, col, to, delta int, freeUndo bool)
	SetMark(name byte, p pos.Pos)
}

// Cursor is the current-window collaborator (spec.md §6 "Cursor/window").
type Cursor interface {
	Get() pos.Pos
	Set(pos.Pos)
	VirtualEdit() VirtualEditFlags
}

// VirtualEditFlags mirrors the `virtualedit` option's bit-set.
type VirtualEditFlags uint8

const (
	VirtualEditNone VirtualEditFlags = 0
	VirtualEditAll  VirtualEditFlags = 1 << iota
	VirtualEditOnemore
	VirtualEditBlock
	VirtualEditInsert
)

// Insert mode editor callback, invoked by op_insert/op_change to let the
// embedding editor run its interactive insert loop once; the engine then
// splices the resulting text onto the remaining block-wise lines itself.
type InsertEditor interface {
	// RunInsert enters insert mode at the given position and returns the
	// text the user typed (possibly empty, possibly multi-line) plus the
	// indent that was auto-applied, if any.
	RunInsert(at pos.Pos) (typed string, autoIndent int)
}

// Reporter surfaces user-visible progress/echo messages (spec.md §7
// "User-visible failure behavior", §4.1 "Reports ... when line_count >
// p_report").
type Reporter interface {
	Report(format string, args ...any)
	Beep()
}

// Options wires the subset of the option system the operator engine reads
// (spec.md §6). Populated by the embedding editor; vimcore never reads
// environment or flags itself.
type Options struct {
	ShiftWidth  int
	TabStop     int
	VarTabStop  []int
	ExpandTab   bool
	CpoGT       bool // cpoptions contains '>' (register-append separator)
	CpoJ        bool // cpoptions contains 'J' (join cursor placement)
	CpoEFlag    bool // cpoptions contains 'E' (error on empty region)
	NrFormats   NrFormats
	FormatOpts  FormatOptions
	IsKeyword   func(rune) bool
	Report      int
	JoinSpaces  bool
	AutoIndent  bool
	SmartIndent bool
	CinKeysHash bool // '#' excluded from cinoptions (smartindent hash skip)
}

// NrFormats mirrors the `nrformats` option for op_addsub.
type NrFormats struct {
	Alpha    bool // 'p'
	Hex      bool
	Bin      bool
	Octal    bool
	Unsigned bool // 'u'
	BlankUnsigned bool // 'k'
}

// FormatOptions mirrors the `formatoptions` bits do_join consults.
type FormatOptions struct {
	CommentJoin bool // 'j': strip comment leaders off continuation lines
	MbyteJoin   bool // 'm'-ish mbyte-join behavior (spec.md "fo-mbyte-join")
}

func (o Options) tabStops() pos.TabStops {
	return pos.TabStops{Width: o.TabStop, Stops: o.VarTabStop}
}

// Engine is the operator engine. It is not safe for concurrent use — like
// the teacher's PikeVM and lazy.Cache, it holds per-call scratch state
// reused across invocations and assumes the single-threaded contract of
// spec.md §5.
type Engine struct {
	Buf      Buffer
	Cur      Cursor
	Regs     *register.Table
	Insert   InsertEditor
	Report   Reporter
	Autocmd  Autocmd
	Opts     Options

	state engineState
}

// Autocmd fires the narrow autocommand events the operator engine
// triggers (spec.md §6): TextYankPost and RecordingEnter/Leave are fired
// by the register system; the engine itself only needs TextYankPost,
// routed here so both op_yank and op_delete share one call site.
type Autocmd interface {
	Apply(event, fname string, buf int)
}

// engineState implements the "Operator lifecycle" state machine of
// spec.md §4.1: Idle -> Pending -> Executing -> Idle, with OpArg becoming
// immutable at the Pending->Executing transition (the point where redo
// state would be captured by the embedding editor).
type engineState uint8

const (
	stateIdle engineState = iota
	statePending
	stateExecuting
)

// Result carries the outcome of an operator application: the updated
// mark positions and whether anything was actually changed.
type Result struct {
	MarkStart pos.Pos
	MarkEnd   pos.Pos
	Changed   bool
}

// BeginPending transitions Idle->Pending, mirroring the dispatcher calling
// set_op before a motion has been read.
func (e *Engine) BeginPending() { e.state = statePending }

// Cancel transitions back to Idle without executing (user pressed Esc
// mid-motion).
func (e *Engine) Cancel() { e.state = stateIdle }

// commit transitions Pending->Executing, the point at which oap becomes
// immutable.
func (e *Engine) commit() { e.state = stateExecuting }

// finish transitions Executing->Idle (success or error both return here
// per the state diagram).
func (e *Engine) finish() { e.state = stateIdle }
