// Package register implements the named-register store described in
// spec.md §4.2: typed yank buffers, append semantics, special registers,
// and the clipboard bridge.
package register

import (
	"time"

	"github.com/google/uuid"

	"github.com/coregx/vimcore/pos"
)

// NumNamed is the number of entries in the motion-independent register
// array: 10 digits, 26 letters, and one each for '-', '*', '+'.
const NumNamed = 39

const (
	idxDash = 36
	idxStar = 37
	idxPlus = 38
)

// YankReg is a typed buffer of zero or more text rows, the unit of storage
// for every named register (spec.md §3 "Yank register").
type YankReg struct {
	Type     pos.MT
	Width    int // inclusive column width minus 1, for block-wise
	Rows     []string
	Timestamp time.Time

	// AdditionalData is an opaque handle the external persistence
	// collaborator (a shada-like store, out of core scope) can use to
	// correlate this register's content with its own storage. vimcore
	// itself never interprets it.
	AdditionalData uuid.UUID
}

func (y *YankReg) clone() *YankReg {
	if y == nil {
		return nil
	}
	rows := make([]string, len(y.Rows))
	copy(rows, y.Rows)
	return &YankReg{Type: y.Type, Width: y.Width, Rows: rows, Timestamp: y.Timestamp, AdditionalData: y.AdditionalData}
}

// Mode selects the semantics `get_yank_register` applies when resolving a
// register name (spec.md §4.2).
type Mode uint8

const (
	ModeYank Mode = iota
	ModePaste
	ModePut
)

// ClipboardProvider is the external clipboard bridge collaborator
// (spec.md §4.2 "Clipboard bridging").
type ClipboardProvider interface {
	// Get returns the provider's rows and register type for the named
	// selection ("*" or "+"), or ok=false if unavailable.
	Get(name rune) (rows []string, kind pos.MT, ok bool)
	// Set stages the provider's content for the named selection.
	Set(rows []string, kind pos.MT, name rune) error
}

// CbFlags mirrors the `clipboard=unnamed,unnamedplus` option bitmask.
type CbFlags uint8

const (
	CbUnnamed CbFlags = 1 << iota
	CbUnnamedPlus
)

// Table is the process-wide register store. It is not safe for concurrent
// use, matching the single-threaded contract of spec.md §5.
type Table struct {
	regs [NumNamed]*YankReg

	// prevWrite tracks the last-written register for implicit paste, and
	// backs the unnamed register "".
	prevWrite *YankReg

	clipboard ClipboardProvider
	cbFlags   CbFlags
	warnedNoProvider bool

	// batch > 0 while inside a start_batch_changes/end_batch_changes
	// bracket; clipboard writes are deferred until it returns to 0.
	batch        int
	batchPending bool
	batchRows    []string
	batchKind    pos.MT
	batchName    rune

	// spec-register collaborators, narrow per spec.md §6.
	specs SpecRegisters

	recording    bool
	recordReg    rune
	recordBuf    []byte
}

// SpecRegisters gathers the external state vimcore needs to materialize
// the derived special registers ('%','#',':','/','.','=','_').
type SpecRegisters struct {
	CurrentFile   func() string
	AlternateFile func() string
	LastExCommand func() string
	LastSearch    func() string
	LastInserted  func() string
	Evaluate      func(expr string) (string, bool)
}

// NewTable creates an empty register table.
func NewTable(specs SpecRegisters) *Table {
	return &Table{specs: specs}
}

// SetClipboard installs the external clipboard provider and its mirroring
// flags.
func (t *Table) SetClipboard(p ClipboardProvider, flags CbFlags) {
	t.clipboard = p
	t.cbFlags = flags
}

// Index returns the motion-independent slot for a register name, per
// spec.md §3's invariant (digits 0..9, letters a..z => 10..35, '-'=>36,
// '*'=>37, '+'=>38), or -1 if name does not occupy a named slot.
func Index(name rune) int {
	switch {
	case name >= '0' && name <= '9':
		return int(name - '0')
	case name >= 'a' && name <= 'z':
		return 10 + int(name-'a')
	case name >= 'A' && name <= 'Z':
		return 10 + int(name-'A')
	case name == '-':
		return idxDash
	case name == '*':
		return idxStar
	case name == '+':
		return idxPlus
	default:
		return -1
	}
}

// IsUpperName reports whether name is an uppercase letter (append form).
func IsUpperName(name rune) bool { return name >= 'A' && name <= 'Z' }

// ValidYankReg reports whether name is a legal register name, narrowed by
// whether it must be writable.
func ValidYankReg(name rune, forWriting bool) bool {
	switch {
	case name >= '0' && name <= '9':
		return true
	case (name >= 'a' && name <= 'z') || (name >= 'A' && name <= 'Z'):
		return true
	case name == '"' || name == '-' || name == '_' || name == '*' || name == '+':
		return true
	}
	if forWriting {
		return false
	}
	switch name {
	case '/', '.', '%', ':', '=', '#':
		return true
	}
	return false
}
