package register

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coregx/vimcore/pos"
)

// Error kinds surfaced synchronously by register operations (spec.md §7).
var (
	ErrInvalidRegister = errors.New("invalid register name")
	ErrNotWritable     = errors.New("register is not writable")
	ErrBlackHole       = errors.New("black hole register")
)

// RegisterError wraps a register operation failure with the offending name.
type RegisterError struct {
	Name rune
	Err  error
}

func (e *RegisterError) Error() string {
	return fmt.Sprintf("register %q: %v", string(e.Name), e.Err)
}
func (e *RegisterError) Unwrap() error { return e.Err }

// GetYankRegister resolves a register name to its current content for
// reading, following spec.md §4.2's Paste/Yank/Put mode rules. The
// returned *YankReg must not be mutated by the caller; Table owns it.
func (t *Table) GetYankRegister(name rune, mode Mode) *YankReg {
	if name == 0 {
		name = '"'
	}
	if (name == '*' || name == '+') && (mode == ModePaste || mode == ModePut) {
		if t.clipboard != nil {
			if rows, kind, ok := t.clipboard.Get(name); ok {
				return &YankReg{Type: kind, Rows: rows}
			}
			if mode == ModePut {
				return &YankReg{Type: pos.MTChar}
			}
		} else if !t.warnedNoProvider {
			t.warnedNoProvider = true
		}
	}

	if mode == ModePaste && (name == '"' || name == 0) {
		return t.prevWrite
	}

	idx := Index(normalize(name))
	if idx < 0 {
		return nil
	}
	if mode == ModeYank {
		if t.regs[idx] == nil {
			t.regs[idx] = &YankReg{}
		}
		t.prevWrite = t.regs[idx]
		return t.regs[idx]
	}
	return t.regs[idx]
}

func normalize(name rune) rune {
	if IsUpperName(name) {
		return name + ('a' - 'A')
	}
	return name
}

// WriteReg overwrites or appends to register name. Appending is requested
// either by an uppercase name or by append=true. When motionType is
// MTUnknown, a trailing NL on text makes the stored motion type MTLine
// (MTChar otherwise); an explicit motionType is kept as given. Writing
// the unnamed register '"' stores into register "0".
func (t *Table) WriteReg(name rune, text string, append bool, motionType pos.MT, blockWidth int) error {
	if name == '_' {
		return nil // black hole: silently discard
	}
	if !ValidYankReg(name, true) {
		return &RegisterError{Name: name, Err: ErrInvalidRegister}
	}
	idx := Index(normalize(name))
	if name == '"' {
		idx = 0
	}
	if idx < 0 {
		return &RegisterError{Name: name, Err: ErrInvalidRegister}
	}

	forceAppend := append || IsUpperName(name)

	trailingNL := strings.HasSuffix(text, "\n")
	rows := strings.Split(text, "\n")
	if trailingNL {
		rows = rows[:len(rows)-1]
		if motionType == pos.MTUnknown {
			motionType = pos.MTLine
		}
	}
	if motionType == pos.MTUnknown {
		motionType = pos.MTChar
	}

	existing := t.regs[idx]
	if forceAppend && existing != nil && len(existing.Rows) > 0 {
		merged := append0(existing.Rows, rows, existing.Type, motionType)
		nr := &YankReg{Type: existing.Type, Width: blockWidth, Rows: merged, Timestamp: time.Now(), AdditionalData: uuid.New()}
		t.regs[idx] = nr
		t.prevWrite = nr
		return nil
	}

	nr := &YankReg{Type: motionType, Width: blockWidth, Rows: rows, Timestamp: time.Now(), AdditionalData: uuid.New()}
	t.regs[idx] = nr
	t.prevWrite = nr
	return nil
}

// append0 joins the last row of existing with the first row of fresh when
// existing is char-wise, matching write_reg's append semantics.
func append0(existing, fresh []string, existingType, freshType pos.MT) []string {
	if existingType != pos.MTChar || len(existing) == 0 {
		out := make([]string, 0, len(existing)+len(fresh))
		out = append(out, existing...)
		out = append(out, fresh...)
		return out
	}
	out := make([]string, 0, len(existing)+len(fresh))
	out = append(out, existing[:len(existing)-1]...)
	if len(fresh) > 0 {
		out = append(out, existing[len(existing)-1]+fresh[0])
		out = append(out, fresh[1:]...)
	} else {
		out = append(out, existing[len(existing)-1])
	}
	return out
}

// GetSpecReg materializes a derived special register's value (spec.md
// §4.2). Recursion for the expression register is capped at depth 10.
func (t *Table) GetSpecReg(name rune) (string, bool) {
	return t.getSpecRegDepth(name, 0)
}

func (t *Table) getSpecRegDepth(name rune, depth int) (string, bool) {
	switch name {
	case '_':
		return "", true
	case '%':
		if t.specs.CurrentFile != nil {
			return t.specs.CurrentFile(), true
		}
	case '#':
		if t.specs.AlternateFile != nil {
			return t.specs.AlternateFile(), true
		}
	case ':':
		if t.specs.LastExCommand != nil {
			return t.specs.LastExCommand(), true
		}
	case '/':
		if t.specs.LastSearch != nil {
			return t.specs.LastSearch(), true
		}
	case '.':
		if t.specs.LastInserted != nil {
			return t.specs.LastInserted(), true
		}
	case '=':
		if depth >= 10 {
			return "", false
		}
		if t.specs.Evaluate != nil {
			return t.specs.Evaluate("")
		}
	}
	return "", false
}
