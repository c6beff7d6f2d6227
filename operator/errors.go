package operator

import (
	"errors"
	"fmt"

	"github.com/coregx/vimcore/pos"
)

// Sentinel errors surfaced by the operator engine (spec.md §7).
var (
	ErrNotModifiable = errors.New("buffer is not modifiable")
	ErrEmptyRegion   = errors.New("operator region is empty")
	ErrValueTooLarge = errors.New("numeric operand too large")
)

// OpError wraps an operator failure with the operator kind that produced
// it, mirroring regex.CompileError / register.RegisterError's shape.
type OpError struct {
	Op  pos.OpKind
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("operator %v: %v", e.Op, e.Err)
}
func (e *OpError) Unwrap() error { return e.Err }
