package operator

import "github.com/coregx/vimcore/pos"

// Execute dispatches a fully-computed OpArg to the matching operator,
// completing the Pending->Executing transition of the lifecycle state
// machine (spec.md §4.1). Callers that already know which typed method
// they want (OpShift, OpYank, ...) may call it directly instead; Execute
// exists for command dispatchers that only have an OpArg in hand.
func (e *Engine) Execute(oap *pos.OpArg) (Result, error) {
	e.commit()
	defer e.finish()

	if oap.MotionType == pos.MTChar {
		line := e.Buf.Line(oap.End.Lnum)
		mbAdjustOpend(oap, line)
	}

	switch oap.Op {
	case pos.OpShiftLeft:
		return e.shiftResult(oap, -1)
	case pos.OpShiftRight:
		return e.shiftResult(oap, 1)
	case pos.OpDelete:
		return e.OpDelete(oap)
	case pos.OpYank:
		e.OpYank(oap, true)
		return Result{MarkStart: oap.Start, MarkEnd: oap.End}, nil
	case pos.OpChange:
		changed, err := e.OpChange(oap)
		return Result{MarkStart: oap.Start, MarkEnd: oap.End, Changed: changed}, err
	case pos.OpTilde, pos.OpUpper, pos.OpLower, pos.OpRot13:
		err := e.OpTilde(oap)
		return Result{MarkStart: oap.Start, MarkEnd: oap.End, Changed: err == nil}, err
	case pos.OpJoin, pos.OpJoinNoSpace:
		err := e.DoJoin(oap.LineCount, oap.Op == pos.OpJoin, true, true, true)
		return Result{Changed: err == nil}, err
	case pos.OpInsert, pos.OpAppend:
		err := e.OpInsert(oap, 1)
		return Result{MarkStart: oap.Start, MarkEnd: oap.End, Changed: err == nil}, err
	case pos.OpAdd:
		err := e.OpAddsub(oap, Add, 1, false)
		return Result{Changed: err == nil}, err
	case pos.OpSub:
		err := e.OpAddsub(oap, Sub, 1, false)
		return Result{Changed: err == nil}, err
	default:
		return Result{}, nil
	}
}

func (e *Engine) shiftResult(oap *pos.OpArg, amount int) (Result, error) {
	err := e.OpShift(oap, true, amount)
	return Result{MarkStart: oap.Start, MarkEnd: oap.End, Changed: err == nil}, err
}
