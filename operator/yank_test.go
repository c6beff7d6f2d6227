package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/vimcore/pos"
	"github.com/coregx/vimcore/register"
)

func TestOpYankCharwise(t *testing.T) {
	buf := newFakeBuffer("hello world")
	e := newEngine(buf)
	oap := &pos.OpArg{
		Op:         pos.OpYank,
		MotionType: pos.MTChar,
		Start:      pos.Pos{Lnum: 1, Col: 0},
		End:        pos.Pos{Lnum: 1, Col: 4},
		Inclusive:  true,
	}
	ok := e.OpYank(oap, false)
	require.True(t, ok)
	reg := e.Regs.GetYankRegister('"', register.ModePaste)
	require.NotNil(t, reg)
	assert.Equal(t, pos.MTChar, reg.Type)
	assert.Equal(t, []string{"hello"}, reg.Rows)
	assert.Equal(t, "hello world", buf.Line(1)) // yank never mutates the buffer
}

func TestOpYankPromotesToLinewise(t *testing.T) {
	buf := newFakeBuffer("hello", "world", "!")
	e := newEngine(buf)
	oap := &pos.OpArg{
		Op:         pos.OpYank,
		MotionType: pos.MTChar,
		Start:      pos.Pos{Lnum: 1, Col: 0},
		End:        pos.Pos{Lnum: 2, Col: 0},
		Inclusive:  false,
	}
	ok := e.OpYank(oap, false)
	require.True(t, ok)
	reg := e.Regs.GetYankRegister('"', register.ModePaste)
	require.NotNil(t, reg)
	assert.Equal(t, pos.MTLine, reg.Type)
	assert.Equal(t, []string{"hello", "world"}, reg.Rows)
}

func TestOpYankBlackHoleIsNoop(t *testing.T) {
	buf := newFakeBuffer("abc")
	e := newEngine(buf)
	oap := &pos.OpArg{
		Op: pos.OpYank, MotionType: pos.MTChar,
		Start: pos.Pos{Lnum: 1}, End: pos.Pos{Lnum: 1, Col: 2}, Inclusive: true,
		RegName: '_',
	}
	ok := e.OpYank(oap, false)
	assert.True(t, ok)
}

func TestOpYankBlockwise(t *testing.T) {
	buf := newFakeBuffer("abcdef", "ghijkl")
	e := newEngine(buf)
	oap := &pos.OpArg{
		Op: pos.OpYank, MotionType: pos.MTBlock,
		Start: pos.Pos{Lnum: 1, Col: 1}, End: pos.Pos{Lnum: 2, Col: 3},
		StartVcol: 1, EndVcol: 3,
	}
	ok := e.OpYank(oap, false)
	require.True(t, ok)
	reg := e.Regs.GetYankRegister('"', register.ModePaste)
	require.NotNil(t, reg)
	assert.Equal(t, pos.MTBlock, reg.Type)
	assert.Equal(t, []string{"bcd", "hij"}, reg.Rows)
	assert.Equal(t, 2, reg.Width)
}

func TestYankDeleteRoundTrip(t *testing.T) {
	buf := newFakeBuffer("hello world")
	e := newEngine(buf)
	yankArg := &pos.OpArg{
		Op: pos.OpYank, MotionType: pos.MTChar,
		Start: pos.Pos{Lnum: 1, Col: 0}, End: pos.Pos{Lnum: 1, Col: 4}, Inclusive: true,
	}
	require.True(t, e.OpYank(yankArg, false))
	yanked := e.Regs.GetYankRegister('"', register.ModePaste).Rows[0]

	delArg := &pos.OpArg{
		Op: pos.OpDelete, MotionType: pos.MTChar,
		Start: pos.Pos{Lnum: 1, Col: 0}, End: pos.Pos{Lnum: 1, Col: 4}, Inclusive: true,
	}
	_, err := e.OpDelete(delArg)
	require.NoError(t, err)
	assert.Equal(t, " world", buf.Line(1))

	// a trivial "put" re-inserts the yanked text at the deletion point.
	line := buf.Line(1)
	buf.SetLine(1, yanked+line)
	assert.Equal(t, "hello world", buf.Line(1))
}
