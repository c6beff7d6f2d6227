package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/vimcore/pos"
	"github.com/coregx/vimcore/register"
)

// TestOpDeleteCharwiseAcrossNewline mirrors spec.md §8 scenario 1: a
// linewise `dj` over lines 1-2 of a 3-line buffer.
func TestOpDeleteCharwiseAcrossNewline(t *testing.T) {
	buf := newFakeBuffer("hello", "world", "!")
	e := newEngine(buf)

	oap := &pos.OpArg{
		Op:         pos.OpDelete,
		MotionType: pos.MTLine,
		Start:      pos.Pos{Lnum: 1, Col: 0},
		End:        pos.Pos{Lnum: 2, Col: 0},
		Inclusive:  true,
		LineCount:  2,
	}
	res, err := e.OpDelete(oap)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"!"}, buf.lines)

	reg := e.Regs.GetYankRegister('1', register.ModePaste)
	require.NotNil(t, reg)
	assert.Equal(t, pos.MTLine, reg.Type)
	assert.Equal(t, []string{"hello", "world"}, reg.Rows)
}

func TestOpDeleteSingleLineCharwiseUsesSmallDelete(t *testing.T) {
	buf := newFakeBuffer("hello world")
	e := newEngine(buf)

	oap := &pos.OpArg{
		Op:         pos.OpDelete,
		MotionType: pos.MTChar,
		Start:      pos.Pos{Lnum: 1, Col: 0},
		End:        pos.Pos{Lnum: 1, Col: 4},
		Inclusive:  true,
	}
	_, err := e.OpDelete(oap)
	require.NoError(t, err)
	assert.Equal(t, " world", buf.Line(1))

	small := e.Regs.GetYankRegister('-', register.ModePaste)
	require.NotNil(t, small)
	assert.Equal(t, []string{"hello"}, small.Rows)
}

func TestOpDeleteNotModifiable(t *testing.T) {
	buf := newFakeBuffer("x")
	buf.modifiable = false
	e := newEngine(buf)
	_, err := e.OpDelete(&pos.OpArg{MotionType: pos.MTChar, Start: pos.Pos{Lnum: 1}, End: pos.Pos{Lnum: 1}})
	assert.ErrorIs(t, err, ErrNotModifiable)
}

func TestOpDeleteEmptyRegionIsNoop(t *testing.T) {
	buf := newFakeBuffer("abc")
	e := newEngine(buf)
	oap := &pos.OpArg{Start: pos.Pos{Lnum: 1, Col: 1}, End: pos.Pos{Lnum: 1, Col: 1}, Empty: true}
	res, err := e.OpDelete(oap)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, "abc", buf.Line(1))
}

func TestOpDeleteBlockwisePadsSplitTab(t *testing.T) {
	buf := newFakeBuffer("a\tbc", "defghi")
	e := newEngine(buf)
	oap := &pos.OpArg{
		Op:         pos.OpDelete,
		MotionType: pos.MTBlock,
		Start:      pos.Pos{Lnum: 1, Col: 1},
		End:        pos.Pos{Lnum: 2, Col: 3},
		StartVcol:  2,
		EndVcol:    4,
	}
	_, err := e.OpDelete(oap)
	require.NoError(t, err)
	// line 2 "defghi": block covers vcols 2..4 inclusive ("fgh")
	assert.Equal(t, "dei", buf.Line(2))
}

func TestOpDeleteNamedRegisterAlsoGoesToOne(t *testing.T) {
	buf := newFakeBuffer("hello", "world")
	e := newEngine(buf)
	oap := &pos.OpArg{
		Op:         pos.OpDelete,
		MotionType: pos.MTLine,
		Start:      pos.Pos{Lnum: 1},
		End:        pos.Pos{Lnum: 1},
		RegName:    'a',
	}
	_, err := e.OpDelete(oap)
	require.NoError(t, err)
	a := e.Regs.GetYankRegister('a', register.ModePaste)
	require.NotNil(t, a)
	assert.Equal(t, []string{"hello"}, a.Rows)
	one := e.Regs.GetYankRegister('1', register.ModePaste)
	require.NotNil(t, one)
	assert.Equal(t, []string{"hello"}, one.Rows)
}

func TestShiftNumberedRegistersRing(t *testing.T) {
	buf := newFakeBuffer("l1", "l2", "l3")
	e := newEngine(buf)
	for _, ln := range []int{1, 1, 1} {
		oap := &pos.OpArg{Op: pos.OpDelete, MotionType: pos.MTLine, Start: pos.Pos{Lnum: ln}, End: pos.Pos{Lnum: ln}}
		_, err := e.OpDelete(oap)
		require.NoError(t, err)
	}
	r1 := e.Regs.GetYankRegister('1', register.ModePaste)
	r2 := e.Regs.GetYankRegister('2', register.ModePaste)
	r3 := e.Regs.GetYankRegister('3', register.ModePaste)
	require.NotNil(t, r1)
	require.NotNil(t, r2)
	require.NotNil(t, r3)
	assert.Equal(t, []string{"l3"}, r1.Rows)
	assert.Equal(t, []string{"l2"}, r2.Rows)
	assert.Equal(t, []string{"l1"}, r3.Rows)
}
