package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/vimcore/pos"
)

// TestOpAddsubPreservesLeadingZeros mirrors spec.md §8 scenario 5: "007"
// with <C-a> count 3 becomes "010".
func TestOpAddsubPreservesLeadingZeros(t *testing.T) {
	buf := newFakeBuffer("007")
	e := newEngine(buf)
	e.Cur.Set(pos.Pos{Lnum: 1, Col: 2})
	oap := &pos.OpArg{Op: pos.OpAdd, MotionType: pos.MTChar, Start: pos.Pos{Lnum: 1, Col: 2}, End: pos.Pos{Lnum: 1, Col: 2}}
	require.NoError(t, e.OpAddsub(oap, Add, 3, false))
	assert.Equal(t, "010", buf.Line(1))
}

func TestOpAddsubNegativeNumber(t *testing.T) {
	buf := newFakeBuffer("x = -5")
	e := newEngine(buf)
	oap := &pos.OpArg{Op: pos.OpAdd, MotionType: pos.MTChar, Start: pos.Pos{Lnum: 1, Col: 5}, End: pos.Pos{Lnum: 1, Col: 5}}
	require.NoError(t, e.OpAddsub(oap, Add, 1, false))
	assert.Equal(t, "x = -4", buf.Line(1))
}

func TestOpAddsubWraparoundRoundTrip(t *testing.T) {
	buf := newFakeBuffer("18446744073709551615")
	e := newEngine(buf)
	oap := &pos.OpArg{Op: pos.OpAdd, MotionType: pos.MTChar, Start: pos.Pos{Lnum: 1, Col: 0}, End: pos.Pos{Lnum: 1, Col: 0}}
	require.NoError(t, e.OpAddsub(oap, Add, 1, false))
	require.NoError(t, e.OpAddsub(oap, Sub, 1, false))
	assert.Equal(t, "18446744073709551615", buf.Line(1))
}

func TestOpAddsubHexPreservesCase(t *testing.T) {
	buf := newFakeBuffer("0xFF")
	e := newEngine(buf)
	e.Opts.NrFormats.Hex = true
	oap := &pos.OpArg{Op: pos.OpAdd, MotionType: pos.MTChar, Start: pos.Pos{Lnum: 1, Col: 3}, End: pos.Pos{Lnum: 1, Col: 3}}
	require.NoError(t, e.OpAddsub(oap, Add, 1, false))
	assert.Equal(t, "0x100", buf.Line(1))
}

func TestOpAddsubVisualBlockGCmdProgression(t *testing.T) {
	buf := newFakeBuffer("1", "1", "1")
	e := newEngine(buf)
	oap := &pos.OpArg{
		Op: pos.OpAdd, MotionType: pos.MTBlock, IsVisual: true,
		Start: pos.Pos{Lnum: 1, Col: 0}, End: pos.Pos{Lnum: 3, Col: 0},
	}
	require.NoError(t, e.OpAddsub(oap, Add, 1, true))
	assert.Equal(t, "2", buf.Line(1))
	assert.Equal(t, "3", buf.Line(2))
	assert.Equal(t, "4", buf.Line(3))
}
