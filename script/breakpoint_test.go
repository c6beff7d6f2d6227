package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakpointAddAndDebuggyFindMatchesGlob(t *testing.T) {
	var table BreakpointTable
	_, err := table.Add(BreakFile, "*.vim", 10, false)
	require.NoError(t, err)

	bp, ok := DebuggyFind(true, "init.vim", 0, &table)
	require.True(t, ok)
	assert.Equal(t, 10, bp.Lnum)

	_, ok = DebuggyFind(true, "init.lua", 0, &table)
	assert.False(t, ok)
}

func TestBreakpointGlobDotIsLiteral(t *testing.T) {
	var table BreakpointTable
	_, err := table.Add(BreakFile, "foo.vim", 5, false)
	require.NoError(t, err)

	_, ok := DebuggyFind(true, "fooXvim", 0, &table)
	assert.False(t, ok, "literal '.' in the breakpoint pattern must not match any character")

	_, ok = DebuggyFind(true, "foo.vim", 0, &table)
	assert.True(t, ok)
}

func TestDebuggyFindOnlyAfterLnum(t *testing.T) {
	var table BreakpointTable
	_, err := table.Add(BreakFile, "a.vim", 5, false)
	require.NoError(t, err)
	_, err = table.Add(BreakFile, "a.vim", 20, false)
	require.NoError(t, err)

	bp, ok := DebuggyFind(true, "a.vim", 5, &table)
	require.True(t, ok)
	assert.Equal(t, 20, bp.Lnum, "must return the smallest matching line strictly greater than afterLnum")
}

func TestBreakpointDeleteNotFound(t *testing.T) {
	var table BreakpointTable
	err := table.Delete(99)
	assert.ErrorIs(t, err, ErrBreakpointNotFound)
}

func TestBreakpointDeleteBumpsTick(t *testing.T) {
	var table BreakpointTable
	bp, err := table.Add(BreakFile, "a.vim", 1, false)
	require.NoError(t, err)
	tickBefore := table.Tick()
	require.NoError(t, table.Delete(bp.Nr))
	assert.Greater(t, table.Tick(), tickBefore)
}
