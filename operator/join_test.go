package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/vimcore/pos"
)

func TestDoJoinInsertsSpace(t *testing.T) {
	buf := newFakeBuffer("hello", "world")
	e := newEngine(buf)
	e.Cur.Set(pos.Pos{Lnum: 1, Col: 0})
	require.NoError(t, e.DoJoin(2, true, true, true, true))
	assert.Equal(t, []string{"hello world"}, buf.lines)
}

func TestDoJoinNoSpaceAfterTab(t *testing.T) {
	buf := newFakeBuffer("a\t", "b")
	e := newEngine(buf)
	e.Cur.Set(pos.Pos{Lnum: 1, Col: 0})
	require.NoError(t, e.DoJoin(2, true, true, true, true))
	assert.Equal(t, "a\tb", buf.Line(1))
}

func TestDoJoinThreeLines(t *testing.T) {
	buf := newFakeBuffer("one", "two", "three")
	e := newEngine(buf)
	e.Cur.Set(pos.Pos{Lnum: 1, Col: 0})
	require.NoError(t, e.DoJoin(3, true, true, true, true))
	assert.Equal(t, []string{"one two three"}, buf.lines)
}

func TestDoJoinStripsCommentLeader(t *testing.T) {
	buf := newFakeBuffer("// hello", "// world")
	e := newEngine(buf)
	e.Opts.FormatOpts.CommentJoin = true
	e.Cur.Set(pos.Pos{Lnum: 1, Col: 0})
	require.NoError(t, e.DoJoin(2, true, true, true, true))
	assert.Equal(t, []string{"// hello world"}, buf.lines)
}
