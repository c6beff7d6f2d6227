package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchDebugCommandPrefixes(t *testing.T) {
	assert.Equal(t, "continue", matchDebugCommand("cont"))
	assert.Equal(t, "continue", matchDebugCommand("co"))
	assert.Equal(t, "next", matchDebugCommand("n"))
	assert.Equal(t, "step", matchDebugCommand("s"))
	assert.Equal(t, "finish", matchDebugCommand("fin"))
	assert.Equal(t, "quit", matchDebugCommand("q"))
	assert.Equal(t, "interrupt", matchDebugCommand("i"))
	assert.Equal(t, "", matchDebugCommand("echo 1"))
}

type scriptedPrompter struct {
	lines []string
	i     int
}

func (p *scriptedPrompter) ReadDebugLine(prompt string) (string, bool) {
	if p.i >= len(p.lines) {
		return "", false
	}
	l := p.lines[p.i]
	p.i++
	return l, true
}

type countingDispatcher struct{ calls int }

func (d *countingDispatcher) DoCmdline(line string, get LineGetter, cookie any, nestingLevel int) error {
	d.calls++
	return nil
}

func TestDoDebugContinueReturnsImmediately(t *testing.T) {
	s := NewSourcer(Options{}, &countingDispatcher{}, nil, nil)
	s.DoDebug(&scriptedPrompter{lines: []string{"cont"}}, "")
	assert.Equal(t, -1, s.debug.breakLevel)
}

func TestDoDebugExecutesOrdinaryCommandsThenQuits(t *testing.T) {
	disp := &countingDispatcher{}
	s := NewSourcer(Options{}, disp, nil, nil)
	s.DoDebug(&scriptedPrompter{lines: []string{"echo 1", "echo 2", "quit"}}, "")
	assert.Equal(t, 2, disp.calls)
	assert.Equal(t, -1, s.debug.breakLevel)
}

func TestDbgCheckBreakpointSkipsInactiveBranch(t *testing.T) {
	disp := &countingDispatcher{}
	s := NewSourcer(Options{}, disp, nil, nil)
	s.debug.breakLevel = 0
	s.DbgCheckBreakpoint(&scriptedPrompter{lines: []string{"cont"}}, true)
	// skipped=true must not enter the debugger at all: breakLevel is
	// untouched and the prompter is never consulted.
	assert.Equal(t, 0, s.debug.breakLevel)
}
