package script

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfTimeStartEndOrdering(t *testing.T) {
	start := nowProf()
	time.Sleep(time.Millisecond)
	elapsed := End(start)
	assert.True(t, elapsed > 0)
}

func TestProfTimeArithmetic(t *testing.T) {
	a := ProfTime(10 * time.Millisecond)
	b := ProfTime(4 * time.Millisecond)

	assert.Equal(t, ProfTime(14*time.Millisecond), a.Add(b))
	assert.Equal(t, ProfTime(6*time.Millisecond), a.Sub(b))
	assert.Equal(t, ProfTime(6*time.Millisecond), a.SubWait(b))
	assert.Equal(t, ProfTime(5*time.Millisecond), a.Divide(2))
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(a))
	assert.True(t, a.Equal(a))
	assert.True(t, ProfTime(0).Zero())
	assert.False(t, a.Zero())
}

func TestPassedLimit(t *testing.T) {
	limit := SetLimit(5)
	assert.False(t, PassedLimit(ProfTime(time.Millisecond), limit))
	assert.True(t, PassedLimit(ProfTime(10*time.Millisecond), limit))
	assert.False(t, PassedLimit(ProfTime(time.Hour), 0), "a zero limit never fires")
}

func TestScriptProfSaveRestoreAccumulatesChildren(t *testing.T) {
	parent := &ScriptItem{SID: 1, ProfOn: true}
	scriptProfSave(parent)
	assert.Equal(t, 1, parent.PrNest)
	time.Sleep(time.Millisecond)
	scriptProfRestore(parent)
	assert.Equal(t, 0, parent.PrNest)
	assert.True(t, parent.PrChildren > 0)
}
