package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/vimcore/pos"
)

func TestIndex(t *testing.T) {
	assert.Equal(t, 0, Index('0'))
	assert.Equal(t, 9, Index('9'))
	assert.Equal(t, 10, Index('a'))
	assert.Equal(t, 35, Index('z'))
	assert.Equal(t, 10, Index('A'))
	assert.Equal(t, 36, Index('-'))
	assert.Equal(t, 37, Index('*'))
	assert.Equal(t, 38, Index('+'))
	assert.Equal(t, -1, Index('"'))
}

func TestWriteAndGetRegister(t *testing.T) {
	tbl := NewTable(SpecRegisters{})
	require.NoError(t, tbl.WriteReg('a', "hello\nworld\n", false, pos.MTUnknown, 0))
	reg := tbl.GetYankRegister('a', ModePaste)
	require.NotNil(t, reg)
	assert.Equal(t, pos.MTLine, reg.Type)
	assert.Equal(t, []string{"hello", "world"}, reg.Rows)
}

func TestAppendUppercase(t *testing.T) {
	tbl := NewTable(SpecRegisters{})
	require.NoError(t, tbl.WriteReg('a', "foo", false, pos.MTChar, 0))
	require.NoError(t, tbl.WriteReg('A', "bar", false, pos.MTChar, 0))
	reg := tbl.GetYankRegister('a', ModePaste)
	require.NotNil(t, reg)
	assert.Equal(t, []string{"foobar"}, reg.Rows)
}

func TestBlackHoleDiscards(t *testing.T) {
	tbl := NewTable(SpecRegisters{})
	require.NoError(t, tbl.WriteReg('_', "anything", false, pos.MTChar, 0))
	reg := tbl.GetYankRegister('_', ModePaste)
	assert.Nil(t, reg)
}

func TestUnnamedAliasesPrevWrite(t *testing.T) {
	tbl := NewTable(SpecRegisters{})
	require.NoError(t, tbl.WriteReg('x', "xyz", false, pos.MTChar, 0))
	reg := tbl.GetYankRegister('"', ModePaste)
	require.NotNil(t, reg)
	assert.Equal(t, []string{"xyz"}, reg.Rows)
}

func TestInvalidRegisterRejected(t *testing.T) {
	tbl := NewTable(SpecRegisters{})
	err := tbl.WriteReg('!', "x", false, pos.MTChar, 0)
	assert.Error(t, err)
}

type fakeClipboard struct {
	sets int
	last []string
}

func (f *fakeClipboard) Get(rune) ([]string, pos.MT, bool) { return nil, pos.MTChar, false }
func (f *fakeClipboard) Set(rows []string, kind pos.MT, name rune) error {
	f.sets++
	f.last = rows
	return nil
}

func TestBatchChangesCoalesce(t *testing.T) {
	tbl := NewTable(SpecRegisters{})
	cb := &fakeClipboard{}
	tbl.SetClipboard(cb, CbUnnamed)

	tbl.StartBatchChanges()
	for i := 0; i < 5; i++ {
		require.NoError(t, tbl.WriteReg('"', "x", false, pos.MTChar, 0))
		tbl.Publish('"', tbl.GetYankRegister('"', ModePaste))
	}
	require.NoError(t, tbl.EndBatchChanges())
	assert.Equal(t, 1, cb.sets)
}

func TestDoRecordRoundTrip(t *testing.T) {
	tbl := NewTable(SpecRegisters{})
	require.NoError(t, tbl.DoRecord('q'))
	reg, recording := tbl.IsRecording()
	require.True(t, recording)
	assert.Equal(t, 'q', reg)
	tbl.FeedRecording("ihello<Esc>")
	require.NoError(t, tbl.DoRecord('q'))
	got := tbl.GetYankRegister('q', ModePaste)
	require.NotNil(t, got)
	assert.Equal(t, "ihello<Esc>", got.Rows[0])
}
