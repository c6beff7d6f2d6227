package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDispatcher plays the role of do_cmdline for these tests: it
// owns the read loop, pulling lines through the LineGetter until EOF,
// the way DoSource expects its Dispatcher collaborator to behave.
type recordingDispatcher struct {
	lines []string
	lnums []int
}

func (d *recordingDispatcher) DoCmdline(line string, get LineGetter, cookie any, nestingLevel int) error {
	sc, _ := cookie.(*SourceCookie)
	for {
		l, ok := get.GetLine()
		if !ok {
			break
		}
		d.lines = append(d.lines, l)
		if sc != nil {
			d.lnums = append(d.lnums, sc.SourcingLnum())
		}
	}
	return nil
}

func TestDoSourceSplicesBackslashContinuation(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "test.vim")
	content := "echo 'hello'\n      \\ 'world'\n"
	require.NoError(t, os.WriteFile(fname, []byte(content), 0o644))

	disp := &recordingDispatcher{}
	s := NewSourcer(Options{}, disp, nil, nil)

	err := s.DoSource(fname, false, false)
	require.NoError(t, err)

	require.Len(t, disp.lines, 1)
	assert.Equal(t, "echo 'hello' 'world'", disp.lines[0])
	assert.Equal(t, 2, disp.lnums[0])
}

func TestDoSourceAssignsStableSIDAcrossRepeatedSourcing(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "plain.vim")
	require.NoError(t, os.WriteFile(fname, []byte("echo 1\n"), 0o644))

	s := NewSourcer(Options{}, &recordingDispatcher{}, nil, nil)
	require.NoError(t, s.DoSource(fname, false, false))
	si, created := s.Scripts().Lookup(fname)
	assert.False(t, created, "DoSource must have already registered the item")
	sid := si.SID

	require.NoError(t, s.DoSource(fname, false, false))
	si2, _ := s.Scripts().Lookup(fname)
	assert.Equal(t, sid, si2.SID, "re-sourcing the same file must not allocate a new SID")
}

func TestDoSourceRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	s := NewSourcer(Options{}, &recordingDispatcher{}, nil, nil)
	err := s.DoSource(dir, false, false)
	require.Error(t, err)
	var serr *SourceError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, serr.Err, ErrIsDirectory)
}

func TestDoSourceCannotOpenMissingFile(t *testing.T) {
	s := NewSourcer(Options{}, &recordingDispatcher{}, nil, nil)
	err := s.DoSource(filepath.Join(t.TempDir(), "nope.vim"), false, false)
	require.Error(t, err)
	var serr *SourceError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, serr.Err, ErrCannotOpen)
}
