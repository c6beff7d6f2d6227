package script

import (
	"os"

	"github.com/coregx/vimcore/pos"
)

// DoSource implements do_source (spec.md §4.4): expands and
// canonicalizes fname, rejects directories, fires SourceCmd/SourcePre,
// opens the file (retrying with '.'/'_' swapped when checkOther is
// set), detects a UTF-8 BOM, assigns script identity and SID, wires up
// profiling, and drives the dispatcher over one ex-command at a time
// until EOF.
func (s *Sourcer) DoSource(fname string, checkOther, isVimrc bool) error {
	expanded := pos.ExpandEnv(fname)
	canonical := pos.CanonicalPath(expanded)

	if pos.IsDir(canonical) {
		return &SourceError{Fname: fname, Err: ErrIsDirectory}
	}

	if s.Auto != nil {
		if s.Auto.Apply("SourceCmd", canonical) {
			return nil
		}
		s.Auto.Apply("SourcePre", canonical)
	}

	data, openPath, err := openWithRetry(canonical, checkOther)
	if err != nil {
		return &SourceError{Fname: fname, Err: ErrCannotOpen}
	}

	si, _ := s.scripts.Lookup(openPath)

	sc := &SourceCookie{fname: openPath, si: si}
	sc.data = sc.decoder.detectAndStrip(data)

	if s.Opts.ProfilingEnabled {
		if bp, ok := s.findForcedBreakpoint(si.Name); ok && bp.Forceit {
			si.ProfOn = true
			si.ProfForce = true
		}
	}

	startTime := nowProf()
	if si.ProfOn {
		si.PrCount++
	}

	lg := &scriptLineGetter{s: s, sc: sc}
	savedSID := s.debug.currentSID
	parent := s.scripts.ByID(savedSID)
	if parent != nil && parent.ProfOn {
		scriptProfSave(parent)
	}
	s.debug.currentSID = si.SID

	// do_cmdline(line, get_line_fn, cookie, flags): a single call drives
	// the whole file, the dispatcher pulling subsequent lines through lg
	// until it returns ok=false. vimcore supplies no initial line of its
	// own, since the first command also comes from the file.
	sourceErr := s.Dispatch.DoCmdline("", lg, sc, 0)

	if si.ProfOn {
		elapsed := End(startTime)
		si.PrTotal = si.PrTotal.Add(elapsed)
		si.PrSelf = si.PrTotal.Sub(si.PrChildren)
	}

	s.debug.currentSID = savedSID
	if parent != nil && parent.ProfOn {
		scriptProfRestore(parent)
	}
	sc.close()

	if sourceErr != nil && sourceErr != ErrFinish {
		return &SourceError{Fname: fname, Err: sourceErr}
	}
	return nil
}

// ProfileLine records one executed line's timing against its script
// item, called by the embedding dispatcher after running the command
// get_source_line most recently returned, when profiling is active
// (spec.md §4.4 step 9's per-line analogue of pr_total/pr_self).
func (s *Sourcer) ProfileLine(sc *SourceCookie, lnum int, elapsed ProfTime) {
	if sc.si == nil || !sc.si.ProfOn {
		return
	}
	lp := sc.si.lineProf(lnum)
	lp.Count++
	lp.Total = lp.Total.Add(elapsed)
	lp.Self = lp.Self.Add(elapsed)
}

// openWithRetry opens canonical for binary reading; if that fails and
// checkOther is set, it retries once with the leading '.'/'_' of the
// basename swapped (do_source step 4, e.g. .vimrc <-> _vimrc).
func openWithRetry(canonical string, checkOther bool) (data []byte, used string, err error) {
	data, err = os.ReadFile(canonical)
	if err == nil {
		return data, canonical, nil
	}
	if !checkOther {
		return nil, "", err
	}
	alt := pos.SwapDotUnderscore(canonical)
	data, err = os.ReadFile(alt)
	if err != nil {
		return nil, "", err
	}
	return data, alt, nil
}

// findForcedBreakpoint reports whether a file breakpoint exists for
// name with Forceit set, the gate for do_source step 7's "turn on
// profiling for the item even though :profile was never run against
// it" behavior.
func (s *Sourcer) findForcedBreakpoint(name string) (Breakpoint, bool) {
	for _, bp := range s.breaks.List() {
		if bp.Kind == BreakFile && bp.Forceit && bp.Name == name {
			return bp, true
		}
	}
	return Breakpoint{}, false
}

// scriptLineGetter adapts a SourceCookie into a LineGetter bound to its
// owning Sourcer, the tagged-variant shape spec.md §9 calls for in
// place of pointer-equality dispatch on getline_fn.
type scriptLineGetter struct {
	s  *Sourcer
	sc *SourceCookie
}

func (lg *scriptLineGetter) Kind() CookieKind { return CookieScript }

func (lg *scriptLineGetter) GetLine() (string, bool) {
	return lg.s.getSourceLine(lg.sc)
}
