package script

import "time"

// LineProf is one profiled source line's accumulated timing (spec.md §3
// ScriptItem's `prl` entries).
type LineProf struct {
	Count int
	Total ProfTime
	Self  ProfTime
}

// ScriptItem is the process-lifetime record for one sourced file
// (spec.md §3). Entries are never recycled: SIDs remain valid for the
// life of the process even after re-sourcing (§5, §4.4 "ScriptItem
// entries live for the process lifetime").
type ScriptItem struct {
	SID  int
	Name string

	// identity is the dedup key computed at registration time: either a
	// (dev, ino) pair on platforms where fstat is available, or the
	// canonicalized path otherwise (spec.md §4.4 step 6, §8 "Script
	// identity").
	identity scriptIdentity

	ProfOn    bool
	ProfForce bool
	PrCount   int
	PrTotal   ProfTime
	PrSelf    ProfTime
	PrStart   time.Time
	PrChildren ProfTime
	PrNest    int
	// PrChild is the timestamp the most recently entered nested script
	// recorded on this (parent) item via scriptProfSave; restored into
	// PrChildren by scriptProfRestore (spec.md §4.4 "pr_child").
	PrChild time.Time
	Prl     []LineProf
}

// lineProf grows Prl to cover lnum (1-based) and returns a pointer to
// its entry, the accounting unit get_source_line updates every call
// when profiling is on.
func (si *ScriptItem) lineProf(lnum int) *LineProf {
	for len(si.Prl) < lnum {
		si.Prl = append(si.Prl, LineProf{})
	}
	return &si.Prl[lnum-1]
}

// Registry is the script item table keyed by identity, assigning fresh
// monotonic SIDs (spec.md §4.4 step 6). Not safe for concurrent use.
type Registry struct {
	items   []*ScriptItem
	byIdent map[scriptIdentity]*ScriptItem
}

// NewRegistry creates an empty script registry.
func NewRegistry() *Registry {
	return &Registry{byIdent: make(map[scriptIdentity]*ScriptItem)}
}

// Lookup finds or creates the ScriptItem for fname, canonicalizing and
// stat-ing it to compute its identity key. The second return reports
// whether a new item was allocated.
func (r *Registry) Lookup(fname string) (*ScriptItem, bool) {
	ident := identityOf(fname)
	if si, ok := r.byIdent[ident]; ok {
		return si, false
	}
	si := &ScriptItem{SID: len(r.items) + 1, Name: fname, identity: ident}
	r.items = append(r.items, si)
	r.byIdent[ident] = si
	return si, true
}

// ByID returns the item with the given SID, or nil if out of range.
func (r *Registry) ByID(sid int) *ScriptItem {
	if sid < 1 || sid > len(r.items) {
		return nil
	}
	return r.items[sid-1]
}

// All returns every registered item in SID order, for :scriptnames and
// :profile dump.
func (r *Registry) All() []*ScriptItem {
	return r.items
}
