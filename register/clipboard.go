package register

import "github.com/coregx/vimcore/pos"

// StartBatchChanges opens a batch-changes bracket. Clipboard publishes
// triggered by writes inside the bracket are deferred; only the final
// state is staged, and a single provider Set call is issued at
// EndBatchChanges if anything changed — this is what makes
// `:while`/`:for` loops O(1) in provider calls instead of O(N)
// (spec.md §4.2, §8 "Clipboard batch coalescing").
func (t *Table) StartBatchChanges() { t.batch++ }

// EndBatchChanges closes a batch-changes bracket opened by
// StartBatchChanges, flushing any pending clipboard publish once the
// outermost bracket closes.
func (t *Table) EndBatchChanges() error {
	if t.batch == 0 {
		return nil
	}
	t.batch--
	if t.batch == 0 && t.batchPending {
		err := t.flushClipboard()
		t.batchPending = false
		return err
	}
	return nil
}

func (t *Table) flushClipboard() error {
	if t.clipboard == nil {
		return nil
	}
	return t.clipboard.Set(t.batchRows, t.batchKind, t.batchName)
}

// publishClipboard mirrors a just-written register to the clipboard
// provider per the cb_flags mask, honoring the batch-changes bracket.
// name is the register that was actually written ('"' for the unnamed
// register).
func (t *Table) publishClipboard(name rune, rows []string, kind pos.MT) {
	if name == '_' {
		return
	}
	var target rune
	switch {
	case name == '"' && t.cbFlags&CbUnnamed != 0:
		target = '*'
	case name == '"' && t.cbFlags&CbUnnamedPlus != 0:
		target = '+'
	case name == '*' || name == '+':
		target = name
	default:
		return
	}

	if t.batch > 0 {
		t.batchPending = true
		t.batchRows = rows
		t.batchKind = kind
		t.batchName = target
		return
	}
	if t.clipboard != nil {
		_ = t.clipboard.Set(rows, kind, target)
	} else if !t.warnedNoProvider {
		t.warnedNoProvider = true
	}
}

// Publish is called by the operator engine after a yank/delete commits a
// register, so the clipboard-mirroring policy lives in one place instead
// of being duplicated at every call site.
func (t *Table) Publish(name rune, reg *YankReg) {
	if reg == nil {
		return
	}
	t.publishClipboard(name, reg.Rows, reg.Type)
}
