package script

import "time"

// ProfTime is a microsecond-resolution elapsed-time value, the Go
// analogue of spec.md §4.4's global `proftime` type. Zero value is the
// zero duration, matching Zero().
type ProfTime time.Duration

// nowProf returns the current instant; callers pair it with End to
// compute elapsed time, mirroring proftime's `start` operation (which in
// the original stashes a timestamp, not a duration).
func nowProf() time.Time { return time.Now() }

// End returns the elapsed ProfTime since start.
func End(start time.Time) ProfTime { return ProfTime(time.Since(start)) }

// Add returns a+b.
func (a ProfTime) Add(b ProfTime) ProfTime { return a + b }

// Sub returns a-b.
func (a ProfTime) Sub(b ProfTime) ProfTime { return a - b }

// SubWait subtracts accumulated "wait for user input" time, the
// `sub_wait` operation used to keep interactive pauses out of script
// timing (spec.md §4.4, §9 prof_inchar_exit note).
func (a ProfTime) SubWait(wait ProfTime) ProfTime { return a - wait }

// Divide returns a/n, for averaging per-call self time.
func (a ProfTime) Divide(n int) ProfTime {
	if n == 0 {
		return 0
	}
	return a / ProfTime(n)
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a ProfTime) Cmp(b ProfTime) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b are the same duration.
func (a ProfTime) Equal(b ProfTime) bool { return a == b }

// Zero reports whether a is the zero duration.
func (a ProfTime) Zero() bool { return a == 0 }

// SetLimit returns msec milliseconds as a ProfTime duration, used to seed
// a regex-timeout or profile cutoff that PassedLimit compares elapsed
// time against.
func SetLimit(msec int) ProfTime {
	return ProfTime(time.Duration(msec) * time.Millisecond)
}

// PassedLimit reports whether elapsed has reached or exceeded limit.
func PassedLimit(elapsed, limit ProfTime) bool {
	return limit != 0 && elapsed >= limit
}

// scriptProfSave records a child-entry timestamp on the parent item
// when sourcing recurses into another script while profiling is on
// (spec.md §4.4 "script_prof_save").
func scriptProfSave(parent *ScriptItem) {
	parent.PrNest++
	parent.PrChild = nowProf()
}

// scriptProfRestore measures the child's elapsed time since entry and
// folds it into the parent's pr_children total ("script_prof_restore").
func scriptProfRestore(parent *ScriptItem) {
	parent.PrNest--
	parent.PrChildren = parent.PrChildren.Add(End(parent.PrChild))
}
