// Package sparse implements the sparse set vimcore's NFA executor
// (regex/exec.go's threadList) uses to dedupe the thread list it rebuilds at
// every input position: a state can only run once per step, and a plain
// bool slice the size of the state arena would have to be zeroed on every
// step, while a sparse set clears in O(1) regardless of capacity.
package sparse

// defaultCapacity is used when a caller asks for a zero-sized set; state
// arenas smaller than this are common for short patterns so it avoids a
// pointless near-empty allocation.
const defaultCapacity = 64

// SparseSet is a set of uint32 values — here, regex.StateID arena
// indices — supporting O(1) insert, membership test, removal and clear.
// It keeps a sparse array (value -> position in dense) alongside a dense
// array (the values themselves, in insertion order) so Clear never has to
// walk the sparse side: only size is reset, and stale sparse entries are
// made harmless by the Contains double-check against dense.
type SparseSet struct {
	sparse []uint32 // Maps value -> index in dense
	dense  []uint32 // Contains the actual values
	size   uint32   // Current number of elements
}

// NewSparseSet creates a sparse set sized to capacity, the exclusive upper
// bound on values it can hold. The executor sizes this to len(Prog.States)
// so every StateID in the compiled program fits. capacity == 0 defaults to
// defaultCapacity rather than allocating a useless zero-length set.
func NewSparseSet(capacity uint32) *SparseSet {
	if capacity == 0 {
		capacity = defaultCapacity
	}
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
		size:   0,
	}
}

// Insert adds value (a StateID) to the set, reporting whether it was newly
// added. addThread relies on the false case — "this state is already on
// the current thread list" — to stop recursing through epsilon splits that
// would otherwise loop or duplicate a thread's priority position.
// Panics if value >= capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}

	s.dense = append(s.dense, value)
	s.sparse[value] = s.size
	s.size++
	return true
}

// Contains reports whether value is in the set. The sparse slot for a
// value never in the set, or no longer in it after Clear, can hold
// leftover garbage from a prior step; the idx < s.size && dense[idx] ==
// value check is what makes a stale sparse entry harmless.
func (s *SparseSet) Contains(value uint32) bool {
	// Check for potential overflow when converting len to uint32
	if len(s.sparse) > 0x7FFFFFFF {
		return false // len too large for safe conversion
	}
	//nolint:gosec // G115: len is checked above for safe conversion to uint32
	sparseLen := uint32(len(s.sparse))
	if value >= sparseLen {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Remove drops value from the set via swap-and-pop against the dense
// array's tail; a no-op if value isn't present.
func (s *SparseSet) Remove(value uint32) {
	if !s.Contains(value) {
		return
	}

	idx := s.sparse[value]

	lastValue := s.dense[s.size-1]
	s.dense[idx] = lastValue
	s.sparse[lastValue] = idx

	s.size--
	s.dense = s.dense[:s.size]
}

// Clear empties the set in O(1): the thread-list simulation calls this
// once per input position rather than reallocating a fresh set, since the
// sparse array's stale entries stay harmless (see Contains).
func (s *SparseSet) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
}

// Len returns the number of elements currently in the set.
func (s *SparseSet) Len() int {
	return int(s.size)
}

// Size is an alias for Len, kept for callers that read more naturally with
// "how big is this set" than "how many elements".
func (s *SparseSet) Size() int {
	return s.Len()
}

// IsEmpty reports whether the set holds no elements.
func (s *SparseSet) IsEmpty() bool {
	return s.size == 0
}

// Capacity returns the exclusive upper bound on values this set can hold
// without a Resize.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Values returns the set's elements in insertion order. The returned slice
// aliases the set's internal storage and is only valid until the next
// mutation — addThread's fallback path snapshots a thread's state id
// before this matters, never holds onto the slice itself.
func (s *SparseSet) Values() []uint32 {
	return s.dense[:s.size]
}

// Iter calls f once per element, in insertion order.
func (s *SparseSet) Iter(f func(uint32)) {
	for i := uint32(0); i < s.size; i++ {
		f(s.dense[i])
	}
}

// Resize changes the set's capacity. Growing preserves existing elements
// (a recompiled pattern with more states than the previous one reuses the
// same executor scratch space); resizing to a capacity no larger than the
// current capacity clears the set outright rather than trying to salvage the subset of
// elements that still fit, since a smaller arena means a different
// program and stale thread state has no meaning against it. capacity == 0
// defaults to defaultCapacity, same as NewSparseSet.
func (s *SparseSet) Resize(capacity uint32) {
	if capacity == 0 {
		capacity = defaultCapacity
	}
	if int(capacity) <= len(s.sparse) {
		s.sparse = s.sparse[:capacity]
		s.Clear()
		return
	}

	grown := make([]uint32, capacity)
	copy(grown, s.sparse)
	s.sparse = grown

	if cap(s.dense) < int(capacity) {
		grownDense := make([]uint32, len(s.dense), capacity)
		copy(grownDense, s.dense)
		s.dense = grownDense
	}
}

// Clone returns an independent copy of the set; mutating the clone never
// affects the original.
func (s *SparseSet) Clone() *SparseSet {
	return &SparseSet{
		sparse: append([]uint32(nil), s.sparse...),
		dense:  append([]uint32(nil), s.dense...),
		size:   s.size,
	}
}

// MemoryUsage estimates the set's backing storage in bytes (4 bytes per
// uint32 slot, sparse array length plus dense array capacity).
func (s *SparseSet) MemoryUsage() int {
	return len(s.sparse)*4 + cap(s.dense)*4
}

// SparseSets is a pair of sparse sets sized identically, the shape a
// two-list Thompson simulation (this step's thread list and the next
// step's) can use: clist is scanned while nlist is built, then the roles
// swap for the next input position without reallocating either one. The
// regex executor does not use this type; each of its thread lists holds
// its own SparseSet.
type SparseSets struct {
	Set1 *SparseSet
	Set2 *SparseSet
}

// NewSparseSets builds a SparseSets pair, both sized to capacity.
func NewSparseSets(capacity uint32) *SparseSets {
	return &SparseSets{
		Set1: NewSparseSet(capacity),
		Set2: NewSparseSet(capacity),
	}
}

// Swap exchanges Set1 and Set2 — the "current becomes next, next becomes
// current" step of the two-list NFA simulation.
func (ss *SparseSets) Swap() {
	ss.Set1, ss.Set2 = ss.Set2, ss.Set1
}

// Clear empties both sets.
func (ss *SparseSets) Clear() {
	ss.Set1.Clear()
	ss.Set2.Clear()
}

// Resize resizes both sets identically; see SparseSet.Resize for the
// grow/shrink semantics.
func (ss *SparseSets) Resize(capacity uint32) {
	ss.Set1.Resize(capacity)
	ss.Set2.Resize(capacity)
}

// MemoryUsage sums both sets' estimated backing storage.
func (ss *SparseSets) MemoryUsage() int {
	return ss.Set1.MemoryUsage() + ss.Set2.MemoryUsage()
}
