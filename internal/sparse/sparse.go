// Package sparse provides a sparse set over uint32 values.
//
// The set supports O(1) insert, membership test, and clear while keeping a
// dense list of members in insertion order. The simulator uses it to track
// which NFA states are live at an input position: insertion order doubles as
// the deterministic iteration order, so two runs over the same input visit
// states identically.
package sparse

// Set is a set of uint32 values below a fixed capacity.
//
// It keeps two arrays: a sparse array mapping a value to its slot in the
// dense array, and the dense array holding the members themselves. A value v
// is a member iff sparse[v] points at a dense slot that holds v back. Neither
// array is zeroed on Clear, which is what makes Clear O(1).
type Set struct {
	sparse []uint32
	dense  []uint32
	size   uint32
}

// NewSet creates a set able to hold values in [0, capacity).
func NewSet(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set. It reports whether the value was newly
// inserted (false means it was already a member). Values at or above the
// set's capacity are rejected and reported as not inserted.
func (s *Set) Insert(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	if s.Contains(value) {
		return false
	}
	s.dense = append(s.dense, value)
	s.sparse[value] = s.size
	s.size++
	return true
}

// Contains reports whether value is a member of the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Clear removes all members in O(1) time.
func (s *Set) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *Set) Len() int {
	return int(s.size)
}

// Cap returns the exclusive upper bound on member values.
func (s *Set) Cap() uint32 {
	return uint32(len(s.sparse))
}

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool {
	return s.size == 0
}

// Values returns the members in insertion order. The slice aliases internal
// storage and is valid only until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense[:s.size]
}
