// Package visited tracks which unordered index pairs have been tried during a
// sieve step.
package visited

import "github.com/RoaringBitmap/roaring/v2/roaring64"

// PairSet records unordered pairs {i, j} over indices [0, n). Marking (i, j)
// also marks (j, i).
type PairSet struct {
	n  uint64
	rb *roaring64.Bitmap
}

// NewPairSet creates an empty set for indices in [0, n).
func NewPairSet(n int) *PairSet {
	return &PairSet{n: uint64(n), rb: roaring64.New()}
}

func (s *PairSet) key(i, j int) uint64 {
	if i > j {
		i, j = j, i
	}
	return uint64(i)*s.n + uint64(j)
}

// Visit marks {i, j} and reports whether it was new.
func (s *PairSet) Visit(i, j int) bool {
	return s.rb.CheckedAdd(s.key(i, j))
}

// Visited reports whether {i, j} has been marked.
func (s *PairSet) Visited(i, j int) bool {
	return s.rb.Contains(s.key(i, j))
}

// Len returns the number of distinct pairs marked.
func (s *PairSet) Len() int {
	return int(s.rb.GetCardinality())
}

// Capacity returns the number of distinct unordered pairs i < j.
func (s *PairSet) Capacity() int {
	if s.n < 2 {
		return 0
	}
	return int(s.n * (s.n - 1) / 2)
}

// Exhausted reports whether every pair i < j has been marked.
func (s *PairSet) Exhausted() bool {
	return s.Len() >= s.Capacity()
}

// Reset clears the set for reuse.
func (s *PairSet) Reset() {
	s.rb.Clear()
}
