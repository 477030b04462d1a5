package arena

import (
	"iter"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/sievego/lattice"
)

// compactRatio is the dead/total fraction above which Compact rebuilds.
const compactRatio = 0.5

// List is an append-only slab of vectors with tombstoned removals.
// It is not safe for concurrent use.
type List struct {
	slab  []lattice.Vector
	dead  *bitset.BitSet
	alive int
}

// New creates an empty list with room for capacity vectors.
func New(capacity int) *List {
	return &List{
		slab: make([]lattice.Vector, 0, capacity),
		dead: bitset.New(uint(capacity)),
	}
}

// Len returns the number of live vectors.
func (l *List) Len() int { return l.alive }

// Append adds v and returns its slot.
func (l *List) Append(v lattice.Vector) int {
	l.slab = append(l.slab, v)
	l.alive++
	return len(l.slab) - 1
}

// Get returns the vector in slot i and whether it is live.
func (l *List) Get(i int) (lattice.Vector, bool) {
	if i < 0 || i >= len(l.slab) || l.dead.Test(uint(i)) {
		return nil, false
	}
	return l.slab[i], true
}

// Remove tombstones slot i and returns the vector it held.
func (l *List) Remove(i int) (lattice.Vector, bool) {
	v, ok := l.Get(i)
	if !ok {
		return nil, false
	}
	l.dead.Set(uint(i))
	l.slab[i] = nil
	l.alive--
	return v, true
}

// All iterates live vectors in insertion order.
func (l *List) All() iter.Seq2[int, lattice.Vector] {
	return func(yield func(int, lattice.Vector) bool) {
		for i, v := range l.slab {
			if l.dead.Test(uint(i)) {
				continue
			}
			if !yield(i, v) {
				return
			}
		}
	}
}

// First returns the first live vector, in insertion order, that satisfies pred.
func (l *List) First(pred func(lattice.Vector) bool) (lattice.Vector, bool) {
	for _, v := range l.All() {
		if pred(v) {
			return v, true
		}
	}
	return nil, false
}

// Min returns the live vector of smallest norm. Ties keep the earliest.
func (l *List) Min() (lattice.Vector, bool) {
	var best lattice.Vector
	bestNorm := math.Inf(1)
	for _, v := range l.All() {
		if n := v.Norm(); n < bestNorm {
			best, bestNorm = v, n
		}
	}
	return best, best != nil
}

// Vectors returns the live vectors in insertion order.
func (l *List) Vectors() []lattice.Vector {
	out := make([]lattice.Vector, 0, l.alive)
	for _, v := range l.All() {
		out = append(out, v)
	}
	return out
}

// Compact drops tombstoned slots when they make up more than half of the slab.
// Slots returned earlier are invalidated. Reports whether it rebuilt.
func (l *List) Compact() bool {
	deadCount := len(l.slab) - l.alive
	if deadCount == 0 || float64(deadCount) <= compactRatio*float64(len(l.slab)) {
		return false
	}
	l.slab = l.Vectors()
	l.dead.ClearAll()
	return true
}
