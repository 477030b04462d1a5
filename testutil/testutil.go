package testutil

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/hupe1980/sievego/lattice"
	"github.com/hupe1980/sievego/sampler"
	"github.com/stretchr/testify/require"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Rand returns a fresh *rand.Rand seeded from this RNG. The returned value is
// not shared and need not be locked.
func (r *RNG) Rand() *rand.Rand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rand.New(rand.NewPCG(r.rand.Uint64(), r.rand.Uint64()))
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// IntVectors returns count integral vectors of dimension dim with entries in
// [lo, hi]. Zero vectors are redrawn.
func (r *RNG) IntVectors(count, dim int, lo, hi int64) []lattice.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]lattice.Vector, 0, count)
	for len(out) < count {
		xs := make([]int64, dim)
		for i := range xs {
			xs[i] = lo + r.rand.Int64N(hi-lo+1)
		}
		v := lattice.FromInts(xs...)
		if v.IsZero() {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ToyBasis returns the rank-2 lattice spanned by (1, 3) and (0, 7).
// Its shortest vectors are ±(2, -1).
func ToyBasis(tb testing.TB) *lattice.Basis {
	tb.Helper()
	b, err := lattice.NewBasis([][]int64{{1, 3}, {0, 7}})
	require.NoError(tb, err)
	return b
}

// ToyShortest is the shortest vector of ToyBasis up to sign.
func ToyShortest() lattice.Vector {
	return lattice.FromInts(2, -1)
}

// Ajtai builds an Ajtai basis for p from seed and samples count vectors
// from it. It returns the basis, the embedded short vector and the samples.
func Ajtai(tb testing.TB, p lattice.Params, count int, seed uint64) (*lattice.Basis, lattice.Vector, []lattice.Vector) {
	tb.Helper()

	rng, err := sampler.NewRand(seed)
	require.NoError(tb, err)

	basis, w, err := lattice.NewAjtai(p, rng)
	require.NoError(tb, err)

	vecs, err := sampler.NewGaussian(basis, rng).Sample(context.Background(), count)
	require.NoError(tb, err)

	return basis, w, vecs
}

// RequireInLattice fails tb unless every vector lies in basis.
func RequireInLattice(tb testing.TB, basis *lattice.Basis, vecs ...lattice.Vector) {
	tb.Helper()
	for i, v := range vecs {
		require.Truef(tb, basis.Contains(v), "vector %d %v is not a lattice point", i, v)
	}
}
