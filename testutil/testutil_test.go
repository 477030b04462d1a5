package testutil

import (
	"testing"

	"github.com/hupe1980/sievego/lattice"
	"github.com/stretchr/testify/assert"
)

func TestIntVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.IntVectors(8, 4, -3, 3)

	assert.Equal(t, 8, len(v))
	for _, vec := range v {
		assert.Equal(t, 4, vec.Dim())
		assert.False(t, vec.IsZero())
		assert.True(t, vec.IsIntegral())
		for _, x := range vec {
			assert.GreaterOrEqual(t, x, -3.0)
			assert.LessOrEqual(t, x, 3.0)
		}
	}
}

func TestToyBasis(t *testing.T) {
	b := ToyBasis(t)

	assert.Equal(t, lattice.Params{N: 1, R: 1, Q: 7}, b.Params())
	assert.True(t, b.Contains(ToyShortest()))
}

func TestAjtai(t *testing.T) {
	p := lattice.Params{N: 6, R: 3, Q: 11}
	basis, w, vecs := Ajtai(t, p, 16, 1)

	assert.Len(t, vecs, 16)
	RequireInLattice(t, basis, w)
	RequireInLattice(t, basis, vecs...)
}
