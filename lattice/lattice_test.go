package lattice

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorArithmetic(t *testing.T) {
	v := FromInts(1, 2, 3)
	w := FromInts(4, -5, 6)

	assert.Equal(t, FromInts(5, -3, 9), v.Add(w))
	assert.Equal(t, FromInts(-3, 7, -3), v.Sub(w))
	assert.Equal(t, FromInts(1, 2, 3), v, "inputs must not be mutated")

	c := v.Clone()
	c[0] = 42
	assert.Equal(t, 1.0, v[0])

	assert.True(t, v.Sub(v).IsZero())
	assert.False(t, v.IsZero())
	assert.True(t, v.Equal(FromInts(1, 2, 3)))
	assert.False(t, v.Equal(FromInts(1, 2)))
	assert.InDelta(t, math.Sqrt(14), v.Norm(), 1e-12)
}

func TestVectorIntegral(t *testing.T) {
	assert.True(t, FromInts(-3, 0, 7).IsIntegral())
	assert.False(t, Vector{0.5, 1}.IsIntegral())
	assert.False(t, Vector{math.Inf(1)}.IsIntegral())
	assert.False(t, Vector{math.NaN()}.IsIntegral())
	assert.Equal(t, []int64{-3, 0, 7}, FromInts(-3, 0, 7).Ints())
}

func TestSetHelpers(t *testing.T) {
	set := []Vector{FromInts(3, 4), FromInts(0, 0), FromInts(1, 0), FromInts(0, -1)}

	idx, v := MinNorm(set)
	assert.Equal(t, 1, idx, "zero vector is the shortest by norm")
	assert.True(t, v.IsZero())

	nz := WithoutZeros(set)
	require.Len(t, nz, 3)
	idx, v = MinNorm(nz)
	assert.Equal(t, 1, idx, "ties keep the earliest vector")
	assert.Equal(t, FromInts(1, 0), v)

	assert.InDelta(t, 7.0/3.0, MeanNorm(nz), 1e-12)
	assert.Equal(t, 0.0, MeanNorm(nil))

	idx, v = MinNorm(nil)
	assert.Equal(t, -1, idx)
	assert.Nil(t, v)
}

func TestParams(t *testing.T) {
	p := Params{N: 1, R: 1, Q: 7}
	require.NoError(t, p.Validate())
	assert.Equal(t, 2, p.Dim())
	assert.InDelta(t, math.Sqrt(2)*math.Sqrt(7), p.MinkowskiBound(), 1e-9)

	p = Params{N: 20, R: 10, Q: 97}
	assert.Equal(t, int(math.Pow(2, 0.208*30)), p.DefaultSampleCount())
	assert.Equal(t, "n=20 r=10 q=97", p.String())

	for _, bad := range []Params{{0, 1, 7}, {1, 0, 7}, {1, 1, 1}} {
		assert.ErrorIs(t, bad.Validate(), ErrInvalidParams, bad.String())
	}
}

func TestNewBasis(t *testing.T) {
	b, err := NewBasis([][]int64{{1, 3}, {0, 7}})
	require.NoError(t, err)
	assert.Equal(t, Params{N: 1, R: 1, Q: 7}, b.Params())

	assert.True(t, b.Contains(FromInts(2, -1)))
	assert.True(t, b.Contains(FromInts(1, 3)))
	assert.True(t, b.Contains(FromInts(0, 7)))
	assert.False(t, b.Contains(FromInts(1, 0)))
	assert.False(t, b.Contains(Vector{2, -1.5}))
	assert.False(t, b.Contains(FromInts(2)))

	assert.Equal(t, FromInts(2, -1), b.Combine([]int64{2, -1}))

	rows := b.Rows()
	rows[0][1] = 99
	assert.Equal(t, []int64{1, 3}, b.Row(0), "Rows must return a copy")
}

func TestNewBasisRejectsNonSystematic(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int64
	}{
		{"Empty", nil},
		{"Ragged", [][]int64{{1, 3}, {0}}},
		{"AllUnit", [][]int64{{1, 0}, {0, 1}}},
		{"OffDiagonalQRow", [][]int64{{1, 3}, {1, 7}}},
		{"EntryOutsideModulus", [][]int64{{1, 9}, {0, 7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBasis(tt.rows)
			assert.ErrorIs(t, err, ErrNotSystematic)
		})
	}
}

func TestNewAjtai(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	p := Params{N: 12, R: 4, Q: 17}

	b, w, err := NewAjtai(p, rng)
	require.NoError(t, err)
	assert.Equal(t, p, b.Params())
	assert.Equal(t, p.Dim(), w.Dim())
	assert.True(t, b.Contains(w), "embedded vector must be a lattice point")
	assert.Equal(t, 1.0, w[p.N-1])

	again, err := NewBasis(b.Rows())
	require.NoError(t, err, "generated basis must be systematic")
	assert.Equal(t, p, again.Params())

	for i := 0; i < b.Dim(); i++ {
		assert.True(t, b.Contains(FromInts(b.Row(i)...)), "row %d", i)
	}
	x := make([]int64, b.Dim())
	for i := range x {
		x[i] = int64(i%5) - 2
	}
	assert.True(t, b.Contains(b.Combine(x)))
}

func TestNewAjtaiInvalid(t *testing.T) {
	_, _, err := NewAjtai(Params{N: 0, R: 1, Q: 7}, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, ErrInvalidParams)
}
