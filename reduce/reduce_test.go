package reduce

import (
	"testing"

	"github.com/hupe1980/sievego/lattice"
	"github.com/stretchr/testify/assert"
)

func TestCanShortenBy(t *testing.T) {
	tests := []struct {
		name string
		v, w lattice.Vector
		want bool
	}{
		{"Shorter", lattice.FromInts(3, 2), lattice.FromInts(2, -1), true},
		{"Self", lattice.FromInts(2, -1), lattice.FromInts(2, -1), true},
		{"LongerW", lattice.FromInts(2, -1), lattice.FromInts(3, 2), false},
		{"DifferenceGrows", lattice.FromInts(1, 3), lattice.FromInts(2, -1), false},
		{"ZeroW", lattice.FromInts(1, 3), lattice.FromInts(0, 0), false},
		{"Opposite", lattice.FromInts(-2, 1), lattice.FromInts(2, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanShortenBy(tt.v, tt.w))
		})
	}
}

func TestShortens(t *testing.T) {
	assert.True(t, Shortens(lattice.FromInts(3, 2), lattice.FromInts(2, -1)))
	assert.False(t, Shortens(lattice.FromInts(2, -1), lattice.FromInts(2, -1)), "equal norms never shorten")
	assert.False(t, Shortens(lattice.FromInts(1, 3), lattice.FromInts(2, -1)))
}

func TestCombine(t *testing.T) {
	v := lattice.FromInts(3, 1)
	w := lattice.FromInts(2, 1)

	got, c := Combine(v, w, 1.5)
	assert.Equal(t, Difference, c)
	assert.Equal(t, lattice.FromInts(1, 0), got)

	got, c = Combine(v, lattice.FromInts(-2, -1), 1.5)
	assert.Equal(t, Sum, c)
	assert.Equal(t, lattice.FromInts(1, 0), got)

	got, c = Combine(v, w, 0.5)
	assert.Equal(t, None, c)
	assert.Nil(t, got)
}

func TestCombinePrefersDifference(t *testing.T) {
	// v−w = (0,2) and v+w = (2,0) both have norm 2.
	v := lattice.FromInts(1, 1)
	w := lattice.FromInts(1, -1)

	got, c := Combine(v, w, 2)
	assert.Equal(t, Difference, c)
	assert.Equal(t, lattice.FromInts(0, 2), got)
}

func TestCombineRejectsZero(t *testing.T) {
	v := lattice.FromInts(2, -1)

	_, c := Combine(v, v, 10)
	assert.Equal(t, Sum, c, "v−v is zero so the sum is taken")

	got, c := Combine(v, lattice.FromInts(-2, 1), 1)
	assert.Equal(t, None, c, "v+(−v) is zero and v−(−v) is too long")
	assert.Nil(t, got)
}

func TestCombinationString(t *testing.T) {
	assert.Equal(t, "difference", Difference.String())
	assert.Equal(t, "sum", Sum.String())
	assert.Equal(t, "none", None.String())
}
