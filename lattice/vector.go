package lattice

import (
	"math"

	"github.com/hupe1980/sievego/distance"
)

// Vector is a lattice point in R^d.
type Vector []float64

// FromInts builds a Vector from integer coordinates.
func FromInts(xs ...int64) Vector {
	v := make(Vector, len(xs))
	for i, x := range xs {
		v[i] = float64(x)
	}
	return v
}

// Dim returns the number of coordinates.
func (v Vector) Dim() int { return len(v) }

// Norm returns the Euclidean norm of v.
func (v Vector) Norm() float64 { return distance.Norm(v) }

// IsZero reports whether v is the additive identity.
func (v Vector) IsZero() bool { return distance.IsZero(v) }

// Add returns v+w as a new vector.
func (v Vector) Add(w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + w[i]
	}
	return out
}

// Sub returns v−w as a new vector.
func (v Vector) Sub(w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] - w[i]
	}
	return out
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Equal reports whether v and w have identical coordinates.
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i] != w[i] {
			return false
		}
	}
	return true
}

// IsIntegral reports whether every coordinate is an integer.
func (v Vector) IsIntegral() bool {
	for _, x := range v {
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Ints returns the coordinates rounded to the nearest integer.
func (v Vector) Ints() []int64 {
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = int64(math.Round(x))
	}
	return out
}

// MinNorm returns the index and value of the shortest vector in set.
// Ties keep the earliest vector. Returns -1, nil for an empty set.
func MinNorm(set []Vector) (int, Vector) {
	best := -1
	bestNorm := math.Inf(1)
	for i, v := range set {
		if n := v.Norm(); n < bestNorm {
			best, bestNorm = i, n
		}
	}
	if best < 0 {
		return -1, nil
	}
	return best, set[best]
}

// MeanNorm returns the arithmetic mean of the norms in set, or 0 if set is empty.
func MeanNorm(set []Vector) float64 {
	if len(set) == 0 {
		return 0
	}
	var sum float64
	for _, v := range set {
		sum += v.Norm()
	}
	return sum / float64(len(set))
}

// WithoutZeros returns a new slice holding the nonzero vectors of set, in order.
func WithoutZeros(set []Vector) []Vector {
	out := make([]Vector, 0, len(set))
	for _, v := range set {
		if !v.IsZero() {
			out = append(out, v)
		}
	}
	return out
}
