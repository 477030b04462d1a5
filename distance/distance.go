package distance

import "math"

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	var sum float64
	i := 0
	for ; i+4 <= len(a); i += 4 {
		sum += a[i]*b[i] + a[i+1]*b[i+1] + a[i+2]*b[i+2] + a[i+3]*b[i+3]
	}
	for ; i < len(a); i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// SquaredNorm returns ‖v‖².
func SquaredNorm(v []float64) float64 {
	return Dot(v, v)
}

// Norm returns the Euclidean norm ‖v‖.
func Norm(v []float64) float64 {
	return math.Sqrt(Dot(v, v))
}

// SquaredL2 calculates the squared Euclidean distance ‖a−b‖².
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// L2 returns the Euclidean distance ‖a−b‖.
func L2(a, b []float64) float64 {
	return math.Sqrt(SquaredL2(a, b))
}

// SquaredSumNorm returns ‖a+b‖² without materializing a+b.
func SquaredSumNorm(a, b []float64) float64 {
	var sum float64
	for i := range a {
		s := a[i] + b[i]
		sum += s * s
	}
	return sum
}

// IsZero reports whether every coordinate of v is zero.
func IsZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
