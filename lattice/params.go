package lattice

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when lattice parameters are out of range.
var ErrInvalidParams = errors.New("invalid lattice parameters")

// Params are the Ajtai generator parameters of a q-ary lattice.
type Params struct {
	// N is the number of unit rows (the "n" of the generator).
	N int `json:"n"`
	// R is the number of q-rows (the "r" of the generator).
	R int `json:"r"`
	// Q is the modulus.
	Q int `json:"q"`
}

// Dim returns the lattice dimension d = n + r.
func (p Params) Dim() int { return p.N + p.R }

// Validate checks that the parameters describe a usable lattice.
func (p Params) Validate() error {
	switch {
	case p.N < 1:
		return fmt.Errorf("%w: n must be >= 1, got %d", ErrInvalidParams, p.N)
	case p.R < 1:
		return fmt.Errorf("%w: r must be >= 1, got %d", ErrInvalidParams, p.R)
	case p.Q < 2:
		return fmt.Errorf("%w: q must be >= 2, got %d", ErrInvalidParams, p.Q)
	}
	return nil
}

// MinkowskiBound returns sqrt(d)·det^(1/d) with det = q^r.
func (p Params) MinkowskiBound() float64 {
	d := float64(p.Dim())
	// q^(r/d) computed in log space so large r does not overflow.
	return math.Sqrt(d) * math.Exp(float64(p.R)*math.Log(float64(p.Q))/d)
}

// DefaultSampleCount returns ⌊2^(0.208·d)⌋, the initial set size the double
// sieve uses when none is given.
func (p Params) DefaultSampleCount() int {
	return int(math.Pow(2, 0.208*float64(p.Dim())))
}

func (p Params) String() string {
	return fmt.Sprintf("n=%d r=%d q=%d", p.N, p.R, p.Q)
}
