package sampler

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/hupe1980/sievego/lattice"
)

// ErrInvalidCount is returned when a non-positive number of vectors is requested.
var ErrInvalidCount = errors.New("sample count must be positive")

// Options configures a Gaussian sampler.
type Options struct {
	// Sigma is the standard deviation of every coefficient.
	// If 0, defaults to 2q.
	Sigma float64
}

// Gaussian draws lattice points x·B with x_i = trunc(N(0, σ)).
// It is safe for concurrent use.
type Gaussian struct {
	basis *lattice.Basis
	sigma float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGaussian creates a sampler over basis using rng.
func NewGaussian(basis *lattice.Basis, rng *rand.Rand, optFns ...func(o *Options)) *Gaussian {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Sigma <= 0 {
		opts.Sigma = 2 * float64(basis.Params().Q)
	}
	return &Gaussian{basis: basis, sigma: opts.Sigma, rng: rng}
}

// Sigma returns the coefficient standard deviation.
func (g *Gaussian) Sigma() float64 { return g.sigma }

// Sample returns exactly count independent lattice vectors.
func (g *Gaussian) Sample(ctx context.Context, count int) ([]lattice.Vector, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	d := g.basis.Dim()
	out := make([]lattice.Vector, 0, count)
	x := make([]int64, d)

	g.mu.Lock()
	defer g.mu.Unlock()

	for range count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range x {
			// int64 conversion truncates toward zero.
			x[i] = int64(g.rng.NormFloat64() * g.sigma)
		}
		out = append(out, g.basis.Combine(x))
	}
	return out, nil
}
