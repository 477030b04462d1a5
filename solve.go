package sievego

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/sievego/lattice"
	"github.com/hupe1980/sievego/sampler"
)

// Config describes a complete sieve run for Solve.
type Config struct {
	Engine Engine
	Params lattice.Params
	// Basis is used when set; otherwise an Ajtai basis is built for Params.
	Basis *lattice.Basis
	// Initial is the starting generation for NV and Double. When empty it is
	// sampled from the basis.
	Initial []lattice.Vector
	// SampleCount is the size of the sampled initial generation. Defaults to
	// 2^(0.208·d) for Double; required for NV.
	SampleCount int
	// Sigma is the standard deviation of sampled coefficients. Defaults to 2q.
	Sigma float64
	Gamma float64
	// Strategy names the Double strategy. WithStrategy takes precedence.
	Strategy string
	// Workers is the Parallel strategy pool size.
	Workers int
	// Collisions is the Gauss collision threshold.
	Collisions int
	Seed       uint64
}

// Report is the outcome of Solve.
type Report struct {
	Engine   Engine         `json:"engine"`
	Params   lattice.Params `json:"params"`
	Seed     uint64         `json:"seed"`
	Strategy string         `json:"strategy,omitempty"`
	Gamma    float64        `json:"gamma,omitempty"`
	// Bound is the Minkowski bound of the lattice.
	Bound float64 `json:"bound"`
	// Embedded is the short vector planted by the Ajtai construction, if any.
	Embedded     lattice.Vector `json:"embedded,omitempty"`
	EmbeddedNorm float64        `json:"embedded_norm,omitempty"`
	InitialSize  int            `json:"initial_size,omitempty"`
	Result       Result         `json:"result"`
	Elapsed      time.Duration  `json:"elapsed"`
	Error        string         `json:"error,omitempty"`
}

// Solve builds or takes a basis, samples a starting generation and runs the
// configured engine. The random source derived from Seed drives basis
// construction, sampling and the default Double strategy.
func Solve(ctx context.Context, cfg Config, optFns ...Option) (Report, error) {
	rep := Report{Engine: cfg.Engine, Seed: cfg.Seed, Gamma: cfg.Gamma}

	rng, err := sampler.NewRand(cfg.Seed)
	if err != nil {
		return rep, fmt.Errorf("seed rng: %w", err)
	}

	basis := cfg.Basis
	if basis == nil {
		if err := cfg.Params.Validate(); err != nil {
			return rep, err
		}
		var w lattice.Vector
		basis, w, err = lattice.NewAjtai(cfg.Params, rng)
		if err != nil {
			return rep, fmt.Errorf("build basis: %w", err)
		}
		rep.Embedded = w
		rep.EmbeddedNorm = w.Norm()
	}
	rep.Params = basis.Params()
	rep.Bound = rep.Params.MinkowskiBound()

	src := sampler.NewGaussian(basis, rng, func(o *sampler.Options) {
		o.Sigma = cfg.Sigma
	})

	opts := []Option{WithRand(rng)}
	if cfg.Engine == EngineDouble {
		strategy, err := NewStrategy(cfg.Strategy, cfg.Workers, rng)
		if err != nil {
			return rep, err
		}
		opts = append(opts, WithStrategy(strategy))
	}
	opts = append(opts, optFns...)
	start := time.Now()

	var res Result
	switch cfg.Engine {
	case EngineNV, EngineDouble:
		if err := validateGamma(cfg.Gamma); err != nil {
			return rep, err
		}
		s0 := cfg.Initial
		if len(s0) == 0 {
			count := cfg.SampleCount
			if count <= 0 {
				if cfg.Engine == EngineNV {
					return rep, invalidParam("sample_count", count, "must be positive")
				}
				count = rep.Params.DefaultSampleCount()
			}
			s0, err = src.Sample(ctx, count)
			if err != nil {
				return rep, fmt.Errorf("sample initial set: %w", err)
			}
		}
		rep.InitialSize = len(s0)

		if cfg.Engine == EngineNV {
			res, err = NV(ctx, s0, cfg.Gamma, opts...)
		} else {
			rep.Strategy = applyOptions(opts).strategy.Name()
			res, err = Double(ctx, s0, cfg.Gamma, rep.Bound, opts...)
		}
	case EngineGauss:
		res, err = Gauss(ctx, src, cfg.Collisions, opts...)
	default:
		return rep, invalidParam("engine", cfg.Engine, "want nv, gauss or double")
	}

	rep.Result = res
	rep.Elapsed = time.Since(start)
	if err != nil {
		rep.Error = err.Error()
	}
	return rep, err
}
