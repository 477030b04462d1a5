// Package sievego approximates the Shortest Vector Problem on q-ary lattices
// with lattice sieving.
//
// Three engines are provided:
//
//   - NV runs the Nguyen-Vidick sieve: every generation is reduced against a
//     set of centers until a generation comes out empty.
//   - Gauss keeps a pairwise-reduced list L and a reprocessing stack, sampling
//     fresh vectors on demand until a number of collisions has been seen.
//   - Double combines pairs of vectors of a generation into a new generation
//     of the same size until a vector below the Minkowski bound appears.
//
// # Quick Start
//
//	rng, _ := sampler.NewRand(1)
//	params := lattice.Params{N: 20, R: 10, Q: 97}
//	basis, _, _ := lattice.NewAjtai(params, rng)
//
//	s0, _ := sampler.NewGaussian(basis, rng).Sample(ctx, 512)
//	res, err := sievego.NV(ctx, s0, 0.9)
//
// The Solve driver wires basis construction, sampling and an engine together:
//
//	rep, err := sievego.Solve(ctx, sievego.Config{
//	    Engine: sievego.EngineDouble,
//	    Params: params,
//	    Gamma:  0.95,
//	    Seed:   1,
//	}, sievego.WithStrategy(sievego.Parallel(8, nil)))
//
// # Termination
//
// Engines report how a run ended through Result.Status. Cancellation of the
// context and an exceeded generation cap are outcomes, not errors: the engine
// returns the best vector it holds together with a nil error. Errors are kept
// for invalid parameters, insufficient candidates in a Double step and
// failures of the sampler.
package sievego
