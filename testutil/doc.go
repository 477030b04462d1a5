// Package testutil provides testing utilities for sievego.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Vectors
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.IntVectors(8, 4, -5, 5)
//
// # Fixtures
//
//	basis := testutil.ToyBasis(t)                 // rank-2 lattice, q = 7
//	basis, w, s0 := testutil.Ajtai(t, params, 512, seed)
package testutil
