// Package sampler draws lattice vectors for the sieving engines.
//
// Gaussian implements the discretized-Gaussian sampler: every coefficient of a
// row combination is drawn from N(0, σ) and truncated toward zero, then the
// combination x·B is returned. Randomness comes from a keyed PRNG, so a seed
// fully determines the drawn vectors.
//
// Sequence replays a fixed list of vectors, which makes engine runs
// deterministic in tests and lets a stored sample set be fed back in.
package sampler
