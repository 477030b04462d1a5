// Package lattice defines the vectors, parameters and bases that the sieving
// engines operate on.
//
// A Vector is a plain []float64 with value semantics: every arithmetic helper
// returns a freshly allocated slice, so generations built from Add/Sub never
// alias their inputs.
//
// Bases are q-ary and kept in systematic form:
//
//	row i   (i < n): (e_i | a_i)        a_i ∈ Z_q^r
//	row n+k (k < r): q·e_{n+k}
//
// which is the row-convention layout of an Ajtai-style lattice. NewAjtai builds
// one with a known short vector embedded in it.
package lattice
