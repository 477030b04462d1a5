// Package distance provides the float64 kernels used for lattice vector geometry.
//
// All functions assume equal-length inputs (caller's responsibility) and never
// allocate.
//
// # Usage
//
//	n := distance.Norm(v)
//	d2 := distance.SquaredL2(a, b)
//	zero := distance.IsZero(v)
package distance
