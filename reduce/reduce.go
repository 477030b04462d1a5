// Package reduce implements the pairwise norm-comparison predicates shared by
// every sieving engine. All functions are pure.
package reduce

import (
	"github.com/hupe1980/sievego/distance"
	"github.com/hupe1980/sievego/lattice"
)

// Combination identifies which combination of two vectors qualified.
type Combination int

const (
	// None means neither v−w nor v+w qualified.
	None Combination = iota
	// Difference means v−w qualified.
	Difference
	// Sum means v+w qualified.
	Sum
)

func (c Combination) String() string {
	switch c {
	case Difference:
		return "difference"
	case Sum:
		return "sum"
	default:
		return "none"
	}
}

// CanShortenBy reports whether subtracting w from v cannot increase v's norm:
// w ≠ 0, ‖w‖ ≤ ‖v‖ and ‖v−w‖ ≤ ‖v‖.
func CanShortenBy(v, w lattice.Vector) bool {
	if distance.IsZero(w) {
		return false
	}
	nv := distance.SquaredNorm(v)
	return distance.SquaredNorm(w) <= nv && distance.SquaredL2(v, w) <= nv
}

// Shortens reports whether v can shorten u: ‖u‖ > ‖v‖ and ‖u−v‖ ≤ ‖u‖.
func Shortens(u, v lattice.Vector) bool {
	nu := distance.SquaredNorm(u)
	return nu > distance.SquaredNorm(v) && distance.SquaredL2(u, v) <= nu
}

// Qualifies reports which combination of v and w is nonzero with norm at most
// threshold, without allocating. The difference is tried first.
func Qualifies(v, w lattice.Vector, threshold float64) Combination {
	t2 := threshold * threshold
	if d := distance.SquaredL2(v, w); d != 0 && d <= t2 {
		return Difference
	}
	if s := distance.SquaredSumNorm(v, w); s != 0 && s <= t2 {
		return Sum
	}
	return None
}

// Combine returns the qualifying combination of v and w at threshold (see
// Qualifies) together with which one it is. The vector is nil for None.
func Combine(v, w lattice.Vector, threshold float64) (lattice.Vector, Combination) {
	switch c := Qualifies(v, w, threshold); c {
	case Difference:
		return v.Sub(w), c
	case Sum:
		return v.Add(w), c
	default:
		return nil, None
	}
}
