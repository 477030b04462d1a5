package lattice

import "math/rand/v2"

// NewAjtai builds a random q-ary basis with an embedded short vector
// w = (v_0..v_{n-2}, 1, 0..0), v_i ∈ {-1, 0, 1}. The caller owns rng.
//
// The a-block is uniform modulo q except its last column, which is solved so
// that w lies in the lattice.
func NewAjtai(p Params, rng *rand.Rand) (*Basis, Vector, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	n, r, q := p.N, p.R, int64(p.Q)

	// u[k][i] is the a-entry of unit row i for q-column k.
	u := make([][]int64, r)
	for k := range u {
		u[k] = make([]int64, n)
		for i := 0; i < n-1; i++ {
			u[k][i] = rng.Int64N(q)
		}
	}
	short := make([]int64, n-1)
	for i := range short {
		short[i] = rng.Int64N(3) - 1
	}
	for k := 0; k < r; k++ {
		var s int64
		for i := 0; i < n-1; i++ {
			s += short[i] * u[k][i]
		}
		u[k][n-1] = mod(-s, q)
	}

	d := p.Dim()
	rows := make([][]int64, d)
	for i := 0; i < n; i++ {
		rows[i] = make([]int64, d)
		rows[i][i] = 1
		for k := 0; k < r; k++ {
			rows[i][n+k] = u[k][i]
		}
	}
	for k := 0; k < r; k++ {
		rows[n+k] = make([]int64, d)
		rows[n+k][n+k] = q
	}

	w := make([]int64, d)
	copy(w, short)
	w[n-1] = 1

	return &Basis{params: p, rows: rows}, FromInts(w...), nil
}
