package lattice

import (
	"errors"
	"fmt"
)

// ErrNotSystematic is returned for bases that are not in q-ary systematic form.
var ErrNotSystematic = errors.New("basis is not in q-ary systematic form")

// Basis is a q-ary lattice basis in systematic row form. It is never mutated
// after construction.
type Basis struct {
	params Params
	rows   [][]int64
}

// NewBasis validates rows and derives (n, r, q) from them.
func NewBasis(rows [][]int64) (*Basis, error) {
	p, err := ParamsFromBasis(rows)
	if err != nil {
		return nil, err
	}
	d := p.Dim()
	for i, row := range rows {
		for j, x := range row {
			var want int64
			switch {
			case i < p.N && j < p.N && i == j:
				want = 1
			case i < p.N && j < p.N:
				want = 0
			case i >= p.N && j == i:
				want = int64(p.Q)
			case i >= p.N:
				want = 0
			default:
				// free a-block entry
				if x < 0 || x >= int64(p.Q) {
					return nil, fmt.Errorf("%w: entry (%d,%d)=%d outside [0,q)", ErrNotSystematic, i, j, x)
				}
				continue
			}
			if x != want {
				return nil, fmt.Errorf("%w: entry (%d,%d)=%d, want %d", ErrNotSystematic, i, j, x, want)
			}
		}
	}

	cp := make([][]int64, d)
	for i := range rows {
		cp[i] = append([]int64(nil), rows[i]...)
	}
	return &Basis{params: p, rows: cp}, nil
}

// ParamsFromBasis derives (n, r, q): n counts the unit diagonal entries,
// q is the first diagonal entry after them.
func ParamsFromBasis(rows [][]int64) (Params, error) {
	d := len(rows)
	if d == 0 {
		return Params{}, fmt.Errorf("%w: empty basis", ErrNotSystematic)
	}
	for i, row := range rows {
		if len(row) != d {
			return Params{}, fmt.Errorf("%w: row %d has %d entries, want %d", ErrNotSystematic, i, len(row), d)
		}
	}
	n := 0
	for i := 0; i < d && rows[i][i] == 1; i++ {
		n++
	}
	if n == d {
		return Params{}, fmt.Errorf("%w: no q-rows", ErrNotSystematic)
	}
	p := Params{N: n, R: d - n, Q: int(rows[n][n])}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Params returns the generator parameters of the basis.
func (b *Basis) Params() Params { return b.params }

// Dim returns the lattice dimension.
func (b *Basis) Dim() int { return b.params.Dim() }

// Row returns a copy of row i.
func (b *Basis) Row(i int) []int64 {
	return append([]int64(nil), b.rows[i]...)
}

// Rows returns a deep copy of the basis matrix.
func (b *Basis) Rows() [][]int64 {
	out := make([][]int64, len(b.rows))
	for i := range b.rows {
		out[i] = b.Row(i)
	}
	return out
}

// Combine returns Σ x_i·B_i. len(x) must equal Dim().
func (b *Basis) Combine(x []int64) Vector {
	d := b.Dim()
	acc := make([]int64, d)
	for i, c := range x {
		if c == 0 {
			continue
		}
		for j, e := range b.rows[i] {
			acc[j] += c * e
		}
	}
	return FromInts(acc...)
}

// Contains reports whether v is a point of the lattice: v must be integral and
// its last r coordinates must match Σ_i v_i·a_i modulo q.
func (b *Basis) Contains(v Vector) bool {
	p := b.params
	if len(v) != p.Dim() || !v.IsIntegral() {
		return false
	}
	x := v.Ints()
	q := int64(p.Q)
	for k := 0; k < p.R; k++ {
		col := p.N + k
		var s int64
		for i := 0; i < p.N; i++ {
			s = (s + x[i]*b.rows[i][col]) % q
		}
		if mod(x[col]-s, q) != 0 {
			return false
		}
	}
	return true
}

func mod(a, q int64) int64 {
	a %= q
	if a < 0 {
		a += q
	}
	return a
}
