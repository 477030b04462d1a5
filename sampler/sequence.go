package sampler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/sievego/lattice"
)

// ErrExhausted is returned when a Sequence has fewer vectors left than requested.
var ErrExhausted = errors.New("sample sequence exhausted")

// Sequence replays a fixed list of vectors in order.
type Sequence struct {
	mu   sync.Mutex
	vecs []lattice.Vector
	pos  int
}

// NewSequence creates a Sequence over copies of vecs.
func NewSequence(vecs []lattice.Vector) *Sequence {
	cp := make([]lattice.Vector, len(vecs))
	for i, v := range vecs {
		cp[i] = v.Clone()
	}
	return &Sequence{vecs: cp}
}

// Sample returns the next count vectors.
func (s *Sequence) Sample(ctx context.Context, count int) ([]lattice.Vector, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if left := len(s.vecs) - s.pos; left < count {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrExhausted, count, left)
	}
	out := make([]lattice.Vector, count)
	for i := range out {
		out[i] = s.vecs[s.pos+i].Clone()
	}
	s.pos += count
	return out, nil
}

// Drawn returns how many vectors have been handed out.
func (s *Sequence) Drawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Remaining returns how many vectors are left.
func (s *Sequence) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.vecs) - s.pos
}
