package sievego

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/sievego/internal/visited"
	"github.com/hupe1980/sievego/lattice"
	"github.com/hupe1980/sievego/reduce"
	"github.com/hupe1980/sievego/resource"
)

// Strategy computes one Double step.
//
// Step must return exactly len(in.Generation) vectors, each the sum or
// difference of two distinct vectors of the generation with norm at most
// in.Threshold, or an error matching ErrInsufficientCandidates.
type Strategy interface {
	Name() string
	Step(ctx context.Context, in StepInput) (StepOutput, error)
}

// StepInput is the read-only input of a Double step.
type StepInput struct {
	Generation []lattice.Vector
	// Threshold is gamma times the mean norm of Generation.
	Threshold float64
	// Resources bounds workers and candidate memory. May be nil.
	Resources *resource.Controller
}

// StepOutput is the result of a Double step.
type StepOutput struct {
	Next []lattice.Vector
	// Pairs holds the generation indices combined into Next[k].
	Pairs [][2]int
	// Reducible is the number of qualifying pairs found.
	Reducible int
	// MeanNorm is the mean norm of every qualifying combination.
	MeanNorm float64
}

const checkEvery = 4096

type candidate struct {
	v    lattice.Vector
	pair [2]int
}

type randomized struct {
	rng *rand.Rand
}

// Randomized draws unordered index pairs at random, never trying a pair
// twice, until the next generation is full. Its cost is bounded by the
// generation size rather than by the number of pairs.
func Randomized(rng *rand.Rand) Strategy {
	return &randomized{rng: rng}
}

func (s *randomized) Name() string { return "randomized" }

func (s *randomized) Step(ctx context.Context, in StepInput) (StepOutput, error) {
	gen := in.Generation
	n := len(gen)
	rng := orDefault(s.rng)

	seen := visited.NewPairSet(n)
	out := StepOutput{
		Next:  make([]lattice.Vector, 0, n),
		Pairs: make([][2]int, 0, n),
	}
	var normSum float64

	for tries := 0; len(out.Next) < n; tries++ {
		if seen.Exhausted() {
			return out, &InsufficientCandidatesError{Strategy: s.Name(), Want: n, Got: len(out.Next)}
		}
		if tries%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return out, err
			}
		}

		i := rng.IntN(n)
		j := rng.IntN(n - 1)
		if j >= i {
			j++
		}
		i, j = min(i, j), max(i, j)
		if !seen.Visit(i, j) {
			continue
		}

		v, c := reduce.Combine(gen[i], gen[j], in.Threshold)
		if c == reduce.None {
			continue
		}
		out.Next = append(out.Next, v)
		out.Pairs = append(out.Pairs, [2]int{i, j})
		normSum += v.Norm()
	}

	out.Reducible = len(out.Next)
	out.MeanNorm = normSum / float64(len(out.Next))
	return out, nil
}

type exhaustive struct {
	rng *rand.Rand
}

// Exhaustive evaluates every unordered pair of the generation and keeps a
// uniform sample of the qualifying combinations, without replacement.
func Exhaustive(rng *rand.Rand) Strategy {
	return &exhaustive{rng: rng}
}

func (s *exhaustive) Name() string { return "exhaustive" }

func (s *exhaustive) Step(ctx context.Context, in StepInput) (StepOutput, error) {
	var held atomic.Int64
	defer func() { in.Resources.ReleaseMemory(held.Load()) }()

	n := len(in.Generation)
	var cands []candidate
	for i := range n - 1 {
		if err := ctx.Err(); err != nil {
			return StepOutput{}, err
		}
		row, err := evalRow(in, i, &held)
		if err != nil {
			return StepOutput{}, err
		}
		cands = append(cands, row...)
	}

	return subsample(s.Name(), cands, n, orDefault(s.rng))
}

// NewStrategy returns the strategy called name. An empty name selects
// Randomized; workers only applies to Parallel.
func NewStrategy(name string, workers int, rng *rand.Rand) (Strategy, error) {
	switch name {
	case "", "randomized":
		return Randomized(rng), nil
	case "exhaustive":
		return Exhaustive(rng), nil
	case "parallel":
		return Parallel(workers, rng), nil
	default:
		return nil, invalidParam("strategy", name, "want randomized, exhaustive or parallel")
	}
}

type parallel struct {
	workers int
	rng     *rand.Rand
}

// Parallel has the semantics of Exhaustive with the pairs of every row
// evaluated on a pool of workers. The pool lives for one step. A worker count
// of zero or less uses the resource controller's budget.
//
// Rows are gathered in index order, so for the same random source Parallel
// returns the same generation as Exhaustive.
func Parallel(workers int, rng *rand.Rand) Strategy {
	return &parallel{workers: workers, rng: rng}
}

func (s *parallel) Name() string { return "parallel" }

func (s *parallel) Step(ctx context.Context, in StepInput) (StepOutput, error) {
	var held atomic.Int64
	defer func() { in.Resources.ReleaseMemory(held.Load()) }()

	workers := s.workers
	if workers <= 0 {
		workers = in.Resources.Workers()
	}

	n := len(in.Generation)
	rows := make([][]candidate, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range n - 1 {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := evalRow(in, i, &held)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return StepOutput{}, err
	}

	var cands []candidate
	for _, row := range rows {
		cands = append(cands, row...)
	}
	return subsample(s.Name(), cands, n, orDefault(s.rng))
}

// evalRow combines gen[i] with every gen[j], j > i, and returns the
// qualifying combinations. Memory for each kept vector is charged to
// in.Resources and added to held.
func evalRow(in StepInput, i int, held *atomic.Int64) ([]candidate, error) {
	gen := in.Generation
	vi := gen[i]
	bytes := int64(vi.Dim()) * 8

	var row []candidate
	for j := i + 1; j < len(gen); j++ {
		if reduce.Qualifies(vi, gen[j], in.Threshold) == reduce.None {
			continue
		}
		if err := in.Resources.AcquireMemory(bytes); err != nil {
			return nil, fmt.Errorf("double step: %w", err)
		}
		held.Add(bytes)

		v, _ := reduce.Combine(vi, gen[j], in.Threshold)
		row = append(row, candidate{v: v, pair: [2]int{i, j}})
	}
	return row, nil
}

// subsample picks n of cands uniformly without replacement.
func subsample(name string, cands []candidate, n int, rng *rand.Rand) (StepOutput, error) {
	out := StepOutput{Reducible: len(cands)}
	if len(cands) > 0 {
		var sum float64
		for _, c := range cands {
			sum += c.v.Norm()
		}
		out.MeanNorm = sum / float64(len(cands))
	}
	if len(cands) < n {
		return out, &InsufficientCandidatesError{Strategy: name, Want: n, Got: len(cands)}
	}

	for k := range n {
		r := k + rng.IntN(len(cands)-k)
		cands[k], cands[r] = cands[r], cands[k]
	}

	out.Next = make([]lattice.Vector, n)
	out.Pairs = make([][2]int, n)
	for k, c := range cands[:n] {
		out.Next[k] = c.v
		out.Pairs[k] = c.pair
	}
	return out, nil
}

func orDefault(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
