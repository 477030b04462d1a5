package sievego

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/sievego/internal/arena"
	"github.com/hupe1980/sievego/lattice"
	"github.com/hupe1980/sievego/reduce"
)

// Gauss runs the Gauss sieve, drawing fresh vectors from src on demand until
// c collisions have been counted.
//
// A candidate is popped from the reprocessing stack, or sampled when the
// stack is empty, and reduced greedily against the list L. A candidate that
// reduces to zero is a collision. Any other candidate moves every list vector
// it shortens back onto the stack and is appended to L.
//
// The context is checked once per iteration, before a candidate is taken.
// On cancellation the shortest vector of L is returned with StatusCancelled
// and the stack is discarded. Sampling runs detached from cancellation so an
// iteration always completes.
func Gauss(ctx context.Context, src Sampler, c int, optFns ...Option) (Result, error) {
	if src == nil {
		return Result{Status: StatusFailed}, invalidParam("sampler", nil, "must not be nil")
	}
	if c < 1 {
		return Result{Status: StatusFailed}, invalidParam("c", c, "must be at least 1")
	}

	o := applyOptions(optFns)
	logger := o.logger.WithEngine(EngineGauss)
	start := time.Now()

	g := &gaussSieve{
		list:     arena.New(64),
		bestNorm: math.Inf(1),
	}

	res := Result{Status: StatusCompleted}
	var err error
	for g.collisions < c {
		if ctx.Err() != nil {
			res.Status = StatusCancelled
			break
		}
		if o.capReached(res.Generations) {
			res.Status = StatusCapExceeded
			break
		}

		var v lattice.Vector
		v, err = g.next(ctx, src)
		if err != nil {
			res.Status = StatusFailed
			break
		}
		res.Generations++

		if g.insert(v) {
			o.metricsCollector.RecordCollision(g.collisions)
			logger.LogCollision(ctx, g.collisions, c, g.list.Len())
			continue
		}

		if best, ok := g.list.Min(); ok {
			if n := best.Norm(); n < g.bestNorm {
				g.bestNorm = n
				stats := GenerationStats{
					Generation: res.Generations,
					Size:       g.list.Len(),
					MinNorm:    n,
					BestNorm:   n,
					MeanNorm:   lattice.MeanNorm(g.list.Vectors()),
				}
				res.Trace = append(res.Trace, stats)
				o.metricsCollector.RecordGeneration(EngineGauss, stats)
				o.logProgress(ctx, logger, stats)
			}
		}
		g.list.Compact()
	}

	res.Collisions = g.collisions
	res.Samples = g.samples
	if best, ok := g.list.Min(); ok {
		res.setVector(best.Clone())
	} else if err == nil && res.Status == StatusCompleted {
		err = ErrNoVector
		res.Status = StatusFailed
	}

	elapsed := time.Since(start)
	o.metricsCollector.RecordRun(EngineGauss, elapsed, res.Status, err)
	logger.LogResult(ctx, res, elapsed, err)
	return res, err
}

type gaussSieve struct {
	list       *arena.List
	stack      []lattice.Vector
	collisions int
	samples    int
	bestNorm   float64
}

// next pops the stack or samples one fresh vector.
func (g *gaussSieve) next(ctx context.Context, src Sampler) (lattice.Vector, error) {
	if n := len(g.stack); n > 0 {
		v := g.stack[n-1]
		g.stack[n-1] = nil
		g.stack = g.stack[:n-1]
		return v, nil
	}

	vs, err := src.Sample(context.WithoutCancel(ctx), 1)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	if len(vs) != 1 {
		return nil, fmt.Errorf("sample: got %d vectors, want 1", len(vs))
	}
	g.samples++
	return vs[0], nil
}

// insert reduces v against the list and either counts a collision or adds
// v to the list. It reports whether v collided.
func (g *gaussSieve) insert(v lattice.Vector) bool {
	v = g.reduce(v)
	if v.IsZero() {
		g.collisions++
		return true
	}

	var targets []int
	for i, u := range g.list.All() {
		if reduce.Shortens(u, v) {
			targets = append(targets, i)
		}
	}
	for _, i := range targets {
		u, _ := g.list.Remove(i)
		g.stack = append(g.stack, u.Sub(v))
	}
	g.list.Append(v)
	return false
}

// reduce subtracts the first list vector that shortens v until none does.
//
// A step that keeps the norm unchanged can undo an earlier one when u and -u
// are both in the list, so the loop stops after more consecutive non-strict
// steps than the list holds.
func (g *gaussSieve) reduce(v lattice.Vector) lattice.Vector {
	flat := 0
	for !v.IsZero() {
		u, ok := g.list.First(func(u lattice.Vector) bool {
			return reduce.CanShortenBy(v, u)
		})
		if !ok {
			return v
		}

		before := v.Norm()
		v = v.Sub(u)
		if v.Norm() < before {
			flat = 0
			continue
		}
		flat++
		if flat > g.list.Len() {
			return v
		}
	}
	return v
}
