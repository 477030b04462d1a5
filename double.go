package sievego

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/sievego/lattice"
)

// Double runs the Double/K sieve on s0 with reduction factor gamma, stopping
// as soon as a generation holds a vector shorter than bound.
//
// Each generation is replaced by a new one of the same size built by the
// configured Strategy from pairwise sums and differences no longer than
// gamma times the mean norm. When a step cannot fill the next generation the
// shortest vector seen so far is returned together with an error matching
// ErrInsufficientCandidates.
//
// Generations are not monotone in their shortest vector, so the run keeps the
// best vector across all generations and returns it however the run ends.
//
// Zero vectors in s0 are ignored; s0 must hold at least one nonzero vector.
func Double(ctx context.Context, s0 []lattice.Vector, gamma, bound float64, optFns ...Option) (Result, error) {
	if err := validateGamma(gamma); err != nil {
		return Result{Status: StatusFailed}, err
	}
	if math.IsNaN(bound) || math.IsInf(bound, 0) || bound <= 0 {
		return Result{Status: StatusFailed}, invalidParam("bound", bound, "must be positive and finite")
	}
	gen, err := validateSet("s0", s0)
	if err != nil {
		return Result{Status: StatusFailed}, err
	}

	o := applyOptions(optFns)
	logger := o.logger.WithEngine(EngineDouble).WithDimension(gen[0].Dim())
	logger.DebugContext(ctx, "double sieve started",
		"size", len(gen),
		"strategy", o.strategy.Name(),
		"bound", bound,
	)
	start := time.Now()

	_, best := lattice.MinNorm(gen)
	bestNorm := best.Norm()

	res := Result{Status: StatusCompleted}
	for {
		if ctx.Err() != nil {
			res.Status = StatusCancelled
			break
		}
		if o.capReached(res.Generations) {
			res.Status = StatusCapExceeded
			break
		}

		out, stepErr := o.strategy.Step(ctx, StepInput{
			Generation: gen,
			Threshold:  gamma * lattice.MeanNorm(gen),
			Resources:  o.resources,
		})
		if stepErr != nil {
			if errors.Is(stepErr, context.Canceled) || errors.Is(stepErr, context.DeadlineExceeded) {
				res.Status = StatusCancelled
				break
			}
			res.Status = StatusFailed
			err = stepErr
			break
		}
		res.Generations++

		stats := generationStats(res.Generations, out.Next)
		stats.Reducible = out.Reducible
		stats.SuccessMeanNorm = out.MeanNorm
		if len(out.Next) > 0 && stats.MinNorm < bestNorm {
			_, best = lattice.MinNorm(out.Next)
			bestNorm = stats.MinNorm
		}
		stats.BestNorm = bestNorm
		res.Trace = append(res.Trace, stats)
		o.metricsCollector.RecordGeneration(EngineDouble, stats)
		o.logProgress(ctx, logger, stats)

		if len(out.Next) == 0 {
			break
		}
		if len(out.Next) != len(gen) {
			res.Status = StatusFailed
			err = fmt.Errorf("%s step returned %d vectors, want %d: %w",
				o.strategy.Name(), len(out.Next), len(gen), ErrInsufficientCandidates)
			break
		}

		gen = out.Next
		if stats.MinNorm < bound {
			res.Status = StatusBoundReached
			break
		}
	}

	res.setVector(best.Clone())

	elapsed := time.Since(start)
	o.metricsCollector.RecordRun(EngineDouble, elapsed, res.Status, err)
	logger.LogResult(ctx, res, elapsed, err)
	return res, err
}
