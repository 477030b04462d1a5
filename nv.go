package sievego

import (
	"context"
	"time"

	"github.com/hupe1980/sievego/distance"
	"github.com/hupe1980/sievego/lattice"
)

// NV runs the Nguyen-Vidick sieve on s0 with reduction factor gamma.
//
// Each generation computes R, the mean norm of the generation. Vectors no
// longer than gamma·R pass through unchanged. Every other vector is reduced
// against the first center within gamma·R of it, or becomes a center itself.
// Zero vectors are dropped and the loop repeats until a generation is empty.
// The result is the shortest vector of the last nonempty generation.
//
// Zero vectors in s0 are ignored; s0 must hold at least one nonzero vector
// and every vector must have the same dimension.
func NV(ctx context.Context, s0 []lattice.Vector, gamma float64, optFns ...Option) (Result, error) {
	if err := validateGamma(gamma); err != nil {
		return Result{Status: StatusFailed}, err
	}
	gen, err := validateSet("s0", s0)
	if err != nil {
		return Result{Status: StatusFailed}, err
	}

	o := applyOptions(optFns)
	logger := o.logger.WithEngine(EngineNV).WithDimension(gen[0].Dim())
	start := time.Now()

	_, best := lattice.MinNorm(gen)
	bestNorm := best.Norm()

	res := Result{Status: StatusCompleted}
	for len(gen) > 0 {
		if ctx.Err() != nil {
			res.Status = StatusCancelled
			break
		}
		if o.capReached(res.Generations) {
			res.Status = StatusCapExceeded
			break
		}

		next, centers, reduced := nvStep(gen, gamma)
		res.Generations++

		stats := generationStats(res.Generations, next)
		stats.Centers = centers
		stats.Reducible = reduced
		if len(next) > 0 {
			bestNorm = min(bestNorm, stats.MinNorm)
		}
		stats.BestNorm = bestNorm
		res.Trace = append(res.Trace, stats)
		o.metricsCollector.RecordGeneration(EngineNV, stats)
		o.logProgress(ctx, logger, stats)

		if len(next) == 0 {
			break
		}
		gen = next
	}

	_, best = lattice.MinNorm(gen)
	res.setVector(best.Clone())

	elapsed := time.Since(start)
	o.metricsCollector.RecordRun(EngineNV, elapsed, res.Status, nil)
	logger.LogResult(ctx, res, elapsed, nil)
	return res, nil
}

// nvStep builds the next generation from gen and reports the number of
// centers and of vectors reduced against one. The returned generation holds
// no zero vectors.
func nvStep(gen []lattice.Vector, gamma float64) ([]lattice.Vector, int, int) {
	gR := gamma * lattice.MeanNorm(gen)
	gR2 := gR * gR

	next := make([]lattice.Vector, 0, len(gen))
	centers := make([]lattice.Vector, 0)
	reduced := 0

	for _, v := range gen {
		if distance.SquaredNorm(v) <= gR2 {
			next = append(next, v)
			continue
		}

		found := false
		for _, c := range centers {
			if distance.SquaredL2(v, c) <= gR2 {
				next = append(next, v.Sub(c))
				found = true
				break
			}
		}
		if found {
			reduced++
		} else {
			centers = append(centers, v)
		}
	}

	return lattice.WithoutZeros(next), len(centers), reduced
}
