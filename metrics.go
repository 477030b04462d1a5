package sievego

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting sieve metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordGeneration is called after every finished generation. For the
	// Gauss engine a generation is recorded whenever the best norm of L
	// improves.
	RecordGeneration(engine Engine, stats GenerationStats)

	// RecordCollision is called on every Gauss collision with the running total.
	RecordCollision(total int)

	// RecordRun is called once per engine run.
	RecordRun(engine Engine, duration time.Duration, status Status, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGeneration(Engine, GenerationStats)       {}
func (NoopMetricsCollector) RecordCollision(int)                            {}
func (NoopMetricsCollector) RecordRun(Engine, time.Duration, Status, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	Generations   atomic.Int64
	Candidates    atomic.Int64
	Reducible     atomic.Int64
	Collisions    atomic.Int64
	Runs          atomic.Int64
	RunErrors     atomic.Int64
	Cancelled     atomic.Int64
	CapExceeded   atomic.Int64
	RunTotalNanos atomic.Int64
	// bestNorm holds the best norm in micro units plus one; zero means unset.
	bestNorm atomic.Int64
}

// RecordGeneration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGeneration(_ Engine, stats GenerationStats) {
	b.Generations.Add(1)
	b.Candidates.Add(int64(stats.Size))
	b.Reducible.Add(int64(stats.Reducible))

	if stats.Size == 0 {
		return
	}
	enc := int64(stats.MinNorm*1e6) + 1
	for {
		cur := b.bestNorm.Load()
		if cur != 0 && cur <= enc {
			return
		}
		if b.bestNorm.CompareAndSwap(cur, enc) {
			return
		}
	}
}

// RecordCollision implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCollision(int) {
	b.Collisions.Add(1)
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ Engine, duration time.Duration, status Status, err error) {
	b.Runs.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
	switch status {
	case StatusCancelled:
		b.Cancelled.Add(1)
	case StatusCapExceeded:
		b.CapExceeded.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		Generations: b.Generations.Load(),
		Candidates:  b.Candidates.Load(),
		Reducible:   b.Reducible.Load(),
		Collisions:  b.Collisions.Load(),
		Runs:        b.Runs.Load(),
		RunErrors:   b.RunErrors.Load(),
		Cancelled:   b.Cancelled.Load(),
		CapExceeded: b.CapExceeded.Load(),
		RunAvgNanos: b.getAvgRunNanos(),
	}
	if enc := b.bestNorm.Load(); enc != 0 {
		s.BestNorm = float64(enc-1) / 1e6
	}
	return s
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.Runs.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Generations int64
	Candidates  int64
	Reducible   int64
	Collisions  int64
	Runs        int64
	RunErrors   int64
	Cancelled   int64
	CapExceeded int64
	RunAvgNanos int64
	// BestNorm is the smallest generation minimum seen, truncated to micro units.
	BestNorm float64
}
