package sievego

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	t.Run("BestNorm", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		assert.Zero(t, mc.GetStats().BestNorm)

		mc.RecordGeneration(EngineNV, GenerationStats{Size: 4, MinNorm: 3.5})
		mc.RecordGeneration(EngineNV, GenerationStats{Size: 4, MinNorm: 7})
		mc.RecordGeneration(EngineNV, GenerationStats{Size: 0})

		stats := mc.GetStats()
		assert.InDelta(t, 3.5, stats.BestNorm, 1e-6)
		assert.Equal(t, int64(3), stats.Generations)
		assert.Equal(t, int64(8), stats.Candidates)
	})

	t.Run("BestNormZero", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		mc.RecordGeneration(EngineDouble, GenerationStats{Size: 1, MinNorm: 2})
		mc.RecordGeneration(EngineDouble, GenerationStats{Size: 1, MinNorm: 0})
		assert.Zero(t, mc.GetStats().BestNorm)
	})

	t.Run("ConcurrentBestNorm", func(t *testing.T) {
		for trial := 0; trial < 200; trial++ {
			mc := &BasicMetricsCollector{}

			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					mc.RecordGeneration(EngineDouble, GenerationStats{Size: 1, MinNorm: float64(10 + g)})
				}()
			}
			wg.Wait()

			assert.InDelta(t, 10.0, mc.GetStats().BestNorm, 1e-6, "trial %d", trial)
		}
	})

	t.Run("Runs", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		mc.RecordRun(EngineGauss, 2*time.Millisecond, StatusCancelled, nil)
		mc.RecordRun(EngineGauss, 4*time.Millisecond, StatusCapExceeded, ErrNoVector)
		mc.RecordCollision(1)

		stats := mc.GetStats()
		assert.Equal(t, int64(2), stats.Runs)
		assert.Equal(t, int64(1), stats.RunErrors)
		assert.Equal(t, int64(1), stats.Cancelled)
		assert.Equal(t, int64(1), stats.CapExceeded)
		assert.Equal(t, int64(1), stats.Collisions)
		assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.RunAvgNanos)
	})
}
