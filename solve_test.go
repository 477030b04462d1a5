package sievego

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/hupe1980/sievego/lattice"
	"github.com/hupe1980/sievego/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve(t *testing.T) {
	params := lattice.Params{N: 6, R: 3, Q: 11}

	t.Run("NV", func(t *testing.T) {
		rep, err := Solve(context.Background(), Config{
			Engine:      EngineNV,
			Params:      params,
			SampleCount: 64,
			Gamma:       0.9,
			Seed:        1,
		})
		require.NoError(t, err)

		assert.Equal(t, params, rep.Params)
		assert.Equal(t, params.MinkowskiBound(), rep.Bound)
		assert.Equal(t, 64, rep.InitialSize)
		assert.Equal(t, StatusCompleted, rep.Result.Status)
		assert.Greater(t, rep.EmbeddedNorm, 0.0)
		assert.NotNil(t, rep.Result.Vector)
	})

	t.Run("Deterministic", func(t *testing.T) {
		cfg := Config{Engine: EngineNV, Params: params, SampleCount: 32, Gamma: 0.8, Seed: 7}

		a, err := Solve(context.Background(), cfg)
		require.NoError(t, err)
		b, err := Solve(context.Background(), cfg)
		require.NoError(t, err)

		assert.Equal(t, a.Embedded, b.Embedded)
		assert.Equal(t, a.Result.Vector, b.Result.Vector)
		assert.Equal(t, a.Result.Generations, b.Result.Generations)
	})

	t.Run("Gauss", func(t *testing.T) {
		rep, err := Solve(context.Background(), Config{
			Engine:     EngineGauss,
			Params:     params,
			Collisions: 5,
			Seed:       2,
		}, WithMaxGenerations(50000))
		require.NoError(t, err)
		assert.Contains(t, []Status{StatusCompleted, StatusCapExceeded}, rep.Result.Status)
		assert.Greater(t, rep.Result.Samples, 0)
	})

	t.Run("DoubleWithBasis", func(t *testing.T) {
		basis := testutil.ToyBasis(t)
		s0 := []lattice.Vector{
			lattice.FromInts(10, 0),
			lattice.FromInts(11, 0),
			lattice.FromInts(12, 0),
			lattice.FromInts(13, 0),
		}

		rep, err := Solve(context.Background(), Config{
			Engine:  EngineDouble,
			Basis:   basis,
			Initial: s0,
			Gamma:   0.9,
			Seed:    3,
		}, WithStrategy(Exhaustive(nil)))
		require.NoError(t, err)

		assert.Equal(t, "exhaustive", rep.Strategy)
		assert.Equal(t, basis.Params(), rep.Params)
		assert.Nil(t, rep.Embedded)
		assert.Equal(t, StatusBoundReached, rep.Result.Status)
		assert.Less(t, rep.Result.Norm, rep.Bound)
	})

	t.Run("DoubleNamedStrategy", func(t *testing.T) {
		rep, err := Solve(context.Background(), Config{
			Engine:   EngineDouble,
			Basis:    testutil.ToyBasis(t),
			Initial:  []lattice.Vector{lattice.FromInts(10, 0), lattice.FromInts(11, 0), lattice.FromInts(12, 0), lattice.FromInts(13, 0)},
			Gamma:    0.9,
			Strategy: "parallel",
			Workers:  2,
			Seed:     3,
		})
		require.NoError(t, err)
		assert.Equal(t, "parallel", rep.Strategy)
		assert.Equal(t, StatusBoundReached, rep.Result.Status)
	})

	t.Run("DoubleDefaultSampleCount", func(t *testing.T) {
		rep, err := Solve(context.Background(), Config{
			Engine: EngineDouble,
			Params: params,
			Gamma:  0.95,
			Seed:   4,
		}, WithMaxGenerations(2))
		if err != nil {
			require.ErrorIs(t, err, ErrInsufficientCandidates)
			assert.NotEmpty(t, rep.Error)
		}
		assert.Equal(t, params.DefaultSampleCount(), rep.InitialSize)
		assert.Equal(t, "randomized", rep.Strategy)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := Solve(context.Background(), Config{Engine: "bogus", Params: params})
		require.ErrorIs(t, err, ErrInvalidParameter)

		_, err = Solve(context.Background(), Config{Engine: EngineNV, Params: params, Gamma: 0.9})
		require.ErrorIs(t, err, ErrInvalidParameter)

		_, err = Solve(context.Background(), Config{Engine: EngineDouble, Params: params, Gamma: 0.9, Strategy: "bogus"})
		require.ErrorIs(t, err, ErrInvalidParameter)

		_, err = Solve(context.Background(), Config{Engine: EngineNV, Params: lattice.Params{N: 0, R: 1, Q: 7}})
		require.ErrorIs(t, err, lattice.ErrInvalidParams)
	})

	t.Run("ReportJSON", func(t *testing.T) {
		rep, err := Solve(context.Background(), Config{
			Engine: EngineNV, Params: params, SampleCount: 16, Gamma: 0.9, Seed: 5,
		})
		require.NoError(t, err)

		b, err := json.Marshal(rep)
		require.NoError(t, err)

		var got Report
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, rep.Result.Status, got.Result.Status)
		assert.Equal(t, rep.Params, got.Params)
		assert.Equal(t, rep.Result.Vector, got.Result.Vector)
	})
}

func TestStatus(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusBoundReached, StatusCancelled, StatusCapExceeded, StatusFailed} {
		b, err := s.MarshalText()
		require.NoError(t, err)

		var got Status
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, s, got)
	}

	assert.Equal(t, "status(42)", Status(42).String())
	var s Status
	assert.Error(t, s.UnmarshalText([]byte("nope")))
}

func TestParseEngine(t *testing.T) {
	for _, name := range []string{"nv", "gauss", "double"} {
		e, err := ParseEngine(name)
		require.NoError(t, err)
		assert.Equal(t, Engine(name), e)
	}

	_, err := ParseEngine("lll")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestApplyOptionsDefaults(t *testing.T) {
	o := applyOptions([]Option{nil, WithLogger(nil), WithMetricsCollector(nil)})

	assert.NotNil(t, o.logger)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.NotNil(t, o.rng)
	assert.Equal(t, "randomized", o.strategy.Name())
	assert.False(t, o.capReached(1000))

	assert.False(t, o.logger.Enabled(context.Background(), slog.LevelError))

	o = applyOptions([]Option{WithLogLevel(slog.LevelWarn)})
	assert.True(t, o.logger.Enabled(context.Background(), slog.LevelWarn))
	assert.False(t, o.logger.Enabled(context.Background(), slog.LevelInfo))

	o = applyOptions([]Option{WithMaxGenerations(3)})
	assert.False(t, o.capReached(2))
	assert.True(t, o.capReached(3))
}
