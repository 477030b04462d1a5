package sievego

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/hupe1980/sievego/resource"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	maxGenerations   int
	strategy         Strategy
	rng              *rand.Rand
	resources        *resource.Controller
}

// Option configures an engine run.
type Option func(*options)

// WithLogger configures structured logging for engine runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := sievego.NewJSONLogger(slog.LevelDebug)
//	res, _ := sievego.NV(ctx, s0, 0.9, sievego.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &sievego.BasicMetricsCollector{}
//	res, _ := sievego.Gauss(ctx, src, 100, sievego.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("collisions: %d\n", stats.Collisions)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithMaxGenerations caps the number of generations of NV and Double runs and
// the number of outer iterations of Gauss runs. A run hitting the cap ends
// with StatusCapExceeded. Zero or a negative value means no cap.
func WithMaxGenerations(n int) Option {
	return func(o *options) {
		o.maxGenerations = n
	}
}

// WithStrategy selects the Double step strategy. Defaults to Randomized.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithRand sets the random source used by the default Double strategy.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithResources sets the resource controller that bounds workers, candidate
// memory and progress logging.
func WithResources(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.strategy == nil {
		o.strategy = Randomized(o.rng)
	}
	return o
}

func (o *options) capReached(generation int) bool {
	return o.maxGenerations > 0 && generation >= o.maxGenerations
}

// logProgress logs stats when the progress budget allows it.
func (o *options) logProgress(ctx context.Context, l *Logger, stats GenerationStats) {
	if o.resources.AllowProgress() {
		l.LogGeneration(ctx, stats)
	}
}
