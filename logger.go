package sievego

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with sieve-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithEngine adds an engine field to the logger.
func (l *Logger) WithEngine(e Engine) *Logger {
	return &Logger{
		Logger: l.Logger.With("engine", string(e)),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogGeneration logs the statistics of one finished generation.
func (l *Logger) LogGeneration(ctx context.Context, stats GenerationStats) {
	l.DebugContext(ctx, "generation completed",
		"generation", stats.Generation,
		"size", stats.Size,
		"min_norm", stats.MinNorm,
		"best_norm", stats.BestNorm,
		"mean_norm", stats.MeanNorm,
		"reducible", stats.Reducible,
	)
}

// LogCollision logs a Gauss collision.
func (l *Logger) LogCollision(ctx context.Context, collisions, threshold, listSize int) {
	l.DebugContext(ctx, "collision",
		"collisions", collisions,
		"threshold", threshold,
		"list_size", listSize,
	)
}

// LogResult logs the outcome of an engine run.
func (l *Logger) LogResult(ctx context.Context, res Result, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sieve failed",
			"status", res.Status.String(),
			"generations", res.Generations,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "sieve finished",
		"status", res.Status.String(),
		"norm", res.Norm,
		"generations", res.Generations,
		"collisions", res.Collisions,
		"elapsed", elapsed,
	)
}
