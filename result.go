package sievego

import (
	"context"
	"fmt"

	"github.com/hupe1980/sievego/lattice"
)

// Engine names a sieve engine.
type Engine string

const (
	EngineNV     Engine = "nv"
	EngineGauss  Engine = "gauss"
	EngineDouble Engine = "double"
)

// ParseEngine returns the Engine named s.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(s); e {
	case EngineNV, EngineGauss, EngineDouble:
		return e, nil
	default:
		return "", invalidParam("engine", s, "want nv, gauss or double")
	}
}

// Status describes how an engine run ended.
type Status int

const (
	// StatusCompleted is a run that reached its natural end: an empty NV
	// generation or c Gauss collisions.
	StatusCompleted Status = iota
	// StatusBoundReached is a Double run that produced a vector shorter than
	// the Minkowski bound.
	StatusBoundReached
	// StatusCancelled is a run stopped by its context.
	StatusCancelled
	// StatusCapExceeded is a run stopped by WithMaxGenerations.
	StatusCapExceeded
	// StatusFailed is a run that returned an error.
	StatusFailed
)

var statusNames = [...]string{
	StatusCompleted:    "completed",
	StatusBoundReached: "bound_reached",
	StatusCancelled:    "cancelled",
	StatusCapExceeded:  "cap_exceeded",
	StatusFailed:       "failed",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", b)
}

// GenerationStats summarizes one generation.
type GenerationStats struct {
	Generation int     `json:"generation"`
	Size       int     `json:"size"`
	MinNorm    float64 `json:"min_norm"`
	MeanNorm   float64 `json:"mean_norm"`
	// Reducible is the number of qualifying pairs found by a Double step, or
	// the number of NV vectors reduced against a center.
	Reducible int `json:"reducible,omitempty"`
	// Centers is the size of the NV center list.
	Centers int `json:"centers,omitempty"`
	// SuccessMeanNorm is the mean norm of every qualifying Double combination.
	SuccessMeanNorm float64 `json:"success_mean_norm,omitempty"`
	// BestNorm is the smallest norm seen so far in the run, initial set
	// included. It never increases along a trace.
	BestNorm float64 `json:"best_norm"`
}

// Result is the outcome of an engine run.
type Result struct {
	Vector      lattice.Vector    `json:"vector"`
	Norm        float64           `json:"norm"`
	Status      Status            `json:"status"`
	Generations int               `json:"generations"`
	Collisions  int               `json:"collisions,omitempty"`
	Samples     int               `json:"samples,omitempty"`
	Trace       []GenerationStats `json:"trace,omitempty"`
}

func (r *Result) setVector(v lattice.Vector) {
	r.Vector = v
	r.Norm = 0
	if v != nil {
		r.Norm = v.Norm()
	}
}

// Sampler draws lattice vectors on demand.
//
// Sample must return exactly count vectors, each an integer combination of
// the basis rows.
type Sampler interface {
	Sample(ctx context.Context, count int) ([]lattice.Vector, error)
}

func generationStats(gen int, set []lattice.Vector) GenerationStats {
	_, best := lattice.MinNorm(set)
	stats := GenerationStats{
		Generation: gen,
		Size:       len(set),
		MeanNorm:   lattice.MeanNorm(set),
	}
	if best != nil {
		stats.MinNorm = best.Norm()
	}
	return stats
}

func validateSet(name string, set []lattice.Vector) ([]lattice.Vector, error) {
	if len(set) == 0 {
		return nil, invalidParam(name, 0, "empty vector set")
	}
	d := set[0].Dim()
	for i, v := range set {
		if v.Dim() != d {
			return nil, invalidParam(name, i, fmt.Sprintf("dimension %d, want %d", v.Dim(), d))
		}
	}
	nz := lattice.WithoutZeros(set)
	if len(nz) == 0 {
		return nil, invalidParam(name, len(set), "all vectors are zero")
	}
	return nz, nil
}

func validateGamma(gamma float64) error {
	if !(gamma > 0 && gamma < 1) {
		return invalidParam("gamma", gamma, "must be in (0, 1)")
	}
	return nil
}
