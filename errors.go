package sievego

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned when an engine is called with arguments
	// it cannot run on. It is reported before any sieve step.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientCandidates is returned when a Double step finds fewer
	// qualifying combinations than the size of the generation.
	ErrInsufficientCandidates = errors.New("insufficient candidates")

	// ErrNoVector is returned when an engine ends without any nonzero vector.
	ErrNoVector = errors.New("no vector found")
)

// ParameterError describes a rejected argument.
//
// It matches ErrInvalidParameter via errors.Is.
type ParameterError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

// InsufficientCandidatesError reports a Double step that could not fill the
// next generation.
//
// It matches ErrInsufficientCandidates via errors.Is.
type InsufficientCandidatesError struct {
	Strategy string
	Want     int
	Got      int
}

func (e *InsufficientCandidatesError) Error() string {
	return fmt.Sprintf("insufficient candidates: %s step produced %d of %d", e.Strategy, e.Got, e.Want)
}

func (e *InsufficientCandidatesError) Unwrap() error { return ErrInsufficientCandidates }

func invalidParam(name string, value any, reason string) error {
	return &ParameterError{Name: name, Value: value, Reason: reason}
}
