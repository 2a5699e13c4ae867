package solver

import (
	"errors"
	"fmt"
)

// Domain errors for solver operations.
var (
	// ErrInvalidParameter indicates a structurally invalid parameter set.
	ErrInvalidParameter = errors.New("solver: invalid parameter")

	// ErrUnstable indicates the stability ratio exceeds the explicit limit.
	ErrUnstable = errors.New("solver: explicit scheme unstable for r > 0.5")

	// ErrCompleted indicates a step was requested after the run finished.
	ErrCompleted = errors.New("solver: run already completed")

	// ErrStarted indicates a configuration change after stepping began.
	ErrStarted = errors.New("solver: stepping already began")
)

// ParameterError describes which parameter failed validation.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("solver: parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

// StabilityError reports a stability ratio above the explicit limit. It is a
// warning: the solver it accompanies remains usable.
type StabilityError struct {
	Ratio float64
}

func (e *StabilityError) Error() string {
	return fmt.Sprintf("solver: stability ratio r=%.4f exceeds %.1f", e.Ratio, StabilityLimit)
}

func (e *StabilityError) Unwrap() error { return ErrUnstable }
