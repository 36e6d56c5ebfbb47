package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a run configuration that cannot be stepped.
	ErrInvalidConfig = errors.New("sim: invalid run config")

	// ErrNoValues indicates a sweep without any parameter values.
	ErrNoValues = errors.New("sim: sweep has no values")
)

// StepError records a problem at a specific step that did not stop the run.
type StepError struct {
	Time    float64
	Step    int
	Wrapped error
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e StepError) Unwrap() error {
	return e.Wrapped
}
