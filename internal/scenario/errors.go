package scenario

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidScenario    = errors.New("scenario: invalid scenario")
	ErrUnknownDisturbance = errors.New("scenario: unknown disturbance")
	// ErrNoSetpoint is returned when an action retargets a controller that has no setpoint.
	ErrNoSetpoint = errors.New("scenario: controller has no power setpoint")
)

// ActionError reports which scripted action failed.
type ActionError struct {
	Index   int
	At      float64
	Wrapped error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %d (at %.1fs): %v", e.Index, e.At, e.Wrapped)
}

func (e *ActionError) Unwrap() error {
	return e.Wrapped
}
