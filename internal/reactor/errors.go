package reactor

import (
	"errors"
	"fmt"
)

// ErrInvalidControl indicates an operator input outside its valid range.
var ErrInvalidControl = errors.New("reactor: invalid control value")

// ControlError reports which control was rejected.
type ControlError struct {
	Field string
	Value float64
}

func (e *ControlError) Error() string {
	return fmt.Sprintf("%s: %s=%v outside [0, 100]", ErrInvalidControl.Error(), e.Field, e.Value)
}

func (e *ControlError) Unwrap() error {
	return ErrInvalidControl
}
