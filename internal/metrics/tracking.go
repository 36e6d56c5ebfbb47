package metrics

import (
	"math"

	"github.com/san-kum/reactorsim/internal/reactor"
)

// TrackingError is the mean absolute deviation of power from a fixed target,
// counted only from time From onward. A scrammed step counts as a full
// miss of the target.
type TrackingError struct {
	TargetMW float64
	From     float64
	sum      float64
	samples  int
}

func NewTrackingError(targetMW, from float64) *TrackingError {
	return &TrackingError{TargetMW: targetMW, From: from}
}

func (e *TrackingError) Name() string {
	return "tracking_error_mw"
}

func (e *TrackingError) Observe(t float64, tel reactor.Telemetry, c reactor.Controls) {
	if t < e.From {
		return
	}
	e.samples++
	if tel.Scram {
		e.sum += e.TargetMW
		return
	}
	e.sum += math.Abs(tel.PowerMW - e.TargetMW)
}

// Value is +Inf when no step reached From.
func (e *TrackingError) Value() float64 {
	if e.samples == 0 {
		return math.Inf(1)
	}
	return e.sum / float64(e.samples)
}

func (e *TrackingError) Reset() {
	e.sum = 0
	e.samples = 0
}
