// Package safety implements the reactor protection interlocks.
//
// A [Layer] is a two-state machine, Normal and Scrammed. The only transition
// is Normal to Scrammed; once tripped the layer stays tripped for its
// lifetime. Trip reasons are returned as structured [Trip] values and are
// rebuilt on every [Layer.Check].
package safety

import "fmt"

const (
	// MaxTemp is the high core temperature trip setpoint in °C.
	MaxTemp = 420.0
	// MaxFlux is the high relative flux trip setpoint.
	MaxFlux = 1.15
	// MinFlow is the low coolant flow trip setpoint in percent.
	MinFlow = 10.0
	// MinFlowGuardFlux suppresses the loss-of-flow trip at near-zero power.
	MinFlowGuardFlux = 0.1
)

// State of the protection system.
type State int

const (
	Normal State = iota
	Scrammed
)

func (s State) String() string {
	if s == Scrammed {
		return "Scrammed"
	}
	return "Normal"
}

// TripKind identifies why the protection system acted.
type TripKind int

const (
	ManualScram TripKind = iota
	HighTemperature
	HighFlux
	LossOfFlow
)

func (k TripKind) String() string {
	switch k {
	case ManualScram:
		return "manual_scram"
	case HighTemperature:
		return "high_temperature"
	case HighFlux:
		return "high_flux"
	case LossOfFlow:
		return "loss_of_flow"
	default:
		return "unknown"
	}
}

func (k TripKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TripKind) UnmarshalText(text []byte) error {
	for _, v := range []TripKind{ManualScram, HighTemperature, HighFlux, LossOfFlow} {
		if v.String() == string(text) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("safety: unknown trip kind %q", text)
}

// Trip is one reason the layer demanded a scram. Value carries the observed
// quantity: temperature in °C, relative flux, or coolant flow in percent.
// It is zero for a manual scram.
type Trip struct {
	Kind  TripKind `json:"kind"`
	Value float64  `json:"value"`
}

// Layer evaluates the interlocks once per step.
type Layer struct {
	state            State
	trips            []Trip
	interlocksActive bool
}

func New() *Layer {
	return &Layer{
		state:            Normal,
		trips:            make([]Trip, 0, 4),
		interlocksActive: true,
	}
}

// SetInterlocks enables or bypasses the automatic trips. Manual scram is
// honored either way.
func (l *Layer) SetInterlocks(active bool) { l.interlocksActive = active }

func (l *Layer) InterlocksActive() bool { return l.interlocksActive }

func (l *Layer) State() State { return l.state }

func (l *Layer) Scrammed() bool { return l.state == Scrammed }

// Trips returns the reasons found by the most recent Check, in evaluation order.
func (l *Layer) Trips() []Trip {
	out := make([]Trip, len(l.trips))
	copy(out, l.trips)
	return out
}

// Check evaluates the interlocks against the given readings and returns the
// latched scram state.
func (l *Layer) Check(flux, temp, flow float64, manualScram bool) bool {
	l.trips = l.trips[:0]

	if manualScram {
		l.trip(Trip{Kind: ManualScram})
	}

	if l.interlocksActive {
		if temp > MaxTemp {
			l.trip(Trip{Kind: HighTemperature, Value: temp})
		}
		if flux > MaxFlux {
			l.trip(Trip{Kind: HighFlux, Value: flux})
		}
		if flow < MinFlow && flux > MinFlowGuardFlux {
			l.trip(Trip{Kind: LossOfFlow, Value: flow})
		}
	}

	return l.Scrammed()
}

func (l *Layer) trip(t Trip) {
	l.state = Scrammed
	l.trips = append(l.trips, t)
}

// HasTrip reports whether kind is present in trips.
func HasTrip(trips []Trip, kind TripKind) bool {
	for _, t := range trips {
		if t.Kind == kind {
			return true
		}
	}
	return false
}
