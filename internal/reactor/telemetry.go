package reactor

import (
	"github.com/san-kum/reactorsim/internal/physics"
	"github.com/san-kum/reactorsim/internal/safety"
)

// Telemetry is the snapshot published after every step. A new value replaces
// the previous one wholesale.
type Telemetry struct {
	Flux       float64        `json:"flux"`
	PowerMW    float64        `json:"power_mw"`
	Temp       float64        `json:"temp"`
	Reactivity float64        `json:"reactivity"`
	Period     float64        `json:"period"`
	Trips      []safety.Trip  `json:"trips"`
	Scram      bool           `json:"scram"`
	Status     physics.Status `json:"status"`
	Xenon      float64        `json:"xenon"`
}

func initialTelemetry() Telemetry {
	return Telemetry{
		Flux:       physics.InitialFlux,
		PowerMW:    0,
		Temp:       physics.InitialCoreTemp,
		Reactivity: 0,
		Period:     physics.InitialPeriod,
		Trips:      []safety.Trip{},
		Scram:      false,
		Status:     physics.Nominal,
	}
}

func (t Telemetry) clone() Telemetry {
	trips := make([]safety.Trip, len(t.Trips))
	copy(trips, t.Trips)
	t.Trips = trips
	return t
}

// Sample is one history point, taken once per simulated second.
type Sample struct {
	Time       float64 `json:"time"`
	PowerMW    float64 `json:"power_mw"`
	Temp       float64 `json:"temp"`
	Reactivity float64 `json:"reactivity"`
}
