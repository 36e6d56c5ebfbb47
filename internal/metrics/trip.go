package metrics

import "github.com/san-kum/reactorsim/internal/reactor"

// TimeToTrip is the simulated time of the first scram, or -1 if none.
type TimeToTrip struct {
	at float64
}

func NewTimeToTrip() *TimeToTrip {
	return &TimeToTrip{at: -1}
}

func (m *TimeToTrip) Name() string { return "time_to_trip_s" }

func (m *TimeToTrip) Observe(t float64, tel reactor.Telemetry, c reactor.Controls) {
	if m.at < 0 && tel.Scram {
		m.at = t
	}
}

func (m *TimeToTrip) Value() float64 { return m.at }

func (m *TimeToTrip) Reset() { m.at = -1 }
