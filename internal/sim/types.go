package sim

import (
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/safety"
)

// Controller acts as an operator between steps. It may change c; the runner
// validates the result before committing it to the unit.
type Controller interface {
	Adjust(t float64, tel reactor.Telemetry, c *reactor.Controls)
}

type Metric interface {
	Name() string
	Observe(t float64, tel reactor.Telemetry, c reactor.Controls)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(u *reactor.Unit)
}

type Config struct {
	Dt       float64
	Duration float64
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.1,
		Duration: 60.0,
	}
}

// Steps is the number of ticks needed to cover Duration.
func (c Config) Steps() int {
	return int(c.Duration/c.Dt + 0.5)
}

type Result struct {
	Steps int
	Time  float64
	// FirstTrip is the simulated time the unit scrammed during this run, or -1.
	FirstTrip float64
	Trips     []safety.Trip
	Final     reactor.Snapshot
	Metrics   map[string]float64
	Errors    []error
}

// Tripped reports whether the unit scrammed during the run.
func (r *Result) Tripped() bool { return r.FirstTrip >= 0 }
