package metrics

import (
	"math"

	"github.com/san-kum/reactorsim/internal/reactor"
)

// RodTravel sums the absolute rod movement in percent.
type RodTravel struct {
	total float64
	last  float64
	seen  bool
}

func NewRodTravel() *RodTravel {
	return &RodTravel{}
}

func (r *RodTravel) Name() string {
	return "rod_travel_pct"
}

func (r *RodTravel) Observe(t float64, tel reactor.Telemetry, c reactor.Controls) {
	if r.seen {
		r.total += math.Abs(c.RodsPos - r.last)
	}
	r.last = c.RodsPos
	r.seen = true
}

func (r *RodTravel) Value() float64 {
	return r.total
}

func (r *RodTravel) Reset() {
	r.total = 0
	r.last = 0
	r.seen = false
}
