// Package metrics summarizes a run as scalar figures of merit.
package metrics

import "github.com/san-kum/reactorsim/internal/sim"

// Standard returns a fresh set of every metric, in report order.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewPeakTemperature(),
		NewPeakFlux(),
		NewPeakPower(),
		NewTimeToTrip(),
		NewRodTravel(),
		NewNominalFraction(),
	}
}

// Attach adds a fresh standard set to r.
func Attach(r *sim.Runner) {
	for _, m := range Standard() {
		r.AddMetric(m)
	}
}
