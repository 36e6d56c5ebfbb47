package metrics

import (
	"github.com/san-kum/reactorsim/internal/physics"
	"github.com/san-kum/reactorsim/internal/reactor"
)

// NominalFraction is the share of steps spent in Nominal thermal status.
type NominalFraction struct {
	nominal int
	samples int
}

func NewNominalFraction() *NominalFraction {
	return &NominalFraction{}
}

func (n *NominalFraction) Name() string {
	return "nominal_fraction"
}

func (n *NominalFraction) Observe(t float64, tel reactor.Telemetry, c reactor.Controls) {
	n.samples++
	if tel.Status == physics.Nominal {
		n.nominal++
	}
}

func (n *NominalFraction) Value() float64 {
	if n.samples == 0 {
		return 1.0
	}
	return float64(n.nominal) / float64(n.samples)
}

func (n *NominalFraction) Reset() {
	n.nominal = 0
	n.samples = 0
}
