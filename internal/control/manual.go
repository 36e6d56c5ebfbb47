package control

import "github.com/san-kum/reactorsim/internal/reactor"

// Manual leaves every input to the human operator.
type Manual struct{}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Adjust(t float64, tel reactor.Telemetry, c *reactor.Controls) {}
