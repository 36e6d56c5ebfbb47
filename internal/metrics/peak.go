package metrics

import (
	"math"

	"github.com/san-kum/reactorsim/internal/reactor"
)

// Peak tracks the largest value of one telemetry field.
type Peak struct {
	name  string
	field func(reactor.Telemetry) float64
	max   float64
	seen  bool
}

func NewPeakTemperature() *Peak {
	return &Peak{
		name:  "peak_temp_c",
		field: func(tel reactor.Telemetry) float64 { return tel.Temp },
	}
}

func NewPeakFlux() *Peak {
	return &Peak{
		name:  "peak_flux",
		field: func(tel reactor.Telemetry) float64 { return tel.Flux },
	}
}

func NewPeakPower() *Peak {
	return &Peak{
		name:  "peak_power_mw",
		field: func(tel reactor.Telemetry) float64 { return tel.PowerMW },
	}
}

func (p *Peak) Name() string {
	return p.name
}

func (p *Peak) Observe(t float64, tel reactor.Telemetry, c reactor.Controls) {
	v := p.field(tel)
	if !p.seen {
		p.max = v
		p.seen = true
		return
	}
	p.max = math.Max(p.max, v)
}

func (p *Peak) Value() float64 {
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
	p.seen = false
}
