package reactor

import "github.com/san-kum/reactorsim/internal/physics"

const (
	// SpikeReactivity is the external reactivity added by a flux spike.
	SpikeReactivity = 0.02
	// SpikeDecay is the per-canonical-step decay of an injected spike.
	SpikeDecay = 0.9
	spikeFloor = 1e-6
	// CoolingFaultPenalty scales effective coolant flow during a cooling fault.
	CoolingFaultPenalty = 0.2
)

// Disturbance is an externally injected upset, used by instructors and
// scripted scenarios.
type Disturbance int

const (
	FluxSpike Disturbance = iota
	CoolingFault
	ClearDisturbance
)

func (d Disturbance) String() string {
	switch d {
	case FluxSpike:
		return "flux_spike"
	case CoolingFault:
		return "cooling_fault"
	case ClearDisturbance:
		return "clear"
	default:
		return "unknown"
	}
}

// ParseDisturbance maps a disturbance name back to its value.
func ParseDisturbance(name string) (Disturbance, bool) {
	for _, d := range []Disturbance{FluxSpike, CoolingFault, ClearDisturbance} {
		if d.String() == name {
			return d, true
		}
	}
	return 0, false
}

type disturbances struct {
	spike          float64
	coolingPenalty float64
}

func newDisturbances() disturbances {
	return disturbances{coolingPenalty: 1.0}
}

func (d *disturbances) apply(kind Disturbance) {
	switch kind {
	case FluxSpike:
		d.spike = SpikeReactivity
	case CoolingFault:
		d.coolingPenalty = CoolingFaultPenalty
	case ClearDisturbance:
		d.spike = 0
		d.coolingPenalty = 1.0
	}
}

func (d *disturbances) decay(dt float64) {
	if d.spike == 0 {
		return
	}
	d.spike *= physics.DecayFactor(SpikeDecay, dt)
	if d.spike < spikeFloor {
		d.spike = 0
	}
}
