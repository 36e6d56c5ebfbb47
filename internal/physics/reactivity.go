package physics

import "math"

const (
	// RodWorth is the reactivity per percent of rod withdrawal from the 50% neutral point.
	RodWorth = 0.002
	// DopplerCoeff is the reactivity per °C above ReferenceTemp.
	DopplerCoeff = -0.0001
	// ReferenceTemp is the temperature at which Doppler feedback is zero.
	ReferenceTemp = 300.0

	// XenonBuildFlux is the flux above which xenon accumulates instead of decaying.
	XenonBuildFlux = 1.2
	// XenonBuildRate is the xenon reactivity gained per second above XenonBuildFlux.
	XenonBuildRate = 0.00005
	// XenonDecay is the per-canonical-step xenon retention below XenonBuildFlux.
	XenonDecay = 0.999

	// GenerationTime relates reactivity to the reported period.
	GenerationTime = 0.08
	// FluxGain scales the per-step exponential growth approximation.
	FluxGain = 5.0

	// CriticalBand is the |reactivity| below which the period is reported as infinite.
	CriticalBand = 1e-5
	// InfinitePeriod is the period reported inside CriticalBand.
	InfinitePeriod = 9999.0

	// CanonicalStep is the step size the per-step decay factors are calibrated for.
	CanonicalStep = 0.1

	// InitialFlux is the relative flux of a new unit.
	InitialFlux = 0.001
	// InitialPeriod is the period reported before the first step.
	InitialPeriod = 999.0
)

// Reactivity integrates net reactivity and relative neutron flux.
type Reactivity struct {
	Reactivity  float64
	NeutronFlux float64
	Period      float64
	Xenon       float64

	// External is an injected reactivity added on top of the modeled terms.
	External float64
}

func NewReactivity() *Reactivity {
	return &Reactivity{
		NeutronFlux: InitialFlux,
		Period:      InitialPeriod,
	}
}

// RodReactivity returns the reactivity contributed by a rod position in percent inserted.
func RodReactivity(rodsPos float64) float64 {
	return (50.0 - Clamp(rodsPos, 0, 100)) * RodWorth
}

// DopplerReactivity returns the temperature feedback term.
func DopplerReactivity(temp float64) float64 {
	return DopplerCoeff * (temp - ReferenceTemp)
}

// Update advances the layer by dt seconds using the rod position and the core
// temperature seen at the start of the step, and returns the new flux.
// A zero step leaves the layer untouched.
func (r *Reactivity) Update(rodsPos, temp, dt float64) float64 {
	if dt == 0 {
		return r.NeutronFlux
	}

	rhoRods := RodReactivity(rodsPos)
	rhoTemp := DopplerReactivity(temp)

	if r.NeutronFlux > XenonBuildFlux {
		r.Xenon += XenonBuildRate * dt
	} else {
		r.Xenon *= DecayFactor(XenonDecay, dt)
	}
	r.Xenon = math.Max(0, r.Xenon)

	r.Reactivity = rhoRods + rhoTemp - r.Xenon + r.External

	if math.Abs(r.Reactivity) < CriticalBand {
		r.Period = InfinitePeriod
	} else {
		r.Period = GenerationTime / r.Reactivity
	}

	r.NeutronFlux *= 1.0 + r.Reactivity*dt*FluxGain
	r.NeutronFlux = math.Max(0, r.NeutronFlux)

	return r.NeutronFlux
}

// DecayFactor rescales a per-canonical-step factor to an arbitrary dt.
// At dt == CanonicalStep the factor is returned unchanged; at dt == 0 it is 1.
func DecayFactor(perStep, dt float64) float64 {
	if dt <= 0 {
		return 1
	}
	return math.Pow(perStep, dt/CanonicalStep)
}

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
