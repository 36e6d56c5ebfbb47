package physics

import (
	"math"
	"testing"
)

func TestRodReactivity(t *testing.T) {
	tests := []struct {
		name     string
		rods     float64
		expected float64
	}{
		{"withdrawn", 0, 0.1},
		{"neutral", 50, 0},
		{"inserted", 100, -0.1},
		{"below range", -20, 0.1},
		{"above range", 140, -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RodReactivity(tt.rods); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("RodReactivity(%v) = %v, want %v", tt.rods, got, tt.expected)
			}
		})
	}
}

func TestRodReactivityMonotone(t *testing.T) {
	prev := RodReactivity(100)
	for rods := 99.0; rods >= 0; rods-- {
		rho := RodReactivity(rods)
		if rho <= prev {
			t.Fatalf("rho_rods not strictly increasing at rods=%v: %v <= %v", rods, rho, prev)
		}
		prev = rho
	}
}

func TestFluxGrowthIncreasesAsRodsWithdraw(t *testing.T) {
	growth := func(rods float64) float64 {
		r := NewReactivity()
		r.NeutronFlux = 1.0
		return r.Update(rods, 300, 0.1) - 1.0
	}

	prev := growth(100)
	for _, rods := range []float64{80, 60, 50, 40, 20, 0} {
		g := growth(rods)
		if g <= prev {
			t.Errorf("growth at rods=%v is %v, not above %v", rods, g, prev)
		}
		prev = g
	}
}

func TestDopplerFeedbackIsStabilizing(t *testing.T) {
	if DopplerReactivity(300) != 0 {
		t.Errorf("expected zero feedback at reference temp")
	}
	if DopplerReactivity(400) >= 0 {
		t.Errorf("expected negative feedback above reference temp")
	}
	if DopplerReactivity(200) <= 0 {
		t.Errorf("expected positive feedback below reference temp")
	}
}

func TestPeriod(t *testing.T) {
	r := NewReactivity()
	r.Update(50, 300, 0.1)
	if r.Period != InfinitePeriod {
		t.Errorf("expected infinite period near critical, got %v", r.Period)
	}

	r = NewReactivity()
	r.Update(0, 300, 0.1)
	want := GenerationTime / 0.1
	if math.Abs(r.Period-want) > 1e-9 {
		t.Errorf("expected period %v, got %v", want, r.Period)
	}
}

func TestXenonBuildAndDecay(t *testing.T) {
	r := NewReactivity()
	r.NeutronFlux = 1.5
	r.Update(50, 300, 0.1)
	if math.Abs(r.Xenon-XenonBuildRate*0.1) > 1e-15 {
		t.Fatalf("expected xenon build-up, got %v", r.Xenon)
	}

	r.NeutronFlux = 0.5
	before := r.Xenon
	r.Update(50, 300, 0.1)
	if r.Xenon != before*XenonDecay {
		t.Errorf("expected one canonical decay step, got %v want %v", r.Xenon, before*XenonDecay)
	}

	before = r.Xenon
	r.Update(50, 300, 0)
	if r.Xenon != before {
		t.Errorf("zero-width step changed xenon: %v -> %v", before, r.Xenon)
	}
}

func TestFluxNeverNegative(t *testing.T) {
	r := NewReactivity()
	r.NeutronFlux = 1.0
	// A huge step with strongly negative reactivity would overshoot below zero.
	flux := r.Update(100, 2000, 10)
	if flux < 0 || r.NeutronFlux < 0 {
		t.Errorf("flux went negative: %v", flux)
	}
}

func TestZeroStepKeepsFlux(t *testing.T) {
	r := NewReactivity()
	r.NeutronFlux = 0.7
	flux := r.Update(0, 350, 0)
	if flux != 0.7 {
		t.Errorf("expected flux unchanged, got %v", flux)
	}
}

func TestZeroStepKeepsReactivity(t *testing.T) {
	r := NewReactivity()
	for i := 0; i < 50; i++ {
		r.Update(30, 300+float64(i), 0.1)
	}
	before := *r

	// A different temperature would move the Doppler term if the step ran.
	r.Update(30, 105, 0)

	if *r != before {
		t.Errorf("zero step changed layer: %+v -> %+v", before, *r)
	}
}

func TestExternalReactivity(t *testing.T) {
	r := NewReactivity()
	r.External = 0.02
	r.Update(50, 300, 0.1)
	if math.Abs(r.Reactivity-0.02) > 1e-12 {
		t.Errorf("expected external reactivity to pass through, got %v", r.Reactivity)
	}
}

func TestDecayFactor(t *testing.T) {
	if DecayFactor(0.9, CanonicalStep) != 0.9 {
		t.Error("canonical step must return the per-step factor unchanged")
	}
	if DecayFactor(0.9, 0) != 1 {
		t.Error("zero step must not decay")
	}
	two := DecayFactor(0.9, 2*CanonicalStep)
	if math.Abs(two-0.81) > 1e-12 {
		t.Errorf("expected 0.81 for two steps, got %v", two)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{-1, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{101, 100},
		{math.NaN(), 0},
		{math.Inf(1), 100},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, 0, 100); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
