package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/report"
)

func TestFFTImpulse(t *testing.T) {
	out := FFT([]float64{1, 0, 0, 0, 0, 0, 0, 0})
	for i, c := range out {
		if math.Abs(real(c)-1) > 1e-12 || math.Abs(imag(c)) > 1e-12 {
			t.Errorf("bin %d: expected 1, got %v", i, c)
		}
	}
}

func TestDominantOscillation(t *testing.T) {
	const (
		n  = 1024
		dt = 0.1
	)
	freq := 5 / (n * dt)

	values := make([]float64, n)
	for i := range values {
		values[i] = 1000 + 40*math.Sin(2*math.Pi*freq*float64(i)*dt)
	}

	o, err := DominantOscillation(values, dt)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(o.FrequencyHz-freq) > 1e-9 {
		t.Errorf("expected %f Hz, got %f", freq, o.FrequencyHz)
	}
	if math.Abs(o.PeriodS-1/freq) > 1e-6 {
		t.Errorf("expected period %f, got %f", 1/freq, o.PeriodS)
	}
	if math.Abs(o.Amplitude-40) > 1e-6 {
		t.Errorf("expected amplitude 40, got %f", o.Amplitude)
	}
}

func TestDominantOscillationFlat(t *testing.T) {
	o, err := DominantOscillation([]float64{5, 5, 5, 5, 5}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if o.FrequencyHz != 0 || o.PeriodS != 0 || o.Amplitude != 0 {
		t.Errorf("expected no oscillation, got %+v", o)
	}
}

func TestDominantOscillationTooShort(t *testing.T) {
	if _, err := DominantOscillation([]float64{1, 2}, 0.1); err != ErrTooShort {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	if _, err := DominantOscillation([]float64{1, 2, 3, 4}, 0); err != ErrTooShort {
		t.Errorf("expected ErrTooShort for zero dt, got %v", err)
	}
}

func history(n int) []reactor.Sample {
	h := make([]reactor.Sample, n)
	for i := range h {
		h[i] = reactor.Sample{Time: float64(i) * 0.1, PowerMW: float64(i * 10), Temp: 300 + float64(i)}
	}
	return h
}

func TestTrace(t *testing.T) {
	values, dt := Trace(history(11), report.Power)
	if len(values) != 11 || values[10] != 100 {
		t.Errorf("unexpected values %v", values)
	}
	if math.Abs(dt-0.1) > 1e-12 {
		t.Errorf("expected dt 0.1, got %f", dt)
	}
}

func TestPhasePortraitASCII(t *testing.T) {
	p := NewPhasePortrait(history(20), report.Power, report.Temperature)
	if len(p.Points) != 20 {
		t.Fatalf("expected 20 points, got %d", len(p.Points))
	}

	lines := strings.Split(strings.TrimRight(p.ASCII(20, 10), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[len(lines)-1], "o") {
		t.Errorf("expected start marker bottom left, got %q", lines[len(lines)-1])
	}
	end := -1
	for i, l := range lines {
		if strings.Contains(l, "@") {
			end = i
		}
	}
	if end < 0 || end > 2 {
		t.Errorf("expected end marker near the top, found on row %d", end)
	}

	if (&PhasePortrait{}).ASCII(10, 10) != "" {
		t.Error("expected empty plot for no points")
	}
}
