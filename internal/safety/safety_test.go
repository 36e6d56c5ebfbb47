package safety

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHighTemperatureTrip(t *testing.T) {
	l := New()
	if !l.Check(0.5, 421, 100, false) {
		t.Fatal("expected scram on high temperature")
	}

	want := []Trip{{Kind: HighTemperature, Value: 421}}
	if diff := cmp.Diff(want, l.Trips()); diff != "" {
		t.Errorf("trips mismatch (-want +got):\n%s", diff)
	}
}

func TestSetpointsAreExclusive(t *testing.T) {
	l := New()
	if l.Check(MaxFlux, MaxTemp, MinFlow, false) {
		t.Errorf("readings exactly at setpoints must not trip, got %v", l.Trips())
	}
}

func TestLossOfFlowGuard(t *testing.T) {
	tests := []struct {
		name string
		flux float64
		flow float64
		trip bool
	}{
		{"cold shutdown without flow", 0.05, 5, false},
		{"at guard flux", 0.1, 5, false},
		{"powered without flow", 0.5, 5, true},
		{"powered with flow", 0.5, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			l.Check(tt.flux, 300, tt.flow, false)
			if got := HasTrip(l.Trips(), LossOfFlow); got != tt.trip {
				t.Errorf("loss of flow trip = %v, want %v", got, tt.trip)
			}
			if l.Scrammed() != tt.trip {
				t.Errorf("scrammed = %v, want %v", l.Scrammed(), tt.trip)
			}
		})
	}
}

func TestManualScramIgnoresInterlockBypass(t *testing.T) {
	l := New()
	l.SetInterlocks(false)

	if l.Check(5.0, 900, 0, false) {
		t.Fatal("bypassed interlocks must not trip")
	}
	if !l.Check(5.0, 900, 0, true) {
		t.Fatal("manual scram must trip even with interlocks bypassed")
	}

	want := []Trip{{Kind: ManualScram}}
	if diff := cmp.Diff(want, l.Trips()); diff != "" {
		t.Errorf("trips mismatch (-want +got):\n%s", diff)
	}
}

func TestLatchAndPerCallTrips(t *testing.T) {
	l := New()
	l.Check(1.2, 430, 5, false)

	want := []Trip{
		{Kind: HighTemperature, Value: 430},
		{Kind: HighFlux, Value: 1.2},
		{Kind: LossOfFlow, Value: 5},
	}
	if diff := cmp.Diff(want, l.Trips()); diff != "" {
		t.Errorf("trips mismatch (-want +got):\n%s", diff)
	}

	if !l.Check(0.01, 300, 100, false) {
		t.Error("scram must stay latched once tripped")
	}
	if len(l.Trips()) != 0 {
		t.Errorf("trips must be rebuilt each call, got %v", l.Trips())
	}
	if l.State() != Scrammed {
		t.Errorf("expected Scrammed state, got %v", l.State())
	}
}

func TestTripsReturnsCopy(t *testing.T) {
	l := New()
	l.Check(0.5, 421, 100, false)
	trips := l.Trips()
	trips[0].Value = 0

	if l.Trips()[0].Value != 421 {
		t.Error("Trips must not expose internal storage")
	}
}

func TestTripKindString(t *testing.T) {
	tests := map[TripKind]string{
		ManualScram:     "manual_scram",
		HighTemperature: "high_temperature",
		HighFlux:        "high_flux",
		LossOfFlow:      "loss_of_flow",
		TripKind(9):     "unknown",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(k), k.String(), want)
		}
	}
}
