package report

import (
	"fmt"
	"math"

	"github.com/san-kum/reactorsim/internal/physics"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/safety"
)

// FormatTrip renders a trip the way the annunciator panel shows it.
func FormatTrip(t safety.Trip) string {
	switch t.Kind {
	case safety.ManualScram:
		return "MANUAL SCRAM INITIATED"
	case safety.HighTemperature:
		return fmt.Sprintf("TEMP HIGH TRIP (%.0fC)", t.Value)
	case safety.HighFlux:
		return fmt.Sprintf("FLUX HIGH TRIP (%.0f%%)", t.Value*100)
	case safety.LossOfFlow:
		return "LOSS OF FLOW TRIP"
	}
	return "UNKNOWN TRIP"
}

func FormatTrips(trips []safety.Trip) []string {
	out := make([]string, len(trips))
	for i, t := range trips {
		out[i] = FormatTrip(t)
	}
	return out
}

// PCM converts reactivity to per cent mille.
func PCM(reactivity float64) float64 {
	return reactivity * 1e5
}

// FormatPeriod renders the reactor period, showing the infinite marker as ∞.
func FormatPeriod(period float64) string {
	if period >= physics.InfinitePeriod || math.IsInf(period, 0) {
		return "∞"
	}
	return fmt.Sprintf("%.1fs", period)
}

// FormatEvent renders one event log entry as T+time followed by its message.
func FormatEvent(e reactor.Event) string {
	var msg string
	switch e.Kind {
	case reactor.EventTrip:
		msg = FormatTrip(e.Trip)
	case reactor.EventScram:
		msg = "REACTOR TRIPPED (SCRAM)"
	case reactor.EventStatus:
		msg = fmt.Sprintf("CORE STATUS %s", e.Status)
	default:
		msg = e.Kind.String()
	}
	return fmt.Sprintf("T+%.1fs  %s", e.Time, msg)
}
