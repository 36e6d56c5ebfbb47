// Package advisor explains the plant state to the operator: what is wrong,
// why it matters and what to do about it.
package advisor

import (
	"fmt"
	"sort"

	"github.com/san-kum/reactorsim/internal/physics"
	"github.com/san-kum/reactorsim/internal/reactor"
)

const (
	CladdingLimitTemp = 450.0
	OverpowerFlux     = 1.1
	FastPeriod        = 20.0
	XenonPitLevel     = 0.005
	XenonPitPowerMW   = 500.0
	LowMarginRods     = 10.0
	LowMarginPowerMW  = 1000.0
)

type Level int

const (
	Info Level = iota
	Warning
	Critical
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	}
	return "unknown"
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

type Advisory struct {
	Level  Level  `json:"level"`
	Title  string `json:"title"`
	Cause  string `json:"cause"`
	Effect string `json:"effect"`
	Action string `json:"action"`
}

// Analyze returns the advisories for one telemetry snapshot, most severe first.
func Analyze(tel reactor.Telemetry, c reactor.Controls) []Advisory {
	var out []Advisory

	if tel.Temp > CladdingLimitTemp {
		out = append(out, Advisory{
			Level:  Critical,
			Title:  "Fuel Cladding Failure Risk",
			Cause:  fmt.Sprintf("Core temp (%.0fC) exceeds zirconium limits.", tel.Temp),
			Effect: "Release of fission products into coolant loop.",
			Action: "SCRAM reactor immediately and maximize cooling.",
		})
	}

	if tel.Flux > OverpowerFlux {
		out = append(out, Advisory{
			Level:  Warning,
			Title:  "Overpower Transient",
			Cause:  "Reactivity insertion exceeds delayed neutron fraction.",
			Effect: "Rapid power excursion (Prompt Critical risk).",
			Action: "Insert control rods to reduce flux.",
		})
	}

	if tel.Period > 0 && tel.Period < FastPeriod {
		out = append(out, Advisory{
			Level:  Warning,
			Title:  "Fast Startup",
			Cause:  fmt.Sprintf("Reactor period is %.1fs.", tel.Period),
			Effect: "Power is rising exponentially fast.",
			Action: "Insert rods to stabilize.",
		})
	}

	if removal := physics.HeatRemovalMW(c.PumpSpeed, c.CoolingEff); tel.PowerMW > removal {
		out = append(out, Advisory{
			Level:  Warning,
			Title:  "Loss of Heat Sink",
			Cause:  fmt.Sprintf("Core power (%.0f MW) exceeds cooling capacity (%.0f MW).", tel.PowerMW, removal),
			Effect: "Core temperature will rise until feedback or a trip intervenes.",
			Action: "Raise pump speed or reduce power.",
		})
	}

	if !c.SafetyEnabled {
		out = append(out, Advisory{
			Level:  Warning,
			Title:  "Interlocks Bypassed",
			Cause:  "Automatic trips are disabled.",
			Effect: "Only a manual scram can shut the reactor down.",
			Action: "Restore the interlocks.",
		})
	}

	if c.RodsPos < LowMarginRods && tel.PowerMW > LowMarginPowerMW {
		out = append(out, Advisory{
			Level:  Warning,
			Title:  "Operating Margin Low",
			Cause:  "Too many rods are withdrawn.",
			Effect: "Scram effectiveness is reduced.",
			Action: "Insert rods to restore shutdown margin.",
		})
	}

	if tel.PowerMW < XenonPitPowerMW && tel.Xenon > XenonPitLevel {
		out = append(out, Advisory{
			Level:  Info,
			Title:  "Xenon Pit",
			Cause:  fmt.Sprintf("Xenon poison is %.0f pcm at low power.", tel.Xenon*1e5),
			Effect: "The reactor is poisoned out and slow to respond to rod withdrawal.",
			Action: "Wait for xenon to decay before raising power.",
		})
	}

	if tel.Scram {
		out = append(out, Advisory{
			Level:  Info,
			Title:  "Scram In Progress",
			Cause:  "The protection system has tripped.",
			Effect: fmt.Sprintf("Rods inserting, now at %.0f%%.", c.RodsPos),
			Action: "Maintain cooling flow and monitor decay heat.",
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Level > out[j].Level })
	return out
}
