package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/reactorsim/internal/physics"
)

// WriteIncident writes a plain-text incident report for an archived run:
// unit identity, final plant state, protection system line-up, figures of
// merit and the chain of events.
func WriteIncident(w io.Writer, s *Summary, generated time.Time) error {
	var b strings.Builder

	b.WriteString("REACTOR INCIDENT REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generated.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "Reactor Unit:      %s (%s)\n", s.UnitName, s.UnitID)
	if s.Preset != "" {
		fmt.Fprintf(&b, "Preset:            %s\n", s.Preset)
	}
	fmt.Fprintf(&b, "Final Status:      %s\n", s.Telemetry.Status)
	fmt.Fprintf(&b, "Final Temperature: %.1f C\n", s.Telemetry.Temp)
	fmt.Fprintf(&b, "Final Power:       %.0f MW\n", s.Telemetry.PowerMW)
	fmt.Fprintf(&b, "Reactivity:        %+.0f pcm\n", PCM(s.Telemetry.Reactivity))
	fmt.Fprintf(&b, "Period:            %s\n", FormatPeriod(s.Telemetry.Period))
	fmt.Fprintf(&b, "Simulated Time:    %.1f s (%d steps)\n\n", s.Time, s.Steps)

	scram := "READY"
	if s.Telemetry.Scram {
		scram = "ACTIVE"
	}
	interlocks := "ENABLED"
	if !s.Controls.SafetyEnabled {
		interlocks = "BYPASSED"
	}
	rodControl := "MANUAL"
	if s.Controller != "" && s.Controller != "none" {
		rodControl = strings.ToUpper(s.Controller)
	}

	b.WriteString("SYSTEM CONFIGURATION & SAFETY\n")
	fmt.Fprintf(&b, "[SCRAM SYSTEM] ....... %s\n", scram)
	fmt.Fprintf(&b, "[INTERLOCKS] ......... %s\n", interlocks)
	fmt.Fprintf(&b, "[ROD CONTROL] ........ %s\n", rodControl)
	fmt.Fprintf(&b, "[ROD POSITION] ....... %.1f%%\n", s.Controls.RodsPos)
	fmt.Fprintf(&b, "[COOLANT PUMPS] ...... %.0f%%\n", s.Controls.PumpSpeed)
	fmt.Fprintf(&b, "[HEAT SINK] .......... %.0f%%\n\n", s.Controls.CoolingEff)

	if len(s.Metrics) > 0 {
		b.WriteString("FIGURES OF MERIT\n")
		names := make([]string, 0, len(s.Metrics))
		for name := range s.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "  %-20s %.4f\n", name, s.Metrics[name])
		}
		b.WriteString("\n")
	}

	b.WriteString("CHAIN OF EVENTS\n")
	if len(s.Events) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, e := range s.Events {
		fmt.Fprintf(&b, "  %s\n", FormatEvent(e))
	}

	if s.Telemetry.Status == physics.Meltdown && !s.Controls.SafetyEnabled {
		b.WriteString("\nNON-COMPLIANCE: SAFETY SYSTEMS DISABLED.\n")
		b.WriteString("The automatic scram that would have prevented this was bypassed.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
