package advisor

import (
	"testing"

	"github.com/san-kum/reactorsim/internal/reactor"
)

func titles(as []Advisory) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Title
	}
	return out
}

func contains(as []Advisory, title string) bool {
	for _, a := range as {
		if a.Title == title {
			return true
		}
	}
	return false
}

func TestAnalyzeQuiet(t *testing.T) {
	tel := reactor.Telemetry{Flux: 0.5, PowerMW: 1000, Temp: 240, Period: 9999}
	if got := Analyze(tel, reactor.DefaultControls()); len(got) != 0 {
		t.Errorf("expected no advisories, got %v", titles(got))
	}
}

func TestAnalyzeRules(t *testing.T) {
	tests := []struct {
		name  string
		tel   reactor.Telemetry
		ctl   func(*reactor.Controls)
		title string
		level Level
	}{
		{"hot core", reactor.Telemetry{Temp: 460, Period: 9999}, nil, "Fuel Cladding Failure Risk", Critical},
		{"overpower", reactor.Telemetry{Flux: 1.12, PowerMW: 2240, Period: 9999}, nil, "Overpower Transient", Warning},
		{"fast period", reactor.Telemetry{Period: 8}, nil, "Fast Startup", Warning},
		{"heat sink", reactor.Telemetry{PowerMW: 800, Period: 9999}, func(c *reactor.Controls) { c.PumpSpeed = 20 }, "Loss of Heat Sink", Warning},
		{"bypassed", reactor.Telemetry{Period: 9999}, func(c *reactor.Controls) { c.SafetyEnabled = false }, "Interlocks Bypassed", Warning},
		{"low margin", reactor.Telemetry{PowerMW: 1500, Flux: 0.75, Period: 9999}, func(c *reactor.Controls) { c.RodsPos = 5 }, "Operating Margin Low", Warning},
		{"xenon", reactor.Telemetry{PowerMW: 100, Xenon: 0.01, Period: 9999}, nil, "Xenon Pit", Info},
		{"scram", reactor.Telemetry{Scram: true, Period: 9999}, nil, "Scram In Progress", Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := reactor.DefaultControls()
			if tt.ctl != nil {
				tt.ctl(&c)
			}
			got := Analyze(tt.tel, c)
			for _, a := range got {
				if a.Title == tt.title {
					if a.Level != tt.level {
						t.Errorf("expected level %s, got %s", tt.level, a.Level)
					}
					return
				}
			}
			t.Errorf("expected %q in %v", tt.title, titles(got))
		})
	}
}

func TestAnalyzeNegativePeriodIsNotFast(t *testing.T) {
	got := Analyze(reactor.Telemetry{Period: -5}, reactor.DefaultControls())
	if contains(got, "Fast Startup") {
		t.Error("a shrinking power should not warn about startup rate")
	}
}

func TestAnalyzeOrdersBySeverity(t *testing.T) {
	c := reactor.DefaultControls()
	c.SafetyEnabled = false
	tel := reactor.Telemetry{Temp: 700, Scram: true, Period: 9999}

	got := Analyze(tel, c)
	if len(got) != 3 {
		t.Fatalf("expected 3 advisories, got %v", titles(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Level > got[i-1].Level {
			t.Errorf("advisories out of order: %v", titles(got))
		}
	}
	if got[0].Level != Critical {
		t.Errorf("expected critical first, got %s", got[0].Level)
	}
}

func TestLevelString(t *testing.T) {
	if Info.String() != "info" || Critical.String() != "critical" || Level(9).String() != "unknown" {
		t.Error("unexpected level names")
	}
}
