package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/scenario"
)

func ptr[T any](v T) *T { return &v }

func controls(rods, pump, cooling float64, safety bool) reactor.Controls {
	return reactor.Controls{RodsPos: rods, PumpSpeed: pump, CoolingEff: cooling, SafetyEnabled: safety}
}

var Presets = map[string]*Config{
	"steady": {
		Description: "rods at the neutral point, full flow",
		Dt:          0.1, Duration: 300,
		Controls:   controls(50, 100, 100, true),
		Controller: "none",
	},
	"runaway": {
		Description: "rods fully withdrawn until the interlocks trip",
		Dt:          0.1, Duration: 60,
		Controls:   controls(0, 100, 100, true),
		Controller: "none",
	},
	"loss-of-flow": {
		Description: "pumps fail while the unit is at power",
		Dt:          0.1, Duration: 120,
		Controls:   controls(50, 100, 100, true),
		Controller: "none",
		Actions: []scenario.Action{
			{At: 60, Note: "pump trip", Pump: ptr(5.0)},
		},
	},
	"manual-scram": {
		Description: "operator scram from steady operation",
		Dt:          0.1, Duration: 60,
		Controls:   controls(50, 100, 100, true),
		Controller: "none",
		Actions: []scenario.Action{
			{At: 30, Note: "operator scram", Scram: true},
		},
	},
	"interlocks-bypassed": {
		Description: "rods withdrawn with the protection system bypassed",
		Dt:          0.1, Duration: 30,
		Controls:   controls(0, 100, 100, false),
		Controller: "none",
	},
	"load-follow": {
		Description: "automatic rod control following a load schedule",
		Dt:          0.1, Duration: 600,
		Controls:   controls(50, 100, 100, true),
		Controller: "pid",
		Actions: []scenario.Action{
			{At: 200, Note: "load up", TargetMW: ptr(1400.0)},
			{At: 400, Note: "load down", TargetMW: ptr(800.0)},
		},
	},
}

// GetPreset returns a fresh copy of the named preset with a new unit id and
// default controller gains where the preset leaves them unset.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg := p.Clone()
	def := DefaultConfig()
	cfg.Unit = def.Unit
	if cfg.ControllerParams == (control.Gains{}) {
		cfg.ControllerParams = def.ControllerParams
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
