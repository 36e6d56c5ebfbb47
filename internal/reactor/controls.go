package reactor

import (
	"math"

	"github.com/san-kum/reactorsim/internal/physics"
)

// Controls are the operator inputs. Percentages run from 0 to 100; RodsPos is
// percent inserted, so 0 is fully withdrawn.
type Controls struct {
	RodsPos       float64 `json:"rods_pos" yaml:"rods_pos"`
	PumpSpeed     float64 `json:"pump_speed" yaml:"pump_speed"`
	CoolingEff    float64 `json:"cooling_eff" yaml:"cooling_eff"`
	ManualScram   bool    `json:"manual_scram" yaml:"manual_scram"`
	SafetyEnabled bool    `json:"safety_enabled" yaml:"safety_enabled"`
}

func DefaultControls() Controls {
	return Controls{
		RodsPos:       50.0,
		PumpSpeed:     100.0,
		CoolingEff:    100.0,
		ManualScram:   false,
		SafetyEnabled: true,
	}
}

// Validate rejects non-finite or out-of-range percentages.
func (c Controls) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"rods_pos", c.RodsPos},
		{"pump_speed", c.PumpSpeed},
		{"cooling_eff", c.CoolingEff},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || f.value < 0 || f.value > 100 {
			return &ControlError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

// Clamped returns a copy with every percentage limited to [0, 100].
func (c Controls) Clamped() Controls {
	c.RodsPos = physics.Clamp(c.RodsPos, 0, 100)
	c.PumpSpeed = physics.Clamp(c.PumpSpeed, 0, 100)
	c.CoolingEff = physics.Clamp(c.CoolingEff, 0, 100)
	return c
}
