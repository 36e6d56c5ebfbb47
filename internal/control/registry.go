package control

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/reactorsim/internal/sim"
)

var ErrUnknownController = errors.New("control: unknown controller")

// Gains configures a PID built by name.
type Gains struct {
	Kp       float64 `yaml:"kp" json:"kp"`
	Ki       float64 `yaml:"ki" json:"ki"`
	Kd       float64 `yaml:"kd" json:"kd"`
	TargetMW float64 `yaml:"target_mw" json:"target_mw"`
}

func DefaultGains() Gains {
	return Gains{Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd, TargetMW: 1000}
}

var registry = map[string]func(Gains) sim.Controller{
	"none": func(Gains) sim.Controller { return NewManual() },
	"pid": func(g Gains) sim.Controller {
		return NewPID(g.Kp, g.Ki, g.Kd, g.TargetMW)
	},
}

// New returns the controller registered under name. An empty name is "none".
func New(name string, g Gains) (sim.Controller, error) {
	if name == "" {
		name = "none"
	}
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownController, name)
	}
	return factory(g), nil
}

func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
