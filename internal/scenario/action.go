package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/sim"
	"go.uber.org/zap"
)

// timeSlack absorbs accumulated float error in the unit clock.
const timeSlack = 1e-9

// Action is one scripted operator input, applied once the unit clock
// reaches At. Unset fields leave the corresponding input alone.
type Action struct {
	At          float64  `yaml:"at" json:"at"`
	Note        string   `yaml:"note,omitempty" json:"note,omitempty"`
	Rods        *float64 `yaml:"rods,omitempty" json:"rods,omitempty"`
	Pump        *float64 `yaml:"pump,omitempty" json:"pump,omitempty"`
	Cooling     *float64 `yaml:"cooling,omitempty" json:"cooling,omitempty"`
	Safety      *bool    `yaml:"safety,omitempty" json:"safety,omitempty"`
	Scram       bool     `yaml:"scram,omitempty" json:"scram,omitempty"`
	Disturbance string   `yaml:"disturbance,omitempty" json:"disturbance,omitempty"`
	TargetMW    *float64 `yaml:"target_mw,omitempty" json:"target_mw,omitempty"`
}

func (a Action) validate() error {
	if a.At < 0 || math.IsNaN(a.At) {
		return fmt.Errorf("%w: at=%v", ErrInvalidScenario, a.At)
	}
	c := reactor.DefaultControls()
	a.setControls(&c)
	if err := c.Validate(); err != nil {
		return err
	}
	if a.Disturbance != "" {
		if _, ok := reactor.ParseDisturbance(a.Disturbance); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownDisturbance, a.Disturbance)
		}
	}
	return nil
}

func (a Action) setControls(c *reactor.Controls) {
	if a.Rods != nil {
		c.RodsPos = *a.Rods
	}
	if a.Pump != nil {
		c.PumpSpeed = *a.Pump
	}
	if a.Cooling != nil {
		c.CoolingEff = *a.Cooling
	}
	if a.Safety != nil {
		c.SafetyEnabled = *a.Safety
	}
}

func (a Action) apply(u *reactor.Unit, ctrl sim.Controller) error {
	if err := u.UpdateControls(a.setControls); err != nil {
		return err
	}
	if a.Disturbance != "" {
		d, ok := reactor.ParseDisturbance(a.Disturbance)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownDisturbance, a.Disturbance)
		}
		u.InjectDisturbance(d)
	}
	if a.TargetMW != nil {
		tunable, ok := ctrl.(interface{ SetParam(string, float64) })
		if !ok {
			return ErrNoSetpoint
		}
		tunable.SetParam("TargetMW", *a.TargetMW)
	}
	if a.Scram {
		u.RequestScram()
	}
	return nil
}

// Player applies a list of actions in time order, each exactly once.
type Player struct {
	actions []Action
	next    int
	ctrl    sim.Controller
	log     *zap.Logger
	errs    []error
}

func NewPlayer(actions []Action, ctrl sim.Controller, log *zap.Logger) *Player {
	sorted := make([]Action, len(actions))
	copy(sorted, actions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{actions: sorted, ctrl: ctrl, log: log}
}

// Step applies every pending action that is due at the unit's current time.
// It always returns true so it can be used directly as a run callback.
func (p *Player) Step(step int, u *reactor.Unit) bool {
	for p.next < len(p.actions) && u.Time()+timeSlack >= p.actions[p.next].At {
		a := p.actions[p.next]
		if err := a.apply(u, p.ctrl); err != nil {
			p.errs = append(p.errs, &ActionError{Index: p.next, At: a.At, Wrapped: err})
			p.log.Warn("action failed", zap.Int("index", p.next), zap.Float64("at", a.At), zap.Error(err))
		} else {
			p.log.Info("action applied", zap.Int("index", p.next), zap.Float64("at", a.At), zap.String("note", a.Note))
		}
		p.next++
	}
	return true
}

// Pending is the number of actions not yet applied.
func (p *Player) Pending() int { return len(p.actions) - p.next }

func (p *Player) Errors() []error { return p.errs }
