package scenario

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/metrics"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/sim"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted run of one unit
type Scenario struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	UnitID      string            `yaml:"unit_id"`
	Dt          float64           `yaml:"dt"`
	Duration    float64           `yaml:"duration"`
	// Realtime paces the run at this multiple of wall-clock time. Zero runs
	// as fast as possible.
	Realtime    float64           `yaml:"realtime,omitempty"`
	Controls    *reactor.Controls `yaml:"controls,omitempty"`
	Controller  string            `yaml:"controller"`
	Gains       control.Gains     `yaml:"controller_params"`
	Actions     []Action          `yaml:"actions"`
}

// Load loads a scenario from a YAML file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a YAML scenario. Missing dt, duration and
// controller gains take their defaults.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{
		Dt:    sim.DefaultConfig().Dt,
		Gains: control.DefaultGains(),
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if s.Duration == 0 {
		s.Duration = s.defaultDuration()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// defaultDuration runs ten seconds past the last action.
func (s *Scenario) defaultDuration() float64 {
	end := sim.DefaultConfig().Duration
	for _, a := range s.Actions {
		if a.At+10 > end {
			end = a.At + 10
		}
	}
	return end
}

func (s *Scenario) Validate() error {
	if s.Dt <= 0 || s.Duration <= 0 {
		return fmt.Errorf("%w: dt and duration must be positive", ErrInvalidScenario)
	}
	if s.Realtime < 0 {
		return fmt.Errorf("%w: realtime must not be negative", ErrInvalidScenario)
	}
	if s.Controls != nil {
		if err := s.Controls.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
	}
	if _, err := control.New(s.Controller, s.Gains); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	for i, a := range s.Actions {
		if err := a.validate(); err != nil {
			return &ActionError{Index: i, At: a.At, Wrapped: err}
		}
	}
	return nil
}

// Outcome is a finished scenario run.
type Outcome struct {
	Result *sim.Result
	Unit   *reactor.Unit
	// Errors holds actions that could not be applied.
	Errors []error
}

// Run builds a fresh unit for the scenario and plays it to the end.
// Observers, if given, are attached to the runner.
func (s *Scenario) Run(ctx context.Context, log *zap.Logger, observers ...sim.Observer) (*Outcome, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	u := reactor.New(s.UnitID, s.Name)
	if s.Controls != nil {
		if err := u.SetControls(*s.Controls); err != nil {
			return nil, err
		}
	}

	ctrl, err := control.New(s.Controller, s.Gains)
	if err != nil {
		return nil, err
	}

	r := sim.New(ctrl)
	r.SetLogger(log)
	metrics.Attach(r)
	for _, o := range observers {
		r.AddObserver(o)
	}

	player := NewPlayer(s.Actions, ctrl, log.With(zap.String("scenario", s.Name)))
	var step sim.Callback = player.Step
	if s.Realtime > 0 {
		paced, stop, err := sim.Throttle(ctx, sim.Realtime(s.Dt, s.Realtime), step)
		if err != nil {
			return nil, err
		}
		defer stop()
		step = paced
	}

	res, err := r.RunWithCallback(ctx, u, sim.Config{Dt: s.Dt, Duration: s.Duration}, step)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	return &Outcome{Result: res, Unit: u, Errors: player.Errors()}, nil
}
