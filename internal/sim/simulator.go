package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/reactorsim/internal/reactor"
	"go.uber.org/zap"
)

// Runner owns the cadence of a unit: it applies the controller, ticks the
// unit with a fixed dt and feeds metrics and observers after every step.
type Runner struct {
	controller Controller
	metrics    []Metric
	observers  []Observer
	log        *zap.Logger
}

// New returns a runner. A nil controller leaves the controls to the caller.
func New(controller Controller) *Runner {
	return &Runner{
		controller: controller,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		log:        zap.NewNop(),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	r.log = l
}

// Run ticks u for cfg.Duration simulated seconds.
func (r *Runner) Run(ctx context.Context, u *reactor.Unit, cfg Config) (*Result, error) {
	return r.RunWithCallback(ctx, u, cfg, nil)
}

// RunWithCallback is Run with a hook invoked before every tick. Returning
// false from the hook ends the run early without error.
func (r *Runner) RunWithCallback(ctx context.Context, u *reactor.Unit, cfg Config, before Callback) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	steps := cfg.Steps()
	result := &Result{
		FirstTrip: -1,
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	r.log.Info("run started",
		zap.String("unit", u.ID()),
		zap.Float64("dt", cfg.Dt),
		zap.Float64("duration", cfg.Duration),
		zap.Int("steps", steps))

	prev := u.Telemetry()
	// A unit handed over already scrammed has no trip to attribute to this run.
	startedScrammed := prev.Scram
	var runErr error

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			r.log.Warn("run canceled", zap.String("unit", u.ID()), zap.Float64("t", u.Time()))
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		if before != nil && !before(i, u) {
			break
		}

		// A scrammed unit belongs to the protection system.
		if r.controller != nil && !u.Telemetry().Scram {
			if err := r.applyController(u); err != nil {
				result.Errors = append(result.Errors, StepError{Time: u.Time(), Step: i, Wrapped: err})
			}
		}

		u.Tick(cfg.Dt)
		result.Steps++

		tel := u.Telemetry()
		if tel.Scram && !startedScrammed && result.FirstTrip < 0 {
			result.FirstTrip = u.Time()
			result.Trips = tel.Trips
		}
		r.logTransitions(u, prev, tel)
		prev = tel

		c := u.Controls()
		for _, m := range r.metrics {
			m.Observe(u.Time(), tel, c)
		}
		for _, obs := range r.observers {
			obs.OnStep(u)
		}
	}

	result.Time = u.Time()
	result.Final = u.Snapshot()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	r.log.Info("run finished",
		zap.String("unit", u.ID()),
		zap.Int("steps", result.Steps),
		zap.Float64("t", result.Time),
		zap.Bool("scram", prev.Scram))

	return result, runErr
}

func (r *Runner) applyController(u *reactor.Unit) error {
	c := u.Controls()
	r.controller.Adjust(u.Time(), u.Telemetry(), &c)
	return u.SetControls(c)
}

func (r *Runner) logTransitions(u *reactor.Unit, prev, next reactor.Telemetry) {
	if next.Scram && !prev.Scram {
		fields := []zap.Field{
			zap.String("unit", u.ID()),
			zap.Float64("t", u.Time()),
			zap.Float64("flux", next.Flux),
			zap.Float64("temp", next.Temp),
		}
		for _, trip := range next.Trips {
			fields = append(fields, zap.Float64(trip.Kind.String(), trip.Value))
		}
		r.log.Info("unit scrammed", fields...)
	}
	if next.Status != prev.Status {
		r.log.Info("thermal status changed",
			zap.String("unit", u.ID()),
			zap.Float64("t", u.Time()),
			zap.Stringer("from", prev.Status),
			zap.Stringer("to", next.Status))
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 || math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	return nil
}
