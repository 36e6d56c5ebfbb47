package optim

import (
	"context"
	"fmt"

	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/metrics"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/scenario"
	"github.com/san-kum/reactorsim/internal/sim"
)

// tracker feeds a metric from the runner's observer hook.
type tracker struct {
	m sim.Metric
}

func (t tracker) OnStep(u *reactor.Unit) {
	t.m.Observe(u.Time(), u.Telemetry(), u.Controls())
}

// PIDObjective scores PID gains by running base with automatic rod control
// and measuring the mean power error against base's target once settle
// seconds have passed. Parameter names are Kp, Ki and Kd.
func PIDObjective(base scenario.Scenario, settle float64) Objective {
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		s := base
		s.Controller = "pid"
		s.Actions = nil

		for name, v := range params {
			switch name {
			case "Kp":
				s.Gains.Kp = v
			case "Ki":
				s.Gains.Ki = v
			case "Kd":
				s.Gains.Kd = v
			default:
				return 0, fmt.Errorf("optim: unknown gain %q", name)
			}
		}

		track := metrics.NewTrackingError(s.Gains.TargetMW, settle)
		if _, err := s.Run(ctx, nil, tracker{track}); err != nil {
			return 0, err
		}
		return track.Value(), nil
	}
}

// TunePID grid-searches PID gains for base. Each trial is a fresh unit.
func TunePID(ctx context.Context, base scenario.Scenario, grid *GridSearch, settle float64) (control.Gains, []Trial, error) {
	best, trials, err := grid.Search(ctx, PIDObjective(base, settle))
	if err != nil {
		return control.Gains{}, trials, err
	}
	g := base.Gains
	g.Kp, g.Ki, g.Kd = valueOr(best.Params, "Kp", g.Kp), valueOr(best.Params, "Ki", g.Ki), valueOr(best.Params, "Kd", g.Kd)
	return g, trials, nil
}

func valueOr(m map[string]float64, key string, def float64) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}
