package scenario

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/reactorsim/internal/metrics"
	"github.com/san-kum/reactorsim/internal/physics"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/sim"
)

// MonteCarloConfig defines randomized rod-position trials around a base
// operating point.
type MonteCarloConfig struct {
	Base         reactor.Controls
	Perturbation float64
	Trials       int
	Dt           float64
	Duration     float64
	Seed         int64
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	Trial    int
	RodsPos  float64
	Tripped  bool
	PeakTemp float64
	FinalMW  float64
}

// RunMonteCarlo perturbs the base rod position uniformly by ±Perturbation
// and runs every trial as an independent unit.
func RunMonteCarlo(ctx context.Context, cfg MonteCarloConfig) ([]MonteCarloResult, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive", ErrInvalidScenario)
	}
	if err := cfg.Base.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	rods := make([]float64, cfg.Trials)
	for i := range rods {
		v := cfg.Base.RodsPos + (rng.Float64()-0.5)*2*cfg.Perturbation
		rods[i] = physics.Clamp(v, 0, 100)
	}

	build := func(v float64) (*reactor.Unit, *sim.Runner, error) {
		u := reactor.New(fmt.Sprintf("trial-%.3f", v), "monte-carlo")
		c := cfg.Base
		c.RodsPos = v
		if err := u.SetControls(c); err != nil {
			return nil, nil, err
		}
		r := sim.New(nil)
		r.AddMetric(metrics.NewPeakTemperature())
		return u, r, nil
	}

	sweep, err := sim.Sweep(ctx, rods, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}, build)
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(sweep))
	for i, s := range sweep {
		results[i] = MonteCarloResult{
			Trial:    i,
			RodsPos:  s.Value,
			Tripped:  s.Result.Tripped(),
			PeakTemp: s.Result.Metrics["peak_temp_c"],
			FinalMW:  s.Result.Final.Telemetry.PowerMW,
		}
	}
	return results, nil
}

// MonteCarloStats counts tripped and held trials
func MonteCarloStats(results []MonteCarloResult) (tripped int, held int) {
	for _, r := range results {
		if r.Tripped {
			tripped++
		} else {
			held++
		}
	}
	return
}
