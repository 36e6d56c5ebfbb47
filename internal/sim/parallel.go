package sim

import (
	"context"
	"runtime"

	"github.com/san-kum/reactorsim/internal/reactor"
	"golang.org/x/sync/errgroup"
)

// Build returns a fresh unit and runner for one sweep value. Units and
// runners are never shared between sweep members.
type Build func(value float64) (*reactor.Unit, *Runner, error)

type SweepResult struct {
	Value  float64
	Result *Result
}

// Sweep runs one independent simulation per value in parallel and returns
// the results in value order.
func Sweep(ctx context.Context, values []float64, cfg Config, build Build) ([]SweepResult, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(values))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			u, r, err := build(v)
			if err != nil {
				return err
			}
			res, err := r.Run(gctx, u, cfg)
			if err != nil {
				return err
			}
			results[i] = SweepResult{Value: v, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
