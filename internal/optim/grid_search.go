// Package optim searches controller gains for the lowest run score.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyGrid   = errors.New("optim: empty grid")
	ErrNoCandidate = errors.New("optim: every candidate failed")
)

// Objective scores one parameter set. Lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Score  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("%w: %d names for %d ranges", ErrEmptyGrid, len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("%w: no values for %s", ErrEmptyGrid, params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Points enumerates the grid with the last parameter varying fastest.
func (g *GridSearch) Points() []map[string]float64 {
	var points []map[string]float64
	g.collect(0, map[string]float64{}, &points)
	return points
}

func (g *GridSearch) collect(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		p := make(map[string]float64, len(current))
		for k, v := range current {
			p[k] = v
		}
		*out = append(*out, p)
		return
	}
	name := g.paramNames[depth]
	for _, v := range g.ranges[depth] {
		current[name] = v
		g.collect(depth+1, current, out)
	}
	delete(current, name)
}

// Search scores every grid point in parallel. Failing points are kept in
// the returned trials with their error; only cancellation aborts the search.
// Trials come back sorted by score, failures last.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (Trial, []Trial, error) {
	points := g.Points()
	trials := make([]Trial, len(points))

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range points {
		i, p := i, p
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return err
			}
			score, err := objective(ectx, p)
			if err != nil && ectx.Err() != nil {
				return ectx.Err()
			}
			if err == nil && math.IsNaN(score) {
				score = math.Inf(1)
			}
			trials[i] = Trial{Params: p, Score: score, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Trial{}, nil, err
	}

	sort.SliceStable(trials, func(i, j int) bool {
		if (trials[i].Err == nil) != (trials[j].Err == nil) {
			return trials[i].Err == nil
		}
		return trials[i].Score < trials[j].Score
	})
	if trials[0].Err != nil {
		return Trial{}, trials, fmt.Errorf("%w: %w", ErrNoCandidate, trials[0].Err)
	}
	return trials[0], trials, nil
}
