package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewGridSearchValidation(t *testing.T) {
	_, err := NewGridSearch(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = NewGridSearch([]string{"Kp"}, [][]float64{{}})
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = NewGridSearch([]string{"Kp", "Ki"}, [][]float64{{1}})
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestPoints(t *testing.T) {
	g, err := NewGridSearch([]string{"a", "b"}, [][]float64{{1, 2}, {10, 20, 30}})
	require.NoError(t, err)

	points := g.Points()
	require.Len(t, points, 6)
	assert.Equal(t, map[string]float64{"a": 1, "b": 10}, points[0])
	assert.Equal(t, map[string]float64{"a": 1, "b": 20}, points[1])
	assert.Equal(t, map[string]float64{"a": 2, "b": 30}, points[5])
}

func TestSearchFindsMinimum(t *testing.T) {
	g, err := NewGridSearch([]string{"x", "y"}, [][]float64{{-2, -1, 0, 1, 2}, {-1, 0, 1}})
	require.NoError(t, err)

	boom := errors.New("boom")
	best, trials, err := g.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		if p["x"] == 2 {
			return 0, boom
		}
		return math.Pow(p["x"]-1, 2) + math.Pow(p["y"], 2), nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"x": 1, "y": 0}, best.Params)
	assert.Zero(t, best.Score)

	require.Len(t, trials, 15)
	for i := 1; i < 12; i++ {
		assert.LessOrEqual(t, trials[i-1].Score, trials[i].Score)
	}
	for _, tr := range trials[12:] {
		assert.ErrorIs(t, tr.Err, boom)
	}
}

func TestSearchAllFail(t *testing.T) {
	g, err := NewGridSearch([]string{"x"}, [][]float64{{1, 2}})
	require.NoError(t, err)

	_, trials, err := g.Search(context.Background(), func(context.Context, map[string]float64) (float64, error) {
		return 0, errors.New("nope")
	})
	assert.ErrorIs(t, err, ErrNoCandidate)
	assert.Len(t, trials, 2)
}

func TestSearchCanceled(t *testing.T) {
	g, err := NewGridSearch([]string{"x"}, [][]float64{{1, 2, 3}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = g.Search(ctx, func(ctx context.Context, _ map[string]float64) (float64, error) {
		return 0, ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPIDObjectiveRejectsUnknownGain(t *testing.T) {
	obj := PIDObjective(scenario.Scenario{Dt: 0.1, Duration: 1, Gains: control.DefaultGains()}, 0)
	_, err := obj(context.Background(), map[string]float64{"Kx": 1})
	assert.Error(t, err)
}

func TestTunePID(t *testing.T) {
	base := scenario.Scenario{
		Name:     "tune",
		Dt:       0.1,
		Duration: 300,
		Gains:    control.DefaultGains(),
	}
	grid, err := NewGridSearch([]string{"Kp", "Ki"}, [][]float64{{control.DefaultKp}, {0.5, control.DefaultKi}})
	require.NoError(t, err)

	gains, trials, err := TunePID(context.Background(), base, grid, 150)
	require.NoError(t, err)
	require.Len(t, trials, 2)

	assert.Equal(t, control.DefaultKp, gains.Kp)
	assert.Contains(t, []float64{0.5, control.DefaultKi}, gains.Ki)
	assert.Equal(t, base.Gains.TargetMW, gains.TargetMW)
	assert.Less(t, trials[0].Score, 50.0)
}
