package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func rodsBuild(v float64) (*reactor.Unit, *Runner, error) {
	u := reactor.New("sweep", "sweep")
	c := u.Controls()
	c.RodsPos = v
	if err := u.SetControls(c); err != nil {
		return nil, nil, err
	}
	r := New(nil)
	r.AddMetric(&countMetric{})
	return u, r, nil
}

func TestSweep(t *testing.T) {
	defer goleak.VerifyNone(t)

	values := []float64{0, 25, 50, 75, 100}
	results, err := Sweep(context.Background(), values, Config{Dt: 0.1, Duration: 30}, rodsBuild)
	require.NoError(t, err)
	require.Len(t, results, len(values))

	for i, res := range results {
		assert.Equal(t, values[i], res.Value)
		assert.Equal(t, 300.0, res.Result.Metrics["count"])
	}

	assert.True(t, results[0].Result.Tripped(), "rods fully withdrawn should trip")
	assert.False(t, results[2].Result.Tripped(), "rods at 50 should hold")
	assert.Less(t, results[4].Result.Final.Telemetry.Flux, results[2].Result.Final.Telemetry.Flux)
}

func TestSweepBuildError(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := Sweep(context.Background(), []float64{50, 500}, Config{Dt: 0.1, Duration: 1}, rodsBuild)
	assert.True(t, errors.Is(err, reactor.ErrInvalidControl))
}

func TestSweepNoValues(t *testing.T) {
	_, err := Sweep(context.Background(), nil, DefaultConfig(), rodsBuild)
	assert.ErrorIs(t, err, ErrNoValues)
}

func TestSweepInvalidConfig(t *testing.T) {
	_, err := Sweep(context.Background(), []float64{1}, Config{}, rodsBuild)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
