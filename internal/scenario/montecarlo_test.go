package scenario

import (
	"context"
	"testing"

	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRunMonteCarlo(t *testing.T) {
	defer goleak.VerifyNone(t)

	base := reactor.DefaultControls()
	base.RodsPos = 10

	cfg := MonteCarloConfig{
		Base:         base,
		Perturbation: 5,
		Trials:       8,
		Dt:           0.1,
		Duration:     40,
		Seed:         42,
	}

	results, err := RunMonteCarlo(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, 8)

	for i, r := range results {
		assert.Equal(t, i, r.Trial)
		assert.GreaterOrEqual(t, r.RodsPos, 5.0)
		assert.LessOrEqual(t, r.RodsPos, 15.0)
	}

	tripped, held := MonteCarloStats(results)
	assert.Equal(t, 8, tripped)
	assert.Equal(t, 0, held)

	again, err := RunMonteCarlo(context.Background(), cfg)
	require.NoError(t, err)
	for i := range results {
		assert.Equal(t, results[i].RodsPos, again[i].RodsPos)
	}
}

func TestRunMonteCarloHeld(t *testing.T) {
	results, err := RunMonteCarlo(context.Background(), MonteCarloConfig{
		Base:     reactor.DefaultControls(),
		Trials:   3,
		Dt:       0.1,
		Duration: 30,
		Seed:     1,
	})
	require.NoError(t, err)

	tripped, held := MonteCarloStats(results)
	assert.Equal(t, 0, tripped)
	assert.Equal(t, 3, held)
}

func TestRunMonteCarloInvalid(t *testing.T) {
	_, err := RunMonteCarlo(context.Background(), MonteCarloConfig{Base: reactor.DefaultControls()})
	assert.ErrorIs(t, err, ErrInvalidScenario)
}
