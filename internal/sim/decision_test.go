package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomAgent_StaysWithinBound(t *testing.T) {
	agent := NewRandomAgent()
	rng := rand.New(rand.NewSource(4)) // #nosec G404
	for i := 0; i < 1000; i++ {
		act := agent.Decide(Observation{}, rng)
		assert.GreaterOrEqual(t, act.AccelerateX, -0.1)
		assert.Less(t, act.AccelerateX, 0.1)
		assert.GreaterOrEqual(t, act.AccelerateY, -0.1)
		assert.Less(t, act.AccelerateY, 0.1)
		assert.Empty(t, act.FireTargetID)
	}
}

func TestProviderByName(t *testing.T) {
	tu := DefaultTuning()

	p, err := ProviderByName("", tu)
	require.NoError(t, err)
	assert.IsType(t, &SteeringPolicy{}, p)

	p, err = ProviderByName("steering", tu)
	require.NoError(t, err)
	assert.IsType(t, &SteeringPolicy{}, p)

	p, err = ProviderByName("random", tu)
	require.NoError(t, err)
	assert.IsType(t, RandomAgent{}, p)

	_, err = ProviderByName("neural", tu)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestObservation_SeesOnlyLivingShipsInVision(t *testing.T) {
	var seen Observation
	spy := DecisionFunc(func(obs Observation, _ *rand.Rand) Action {
		if obs.Self.ID == "A1" {
			seen = obs
		}
		return Action{}
	})
	e := newTestEngine(t, DefaultSetup(),
		WithTuning(calmTuning()),
		WithDecisionProvider(spy),
		WithNoIslands(),
		WithShip(TeamA, 300, 200),
		WithShip(TeamA, 330, 200),
		WithShip(TeamA, 300, 260),
		WithShip(TeamB, 360, 200),
		WithShip(TeamB, 700, 200),
		WithShip(TeamB, 340, 200),
	)
	sink(e, e.Ship("B3"))
	require.True(t, e.Step())

	assert.Equal(t, "A1", seen.Self.ID)
	require.Len(t, seen.Allies, 2)
	assert.Equal(t, "A2", seen.Allies[0].ID)
	assert.Equal(t, "A3", seen.Allies[1].ID)
	require.Len(t, seen.Enemies, 1, "sinking and out-of-vision enemies are hidden")
	assert.Equal(t, "B1", seen.Enemies[0].ID)
	assert.InDelta(t, 60, seen.Enemies[0].Distance, 1e-9)
	assert.Equal(t, V(60, 0), seen.Enemies[0].Offset)
	assert.Equal(t, e.Tuning().Side(TeamA), seen.Side)
}
