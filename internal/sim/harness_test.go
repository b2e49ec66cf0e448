package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// holdStill is a decision provider that never steers, so scripted ships stay
// where they were placed unless something pushes them.
var holdStill = DecisionFunc(func(Observation, *rand.Rand) Action { return Action{} })

// calmTuning is the stock tuning with automatic fire switched off.
func calmTuning() Tuning {
	tu := DefaultTuning()
	tu.FireChance = 0
	return tu
}

// newTestEngine builds an engine with a fixed seed and fails the test on error.
func newTestEngine(t *testing.T, setup Setup, opts ...Option) *Engine {
	t.Helper()
	e, err := New(setup, append([]Option{WithSeed(1)}, opts...)...)
	require.NoError(t, err)
	return e
}

// sink kills s with projectile hits at the engine's current time.
func sink(e *Engine, s *Ship) {
	for s.Alive() {
		s.ApplyDamage(DamageProjectile, e.Now())
	}
}

// checkShipInvariants fails the test if any live ship breaks the health or
// time-of-death rules.
func checkShipInvariants(t *testing.T, e *Engine, seenDeath map[string]float64) {
	t.Helper()
	for _, s := range e.Ships() {
		if s.Health() < 0 || s.Health() > e.Tuning().MaxHealth {
			t.Fatalf("T=%d %s health %d out of range", e.Tick(), s.ID(), s.Health())
		}
		tod, dead := s.TimeOfDeath()
		if dead != (s.Health() == 0) {
			t.Fatalf("T=%d %s dead=%v but health=%d", e.Tick(), s.ID(), dead, s.Health())
		}
		if s.PendingRemoval() && !dead {
			t.Fatalf("T=%d %s pending removal while afloat", e.Tick(), s.ID())
		}
		if !dead {
			continue
		}
		if prev, ok := seenDeath[s.ID()]; ok && prev != tod.Seconds() {
			t.Fatalf("T=%d %s time of death changed %.4f -> %.4f", e.Tick(), s.ID(), prev, tod.Seconds())
		}
		seenDeath[s.ID()] = tod.Seconds()
	}
}
