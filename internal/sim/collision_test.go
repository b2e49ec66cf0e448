package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeparateShips_PushesToCombinedRadius(t *testing.T) {
	tu := DefaultTuning()
	a := NewShip("A1", TeamA, V(100, 100), tu)
	b := NewShip("B1", TeamB, V(110, 100), tu)
	require.Equal(t, 22.0, a.Size()+b.Size())

	assert.True(t, separateShips(a, b, tu))
	assert.GreaterOrEqual(t, a.Position().Dist(b.Position()), 22.0)
	assert.InDelta(t, 94, a.Position().X, 1e-9, "each ship moves half the overlap")
	assert.InDelta(t, 116, b.Position().X, 1e-9)
}

func TestSeparateShips_ReachesContactAtEveryAngle(t *testing.T) {
	tu := DefaultTuning()
	centre := V(400, 300)
	for i := 0; i < 3600; i++ {
		angle := float64(i) * 2 * math.Pi / 3600
		a := NewShip("A1", TeamA, centre, tu)
		b := NewShip("B1", TeamB, centre.Add(FromAngle(angle, 10)), tu)
		minDist := a.Size() + b.Size()

		require.True(t, separateShips(a, b, tu))
		if got := a.Position().Dist(b.Position()); got < minDist {
			t.Fatalf("angle %d: separated to %v, want at least %v", i, got, minDist)
		}
	}
}

func TestSeparateShips_ApartOrCoincident(t *testing.T) {
	tu := DefaultTuning()
	a := NewShip("A1", TeamA, V(100, 100), tu)
	b := NewShip("B1", TeamB, V(130, 100), tu)
	assert.False(t, separateShips(a, b, tu))

	c := NewShip("A2", TeamA, V(50, 50), tu)
	d := NewShip("B2", TeamB, V(50, 50), tu)
	assert.True(t, separateShips(c, d, tu), "coincident ships still collide")
	assert.Equal(t, V(50, 50), c.Position(), "but are not pushed")
	assert.Equal(t, V(50, 50), d.Position())
}

func TestPushOutOfIsland(t *testing.T) {
	tu := DefaultTuning()
	isl := roundIsland(V(200, 200), 30, 12)
	s := NewShip("A1", TeamA, V(170, 200), tu)
	s.vel = V(1.5, 0.5)

	require.True(t, pushOutOfIsland(s, isl, tu))
	threshold := tu.ShipSize*tu.HullRadius + isl.BoundingRadius
	assert.Greater(t, s.Position().Dist(isl.Position), threshold, "overshoot clears the island")
	assert.Less(t, s.Velocity().X, 0.0, "inward velocity is reflected")
	assert.InDelta(t, -0.3, s.Velocity().X, 1e-9)
	assert.InDelta(t, 0.5, s.Velocity().Y, 1e-9, "tangential velocity untouched")
}

func TestPushOutOfIsland_OutwardVelocityKept(t *testing.T) {
	tu := DefaultTuning()
	isl := roundIsland(V(200, 200), 30, 12)
	s := NewShip("A1", TeamA, V(170, 200), tu)
	s.vel = V(-1, 0)

	require.True(t, pushOutOfIsland(s, isl, tu))
	assert.Equal(t, V(-1, 0), s.Velocity())
}

func TestPushOutOfIsland_CentreIsSkipped(t *testing.T) {
	tu := DefaultTuning()
	isl := roundIsland(V(200, 200), 30, 12)
	s := NewShip("A1", TeamA, V(200, 200), tu)
	assert.True(t, pushOutOfIsland(s, isl, tu))
	assert.Equal(t, V(200, 200), s.Position())
}

func TestEngine_ShipCollisionDamagesBothOnce(t *testing.T) {
	e := newTestEngine(t, DefaultSetup(),
		WithTuning(calmTuning()),
		WithDecisionProvider(holdStill),
		WithNoIslands(),
		WithShip(TeamA, 300, 200),
		WithShip(TeamB, 310, 200),
		WithShip(TeamA, 100, 40),
		WithShip(TeamB, 700, 360),
	)
	a, b := e.Ship("A1"), e.Ship("B1")

	require.True(t, e.Step())
	assert.Equal(t, 2, a.Health())
	assert.Equal(t, 2, b.Health())
	assert.GreaterOrEqual(t, a.Position().Dist(b.Position()), 22.0)
	assert.Equal(t, 2, e.Events().CountCategory(CatCollision, "ship"))
}

// rammers keeps A1 and A2 driving into each other every tick.
var rammers = DecisionFunc(func(obs Observation, _ *rand.Rand) Action {
	switch obs.Self.ID {
	case "A1":
		return Action{AccelerateX: 0.15}
	case "A2":
		return Action{AccelerateX: -0.15}
	}
	return Action{}
})

func TestEngine_ConsecutiveCollisionsThrottled(t *testing.T) {
	tu := DefaultTuning()
	e := newTestEngine(t, DefaultSetup(),
		WithTuning(tu),
		WithDecisionProvider(rammers),
		WithNoIslands(),
		WithShip(TeamA, 395, 200),
		WithShip(TeamA, 405, 200),
		WithShip(TeamB, 700, 40),
	)
	a1, a2 := e.Ship("A1"), e.Ship("A2")

	overlapping := 0
	for i := 0; i < tu.CollisionCooldown; i++ {
		if a1.Position().Dist(a2.Position()) < a1.Size()+a2.Size() {
			overlapping++
		}
		require.True(t, e.Step())
	}
	require.Greater(t, overlapping, 1, "rammers must overlap on several consecutive ticks")
	assert.Equal(t, 2, a1.Health(), "exactly one collision hit inside the cooldown")
	assert.Equal(t, 2, a2.Health())
	assert.Len(t, e.Events().FilterShip("A1"), 1)
}

func TestEngine_IslandCollision(t *testing.T) {
	e := newTestEngine(t, DefaultSetup(),
		WithTuning(calmTuning()),
		WithDecisionProvider(holdStill),
		WithIsland(400, 200, 30),
		WithShip(TeamA, 380, 200),
		WithShip(TeamB, 700, 360),
	)
	s := e.Ship("A1")

	require.True(t, e.Step())
	assert.Equal(t, 2, s.Health())
	threshold := s.Size()*e.Tuning().HullRadius + 30
	assert.Greater(t, s.Position().Dist(V(400, 200)), threshold)
	assert.Equal(t, 1, e.Events().CountCategory(CatCollision, "island"))
}

func TestEngine_BoundaryCountsAsCollision(t *testing.T) {
	e := newTestEngine(t, DefaultSetup(),
		WithTuning(calmTuning()),
		WithDecisionProvider(holdStill),
		WithNoIslands(),
		WithMovingShip(TeamA, 9, 200, -2, 0),
		WithShip(TeamB, 700, 360),
	)
	s := e.Ship("A1")

	require.True(t, e.Step())
	assert.Equal(t, 2, s.Health())
	assert.Equal(t, 0.0, s.Velocity().X)
	assert.InDelta(t, s.Size()*e.Tuning().HullRadius, s.Position().X, 1e-9)
	assert.Equal(t, 1, e.Events().CountCategory(CatCollision, "boundary"))
}
