package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Contact is another living ship as seen from the observing ship.
type Contact struct {
	ID       string
	Team     Team
	Offset   Vec2 // contact position minus observer position
	Velocity Vec2
	Distance float64
	Health   int
}

// SelfView is the observing ship's own state.
type SelfView struct {
	ID           string
	Team         Team
	Position     Vec2
	Velocity     Vec2
	Health       int
	Ammo         int
	FireCooldown int
	Size         float64
	MaxSpeed     float64
	MaxForce     float64
	TargetID     string
}

// Observation is everything one ship may base a decision on for one tick.
// Allies and Enemies hold living ships inside vision range, nearest first.
type Observation struct {
	Tick      int
	Self      SelfView
	Allies    []Contact
	Enemies   []Contact
	Islands   []Island
	Side      TeamSide
	MapWidth  float64
	MapHeight float64
}

// Action is a ship's intent for one tick. The acceleration is added to the
// ship's force accumulator before integration. A non-empty FireTargetID asks
// the engine to shoot that enemy this tick instead of the automatic fire roll.
type Action struct {
	AccelerateX  float64
	AccelerateY  float64
	FireTargetID string
}

// Accel returns the requested acceleration as a vector.
func (a Action) Accel() Vec2 {
	return V(a.AccelerateX, a.AccelerateY)
}

// DecisionProvider supplies per-ship intent. Implementations are called on the
// engine goroutine once per living ship per tick and must draw all randomness
// from rng to keep seeded runs reproducible.
type DecisionProvider interface {
	Decide(obs Observation, rng *rand.Rand) Action
}

// Resetter is implemented by providers that keep per-ship memory which must
// be dropped when the engine resets.
type Resetter interface {
	Reset()
}

// DecisionFunc adapts a plain function to DecisionProvider.
type DecisionFunc func(obs Observation, rng *rand.Rand) Action

func (f DecisionFunc) Decide(obs Observation, rng *rand.Rand) Action {
	return f(obs, rng)
}

// SteeringPolicy is the built-in wander/avoid/separate behaviour. It never
// requests fire; the engine's automatic targeting handles shooting.
type SteeringPolicy struct {
	tuning Tuning
	wander map[string]float64 // per-ship wander angle
}

// NewSteeringPolicy returns a policy weighted by t.
func NewSteeringPolicy(t Tuning) *SteeringPolicy {
	return &SteeringPolicy{tuning: t, wander: make(map[string]float64)}
}

func (p *SteeringPolicy) Decide(obs Observation, rng *rand.Rand) Action {
	f := p.steer(obs, rng)
	return Action{AccelerateX: f.X, AccelerateY: f.Y}
}

// Reset forgets every ship's wander angle.
func (p *SteeringPolicy) Reset() {
	p.wander = make(map[string]float64)
}

// WanderAngle returns the current wander angle of the ship with id.
func (p *SteeringPolicy) WanderAngle(id string) (float64, bool) {
	a, ok := p.wander[id]
	return a, ok
}

func (p *SteeringPolicy) steer(obs Observation, rng *rand.Rand) Vec2 {
	t := p.tuning
	theta, ok := p.wander[obs.Self.ID]
	if !ok {
		theta = rng.Float64() * 2 * math.Pi
	}
	theta += uniform(rng, -t.WanderChange, t.WanderChange)
	p.wander[obs.Self.ID] = theta

	w := wanderForce(obs.Self, theta, t).Scale(t.WanderWeight)
	a := avoidForce(obs, t).Scale(t.AvoidWeight)
	s := separateForce(obs, t).Scale(t.SeparateWeight)
	return w.Add(a).Add(s)
}

// RandomAgent is the placeholder for a learned policy: small uniform random
// acceleration on each axis and no fire requests.
type RandomAgent struct {
	// Magnitude bounds each axis to [-Magnitude, Magnitude).
	Magnitude float64
}

// NewRandomAgent returns the stub agent with its stock ±0.1 bound.
func NewRandomAgent() RandomAgent {
	return RandomAgent{Magnitude: 0.1}
}

func (r RandomAgent) Decide(_ Observation, rng *rand.Rand) Action {
	return Action{
		AccelerateX: (rng.Float64() - 0.5) * 2 * r.Magnitude,
		AccelerateY: (rng.Float64() - 0.5) * 2 * r.Magnitude,
	}
}

// ErrUnknownProvider is returned by ProviderByName for an unrecognised name.
var ErrUnknownProvider = errors.New("unknown decision provider")

// ProviderByName returns a built-in provider: "steering" or "random".
func ProviderByName(name string, t Tuning) (DecisionProvider, error) {
	switch name {
	case "", "steering":
		return NewSteeringPolicy(t), nil
	case "random":
		return NewRandomAgent(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}
