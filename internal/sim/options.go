package sim

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Naval-Skirmish/internal/telemetry"
)

// optionKind controls the pass in which an option is applied.
type optionKind int

const (
	optInfra    optionKind = iota // seed, tuning, logging, collaborators; applied first
	optScenario                   // scripted ships and islands; applied after tuning is final
)

// Option configures an Engine during New.
type Option struct {
	kind optionKind
	fn   func(*Engine)
}

// WithSeed makes the run reproducible. Reset draws a fresh layout from the
// same stream, so a seeded engine replays the same sequence of battles.
func WithSeed(seed int64) Option {
	return Option{optInfra, func(e *Engine) {
		e.seed = seed
		e.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation RNG
	}}
}

// WithTuning replaces the default battle parameters.
func WithTuning(t Tuning) Option {
	return Option{optInfra, func(e *Engine) {
		e.tuning = t
	}}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return Option{optInfra, func(e *Engine) {
		e.log = l
	}}
}

// WithSimLog records events into sl instead of a fresh quiet log.
func WithSimLog(sl *SimLog) Option {
	return Option{optInfra, func(e *Engine) {
		e.events = sl
	}}
}

// WithDecisionProvider replaces the built-in steering policy.
func WithDecisionProvider(p DecisionProvider) Option {
	return Option{optInfra, func(e *Engine) {
		e.decider = p
	}}
}

// WithTerminationHandler registers fn to receive the outcome once per run.
func WithTerminationHandler(fn func(Outcome)) Option {
	return Option{optInfra, func(e *Engine) {
		e.onTerminate = fn
	}}
}

// WithRecorder sends metrics to r.
func WithRecorder(r *telemetry.Recorder) Option {
	return Option{optInfra, func(e *Engine) {
		e.metrics = r
	}}
}

// WithShip scripts a ship at (x, y). When any ship is scripted the setup's
// team counts are not spawned; the scripted fleet is rebuilt on every Reset.
func WithShip(team Team, x, y float64) Option {
	return Option{optScenario, func(e *Engine) {
		e.scripted = append(e.scripted, scriptedShip{team: team, pos: V(x, y)})
	}}
}

// WithMovingShip scripts a ship with an initial velocity.
func WithMovingShip(team Team, x, y, vx, vy float64) Option {
	return Option{optScenario, func(e *Engine) {
		e.scripted = append(e.scripted, scriptedShip{team: team, pos: V(x, y), vel: V(vx, vy)})
	}}
}

// WithIsland scripts a round island of the given radius at (x, y). When any
// island is scripted no islands are generated.
func WithIsland(x, y, radius float64) Option {
	return Option{optScenario, func(e *Engine) {
		e.scriptedIslands = append(e.scriptedIslands, roundIsland(V(x, y), radius, 12))
	}}
}

// WithNoIslands suppresses island generation regardless of the setup.
func WithNoIslands() Option {
	return Option{optScenario, func(e *Engine) {
		e.noIslands = true
	}}
}

type scriptedShip struct {
	team Team
	pos  Vec2
	vel  Vec2
}

// roundIsland approximates a circle of radius r with n vertices. The bounding
// radius equals r exactly.
func roundIsland(center Vec2, r float64, n int) Island {
	outline := make([]Vec2, n)
	for k := range outline {
		outline[k] = center.Add(FromAngle(2*math.Pi*float64(k)/float64(n), r))
	}
	return NewIsland(center, outline, 0)
}
