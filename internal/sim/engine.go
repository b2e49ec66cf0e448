package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Naval-Skirmish/internal/telemetry"
)

// Engine owns one battle: the islands, both fleets, the clock and the
// terminal state. It is not safe for concurrent use; step it and read its
// frames from a single goroutine.
type Engine struct {
	setup  Setup
	tuning Tuning
	sides  [2]TeamSide

	seed        int64
	rng         *rand.Rand
	log         zerolog.Logger
	events      *SimLog
	metrics     *telemetry.Recorder
	decider     DecisionProvider
	onTerminate func(Outcome)

	scripted        []scriptedShip
	scriptedIslands []Island
	noIslands       bool

	runID   uuid.UUID
	tick    int
	islands []Island
	fleets  [2][]*Ship
	ships   []*Ship // fleets[TeamA] followed by fleets[TeamB]
	spawned [2]int
	shots   [2]int
	hits    [2]int
	result  OutcomeReason
	ended   bool
}

// New validates setup and builds a ready-to-step engine. Nothing is allocated
// when the setup is rejected.
func New(setup Setup, opts ...Option) (*Engine, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		setup:  setup,
		tuning: DefaultTuning(),
		log:    zerolog.Nop(),
		seed:   time.Now().UnixNano(),
	}
	for _, o := range opts {
		if o.kind == optInfra {
			o.fn(e)
		}
	}
	if err := e.tuning.Validate(); err != nil {
		return nil, err
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(e.seed)) // #nosec G404 -- simulation RNG
	}
	if e.events == nil {
		e.events = NewSimLog(false)
	}
	if e.metrics == nil {
		r, err := telemetry.NewRecorder()
		if err != nil {
			return nil, fmt.Errorf("telemetry: %w", err)
		}
		e.metrics = r
	}
	if e.decider == nil {
		e.decider = NewSteeringPolicy(e.tuning)
	}
	for _, o := range opts {
		if o.kind == optScenario {
			o.fn(e)
		}
	}
	e.sides = [2]TeamSide{e.tuning.Side(TeamA), e.tuning.Side(TeamB)}
	e.init()
	return e, nil
}

// Reset discards the current battle and starts a new one from the same
// setup with fresh random placement.
func (e *Engine) Reset() {
	e.log.Info().Str("run", e.runID.String()).Int("tick", e.tick).Msg("battle reset")
	e.init()
}

func (e *Engine) init() {
	e.runID = uuid.New()
	e.tick = 0
	e.shots = [2]int{}
	e.hits = [2]int{}
	e.result = OutcomeReason{}
	e.ended = false

	if r, ok := e.decider.(Resetter); ok {
		r.Reset()
	}

	e.initIslands()
	e.initShips()

	e.events.Add(0, "--", "--", CatWorld, "init",
		fmt.Sprintf("run=%s A=%d B=%d islands=%d", e.runID, e.spawned[TeamA], e.spawned[TeamB], len(e.islands)),
		float64(len(e.islands)))
	e.log.Info().
		Str("run", e.runID.String()).
		Int64("seed", e.seed).
		Int("teamA", e.spawned[TeamA]).
		Int("teamB", e.spawned[TeamB]).
		Int("islands", len(e.islands)).
		Msg("battle initialised")
}

func (e *Engine) initIslands() {
	switch {
	case len(e.scriptedIslands) > 0:
		e.islands = append([]Island(nil), e.scriptedIslands...)
		return
	case e.noIslands:
		e.islands = nil
		return
	}
	want := e.setup.Islands
	e.islands = placeIslands(want, e.tuning, e.rng)
	if len(e.islands) < want {
		e.log.Warn().
			Int("requested", want).
			Int("placed", len(e.islands)).
			Msg("could not place all islands within spacing constraints")
		e.events.Add(0, "--", "--", CatWorld, "placement_shortfall",
			fmt.Sprintf("requested %d placed %d", want, len(e.islands)), float64(want-len(e.islands)))
	}
}

func (e *Engine) initShips() {
	e.fleets = [2][]*Ship{}
	if len(e.scripted) > 0 {
		for _, sc := range e.scripted {
			n := len(e.fleets[sc.team]) + 1
			s := NewShip(shipID(sc.team, n), sc.team, sc.pos, e.tuning)
			s.vel = sc.vel
			if !sc.vel.IsZero() {
				s.heading = sc.vel.Heading()
			}
			e.fleets[sc.team] = append(e.fleets[sc.team], s)
		}
	} else {
		m := e.tuning.SpawnMargin
		for _, team := range Teams {
			side := e.sides[team]
			for i := 1; i <= e.setup.Count(team); i++ {
				x := uniform(e.rng, side.SpawnMinX, side.SpawnMaxX)
				y := uniform(e.rng, m, e.tuning.MapHeight-m)
				e.fleets[team] = append(e.fleets[team], NewShip(shipID(team, i), team, V(x, y), e.tuning))
			}
		}
	}
	for _, team := range Teams {
		e.spawned[team] = len(e.fleets[team])
	}
	e.rebuildShips()
}

func (e *Engine) rebuildShips() {
	e.ships = make([]*Ship, 0, len(e.fleets[TeamA])+len(e.fleets[TeamB]))
	e.ships = append(e.ships, e.fleets[TeamA]...)
	e.ships = append(e.ships, e.fleets[TeamB]...)
}

// Step advances the battle by one tick. It returns false without doing
// anything once the battle has ended.
func (e *Engine) Step() bool {
	if e.ended {
		return false
	}
	e.tick++
	now := e.Now()

	e.resolveShipCollisions(now)
	for _, s := range e.ships {
		e.updateShip(s, now)
	}
	e.sweep(now)
	e.metrics.Tick(context.Background())
	e.checkOutcome()
	return true
}

// Run steps until the battle ends, maxTicks ticks have run (0 means no
// limit), or ctx is cancelled between ticks. It returns the ticks advanced.
func (e *Engine) Run(ctx context.Context, maxTicks int) (int, error) {
	n := 0
	for maxTicks <= 0 || n < maxTicks {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if !e.Step() {
			break
		}
		n++
	}
	return n, nil
}

func (e *Engine) updateShip(s *Ship, now time.Duration) {
	if !s.Alive() {
		s.drift(e.tuning.DeadDrag)
		return
	}
	act := e.decider.Decide(e.observe(s), e.rng)
	s.applyForce(act.Accel())

	next := s.integrate()
	next, clamped := s.enforceBounds(next, e.sides[s.team], e.tuning)
	if clamped {
		e.damage(s, DamageCollision, "boundary", now)
	}
	s.pos = next
	s.tickCooldowns()

	e.engage(s, act)
	e.resolveIslandCollisions(s, now)
}

// observe builds the decision input for s. Islands are shared with the
// engine and must be treated as read-only.
func (e *Engine) observe(s *Ship) Observation {
	obs := Observation{
		Tick: e.tick,
		Self: SelfView{
			ID:           s.id,
			Team:         s.team,
			Position:     s.pos,
			Velocity:     s.vel,
			Health:       s.health,
			Ammo:         s.ammo,
			FireCooldown: s.fireCooldown,
			Size:         s.size,
			MaxSpeed:     s.maxSpeed,
			MaxForce:     s.maxForce,
			TargetID:     s.targetID,
		},
		Islands:   e.islands,
		Side:      e.sides[s.team],
		MapWidth:  e.tuning.MapWidth,
		MapHeight: e.tuning.MapHeight,
	}
	for _, o := range e.ships {
		if o == s || !o.Alive() {
			continue
		}
		off := o.pos.Sub(s.pos)
		d := off.Mag()
		if d >= e.tuning.VisionRadius {
			continue
		}
		c := Contact{ID: o.id, Team: o.team, Offset: off, Velocity: o.vel, Distance: d, Health: o.health}
		if o.team == s.team {
			obs.Allies = append(obs.Allies, c)
		} else {
			obs.Enemies = append(obs.Enemies, c)
		}
	}
	sort.SliceStable(obs.Allies, func(i, j int) bool { return obs.Allies[i].Distance < obs.Allies[j].Distance })
	sort.SliceStable(obs.Enemies, func(i, j int) bool { return obs.Enemies[i].Distance < obs.Enemies[j].Distance })
	return obs
}

// damage applies one point of damage and records what happened.
func (e *Engine) damage(s *Ship, src DamageSource, cause string, now time.Duration) (applied, killed bool) {
	applied, killed = s.ApplyDamage(src, now)
	team := s.team.String()
	if src == DamageCollision {
		if applied {
			e.events.Add(e.tick, s.id, team, CatCollision, cause, fmt.Sprintf("hull=%d", s.health), float64(s.health))
			e.metrics.Collision(context.Background(), cause)
		} else {
			e.events.AddVerbose(e.tick, s.id, team, CatCollision, cause+"_ignored", "cooldown", float64(s.collisionCooldown))
		}
	}
	if killed {
		e.events.Add(e.tick, s.id, team, CatLifecycle, "death", cause, now.Seconds())
		e.metrics.Death(context.Background(), team, cause)
		e.log.Debug().
			Str("ship", s.id).
			Str("cause", cause).
			Dur("at", now).
			Msg("ship sunk")
	}
	return applied, killed
}

// sweep flags sinking ships whose grace window has elapsed and drops them.
func (e *Engine) sweep(now time.Duration) {
	removed := false
	for _, s := range e.ships {
		if s.dead && !s.pendingRemoval && now-s.timeOfDeath > e.tuning.GraceWindow {
			s.pendingRemoval = true
			removed = true
		}
	}
	if !removed {
		return
	}
	for _, team := range Teams {
		kept := make([]*Ship, 0, len(e.fleets[team]))
		for _, s := range e.fleets[team] {
			if s.pendingRemoval {
				e.events.Add(e.tick, s.id, team.String(), CatLifecycle, "removed", "", now.Seconds())
				continue
			}
			kept = append(kept, s)
		}
		e.fleets[team] = kept
	}
	e.rebuildShips()
}

func (e *Engine) checkOutcome() {
	r := DetermineOutcome(e.fleets[TeamA], e.fleets[TeamB])
	if !r.Outcome.Terminal() {
		return
	}
	r.Tick = e.tick
	e.result = r
	e.ended = true

	e.events.Add(e.tick, "--", "--", CatOutcome, r.Outcome.String(), r.Description, float64(e.tick))
	e.metrics.Outcome(context.Background(), r.Outcome.String())
	e.log.Info().
		Str("run", e.runID.String()).
		Str("outcome", r.Outcome.String()).
		Int("tick", e.tick).
		Int("survivorsA", r.ASurvivors).
		Int("survivorsB", r.BSurvivors).
		Msg("battle over")
	if e.onTerminate != nil {
		e.onTerminate(r.Outcome)
	}
}

// Tick is the number of ticks stepped since the last init or reset.
func (e *Engine) Tick() int { return e.tick }

// Now is the simulation clock.
func (e *Engine) Now() time.Duration {
	return time.Duration(e.tick) * e.tuning.TickDuration()
}

func (e *Engine) Setup() Setup              { return e.setup }
func (e *Engine) Tuning() Tuning            { return e.tuning }
func (e *Engine) Seed() int64               { return e.seed }
func (e *Engine) RunID() string             { return e.runID.String() }
func (e *Engine) Events() *SimLog           { return e.events }
func (e *Engine) Islands() []Island         { return e.islands }
func (e *Engine) Ended() bool               { return e.ended }
func (e *Engine) Outcome() Outcome          { return e.result.Outcome }
func (e *Engine) Result() OutcomeReason     { return e.result }
func (e *Engine) Decider() DecisionProvider { return e.decider }

// Ships returns the live collection in iteration order.
func (e *Engine) Ships() []*Ship {
	return append([]*Ship(nil), e.ships...)
}

// Fleet returns the live ships of one team.
func (e *Engine) Fleet(team Team) []*Ship {
	return append([]*Ship(nil), e.fleets[team]...)
}

// Ship looks up a live ship by ID.
func (e *Engine) Ship(id string) *Ship {
	for _, s := range e.ships {
		if s.id == id {
			return s
		}
	}
	return nil
}

// Frame snapshots the battle for render sinks.
func (e *Engine) Frame() Frame {
	t := e.tuning
	f := Frame{
		RunID:        e.runID.String(),
		Tick:         e.tick,
		Now:          e.Now(),
		Width:        t.MapWidth,
		Height:       t.MapHeight,
		BaseWidth:    t.BaseWidth,
		VisionRadius: t.VisionRadius,
		FiringRange:  t.FiringRange,
		FlashTicks:   int(t.MuzzleFlashTime / t.TickDuration()),
		Islands:      e.islands,
		Ships:        make([]ShipView, 0, len(e.ships)),
		Outcome:      e.result.Outcome,
	}
	now := e.Now()
	for _, s := range e.ships {
		v := ShipView{
			ID:           s.id,
			Team:         s.team,
			Position:     s.pos,
			Velocity:     s.vel,
			Heading:      s.heading,
			Size:         s.size,
			Health:       s.health,
			MaxHealth:    s.maxHealth,
			Ammo:         s.ammo,
			FireCooldown: s.fireCooldown,
			TargetID:     s.targetID,
			Alive:        !s.dead,
			Alpha:        1,
			SinceShot:    -1,
		}
		if s.lastShotTick >= 0 {
			v.SinceShot = e.tick - s.lastShotTick
		}
		if s.dead {
			v.Alpha = fadeAlpha(now-s.timeOfDeath, t.GraceWindow)
		}
		f.Ships = append(f.Ships, v)
	}
	for _, team := range Teams {
		st := TeamStats{
			Team:    team,
			Spawned: e.spawned[team],
			Present: len(e.fleets[team]),
			Shots:   e.shots[team],
			Hits:    e.hits[team],
		}
		for _, s := range e.fleets[team] {
			if s.Alive() {
				st.Alive++
				st.Health += s.health
				st.Ammo += s.ammo
			}
		}
		st.Lost = st.Spawned - st.Alive
		f.Stats[team] = st
	}
	return f
}

// fadeAlpha dims a sinking ship from 0.35 toward 0.05 across the grace window.
func fadeAlpha(elapsed, grace time.Duration) float64 {
	if grace <= 0 {
		return 0.05
	}
	f := float64(elapsed) / float64(grace)
	if f > 1 {
		f = 1
	}
	return 0.35 - 0.3*f
}
