package sim

import (
	"context"
	"fmt"
)

// HitProbability is the chance a shot lands at distance d with decay k:
// 1 - k·d clamped to [0, 1].
func HitProbability(d, k float64) float64 {
	p := 1 - k*d
	if !(p > 0) {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// FireResult describes one attempt to shoot.
type FireResult struct {
	Fired       bool // false when the shot could not be taken
	Hit         bool
	Killed      bool
	Distance    float64
	Probability float64
}

// Fire makes shooter take one shot at target. Nothing changes when the
// shooter is out of ammo, reloading, or either ship has sunk.
func (e *Engine) Fire(shooter, target *Ship) FireResult {
	if shooter == nil || target == nil {
		return FireResult{}
	}
	if shooter.ammo <= 0 || shooter.fireCooldown > 0 || shooter.dead || target.dead {
		return FireResult{}
	}
	d := shooter.pos.Dist(target.pos)
	res := FireResult{Fired: true, Distance: d, Probability: HitProbability(d, e.tuning.HitDecay)}

	shooter.ammo--
	shooter.fireCooldown = shooter.maxFireCooldown
	shooter.lastShotTick = e.tick
	e.shots[shooter.team]++

	if e.rng.Float64() < res.Probability {
		res.Hit = true
		e.hits[shooter.team]++
		_, res.Killed = e.damage(target, DamageProjectile, "shot by "+shooter.id, e.Now())
	}

	key := "miss"
	if res.Hit {
		key = "hit"
	}
	e.events.Add(e.tick, shooter.id, shooter.team.String(), CatCombat, key,
		fmt.Sprintf("%s at %.1f p=%.2f", target.id, d, res.Probability), d)
	e.metrics.Shot(context.Background(), shooter.team.String(), res.Hit)
	return res
}

// engage runs targeting for a living ship. An explicit fire request from the
// decision provider replaces the automatic fire roll for this tick.
func (e *Engine) engage(s *Ship, act Action) {
	if s.dead {
		return
	}
	if act.FireTargetID != "" {
		e.fireOnRequest(s, act.FireTargetID)
		return
	}
	if !s.canScan() {
		e.revalidateTarget(s)
		return
	}
	nearest, d := e.nearestVisibleEnemy(s)
	if nearest == nil {
		e.setTarget(s, "")
		return
	}
	e.setTarget(s, nearest.id)
	if d <= e.tuning.FiringRange && e.rng.Float64() < e.tuning.FireChance {
		e.Fire(s, nearest)
	}
}

func (e *Engine) fireOnRequest(s *Ship, id string) {
	target := e.Ship(id)
	if target == nil || target.team == s.team || target.dead {
		e.revalidateTarget(s)
		return
	}
	d := s.pos.Dist(target.pos)
	if d >= e.tuning.VisionRadius {
		e.revalidateTarget(s)
		return
	}
	e.setTarget(s, id)
	if d <= e.tuning.FiringRange {
		e.Fire(s, target)
	}
}

// nearestVisibleEnemy returns the closest living enemy inside vision range.
func (e *Engine) nearestVisibleEnemy(s *Ship) (*Ship, float64) {
	var best *Ship
	bestD := 0.0
	for _, o := range e.fleets[s.team.Opponent()] {
		if o.dead {
			continue
		}
		d := s.pos.Dist(o.pos)
		if d >= e.tuning.VisionRadius {
			continue
		}
		if best == nil || d < bestD {
			best, bestD = o, d
		}
	}
	return best, bestD
}

// revalidateTarget keeps the current target only while it is afloat and in
// vision range.
func (e *Engine) revalidateTarget(s *Ship) {
	if s.targetID == "" {
		return
	}
	t := e.Ship(s.targetID)
	if t == nil || t.dead || s.pos.Dist(t.pos) >= e.tuning.VisionRadius {
		e.setTarget(s, "")
	}
}

func (e *Engine) setTarget(s *Ship, id string) {
	if s.targetID == id {
		return
	}
	if id == "" {
		e.events.AddVerbose(e.tick, s.id, s.team.String(), CatTarget, "lost", s.targetID, 0)
	} else if t := e.Ship(id); t != nil {
		e.events.AddVerbose(e.tick, s.id, s.team.String(), CatTarget, "acquired", id, s.pos.Dist(t.pos))
	}
	s.targetID = id
}
