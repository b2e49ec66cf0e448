package sim

import "time"

// separationSlack is added to each half of a resolved pair's spacing so that
// rounding never leaves the pair inside contact range.
const separationSlack = 1e-9

// separateShips pushes an overlapping pair apart along the line between their
// centres, each by ShipPush of the overlap. The pair is placed symmetrically
// about its midpoint. It reports whether they overlapped.
// Coincident centres overlap but are not moved.
func separateShips(a, b *Ship, t Tuning) bool {
	minDist := a.size + b.size
	d := a.pos.Dist(b.pos)
	if d >= minDist {
		return false
	}
	axis := a.pos.Sub(b.pos).Normalize()
	if axis.IsZero() {
		return true
	}
	half := (d+2*(minDist-d)*t.ShipPush)/2 + separationSlack
	mid := a.pos.Add(b.pos).Scale(0.5)
	a.pos = mid.Add(axis.Scale(half))
	b.pos = mid.Sub(axis.Scale(half))
	return true
}

// pushOutOfIsland moves s clear of isl with a small overshoot and damps any
// velocity still heading into the island. It reports whether s overlapped.
func pushOutOfIsland(s *Ship, isl Island, t Tuning) bool {
	threshold := s.hullRadius(t) + isl.BoundingRadius
	d := s.pos.Dist(isl.Position)
	if d >= threshold {
		return false
	}
	n := s.pos.Sub(isl.Position).Normalize()
	if n.IsZero() {
		return true
	}
	s.pos = s.pos.Add(n.Scale((threshold - d) * t.IslandPush))
	if vn := s.vel.Dot(n); vn < 0 {
		s.vel = s.vel.Sub(n.Scale(vn * t.IslandBounce))
	}
	return true
}

// resolveShipCollisions checks every unordered pair of living ships once.
func (e *Engine) resolveShipCollisions(now time.Duration) {
	for i, a := range e.ships {
		for _, b := range e.ships[i+1:] {
			if a.dead {
				break
			}
			if b.dead {
				continue
			}
			if !separateShips(a, b, e.tuning) {
				continue
			}
			e.damage(a, DamageCollision, "ship", now)
			e.damage(b, DamageCollision, "ship", now)
		}
	}
}

// resolveIslandCollisions runs after s has moved for the tick.
func (e *Engine) resolveIslandCollisions(s *Ship, now time.Duration) {
	for _, isl := range e.islands {
		if s.dead {
			return
		}
		if pushOutOfIsland(s, isl, e.tuning) {
			e.damage(s, DamageCollision, "island", now)
		}
	}
}
