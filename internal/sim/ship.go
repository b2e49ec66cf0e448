package sim

import (
	"fmt"
	"time"
)

// DamageSource distinguishes throttled collision damage from projectile hits.
type DamageSource int

const (
	DamageProjectile DamageSource = iota
	DamageCollision
)

func (d DamageSource) String() string {
	if d == DamageCollision {
		return "collision"
	}
	return "projectile"
}

// Ship is one autonomous vessel. The engine owns every Ship; other ships refer
// to it only by ID.
type Ship struct {
	id   string
	team Team

	pos Vec2
	vel Vec2
	acc Vec2

	heading float64 // last non-zero velocity direction

	size     float64
	maxSpeed float64
	maxForce float64

	health            int
	maxHealth         int
	ammo              int
	fireCooldown      int
	maxFireCooldown   int
	collisionCooldown int
	maxCollisionCD    int

	targetID     string
	lastShotTick int // -1 until the first shot

	dead           bool
	timeOfDeath    time.Duration
	pendingRemoval bool
}

// NewShip returns a ship at full health and ammo.
func NewShip(id string, team Team, pos Vec2, t Tuning) *Ship {
	return &Ship{
		id:              id,
		team:            team,
		pos:             pos,
		size:            t.ShipSize,
		maxSpeed:        t.MaxSpeed,
		maxForce:        t.MaxForce,
		health:          t.MaxHealth,
		maxHealth:       t.MaxHealth,
		ammo:            t.MaxAmmo,
		maxFireCooldown: t.FireCooldown,
		maxCollisionCD:  t.CollisionCooldown,
		lastShotTick:    -1,
	}
}

func shipID(team Team, n int) string {
	return fmt.Sprintf("%s%d", team, n)
}

func (s *Ship) ID() string           { return s.id }
func (s *Ship) Team() Team           { return s.team }
func (s *Ship) Position() Vec2       { return s.pos }
func (s *Ship) Velocity() Vec2       { return s.vel }
func (s *Ship) Health() int          { return s.health }
func (s *Ship) Ammo() int            { return s.ammo }
func (s *Ship) Size() float64        { return s.size }
func (s *Ship) TargetID() string     { return s.targetID }
func (s *Ship) Heading() float64     { return s.heading }
func (s *Ship) Alive() bool          { return !s.dead }
func (s *Ship) PendingRemoval() bool { return s.pendingRemoval }

// TimeOfDeath returns the simulation time the ship sank, and false while it
// is still afloat.
func (s *Ship) TimeOfDeath() (time.Duration, bool) {
	return s.timeOfDeath, s.dead
}

// hullRadius is the effective radius used against walls and islands.
func (s *Ship) hullRadius(t Tuning) float64 {
	return s.size * t.HullRadius
}

func (s *Ship) applyForce(f Vec2) {
	s.acc = s.acc.Add(f)
}

// ApplyDamage removes one point of health. Collision damage is ignored while
// the collision cooldown runs and restarts it when it lands. Damage to a dead
// ship is a no-op. It reports whether health changed and whether this hit
// sank the ship.
func (s *Ship) ApplyDamage(src DamageSource, now time.Duration) (applied, killed bool) {
	if s.dead {
		return false, false
	}
	if src == DamageCollision {
		if s.collisionCooldown > 0 {
			return false, false
		}
		s.collisionCooldown = s.maxCollisionCD
	}
	s.health--
	if s.health > 0 {
		return true, false
	}
	s.health = 0
	s.dead = true
	s.timeOfDeath = now
	s.vel = Vec2{}
	s.acc = Vec2{}
	s.targetID = ""
	return true, true
}

// integrate advances velocity by the accumulated force and returns the
// tentative next position. Acceleration is consumed.
func (s *Ship) integrate() Vec2 {
	s.vel = s.vel.Add(s.acc).Limit(s.maxSpeed)
	s.acc = Vec2{}
	if !s.vel.IsZero() {
		s.heading = s.vel.Heading()
	}
	return s.pos.Add(s.vel)
}

// drift moves a sunk ship along its decaying residual velocity.
func (s *Ship) drift(drag float64) {
	s.vel = s.vel.Scale(drag)
	s.pos = s.pos.Add(s.vel)
	s.targetID = ""
}

// enforceBounds clamps next into the team lane and the map's vertical extent.
// Every clamped axis loses its velocity component. The return value reports
// whether any clamp happened.
func (s *Ship) enforceBounds(next Vec2, side TeamSide, t Tuning) (Vec2, bool) {
	r := s.hullRadius(t)
	hit := false
	if next.X-r < side.MinX {
		next.X = side.MinX + r
		s.vel.X = 0
		hit = true
	} else if next.X+r > side.MaxX {
		next.X = side.MaxX - r
		s.vel.X = 0
		hit = true
	}
	if next.Y-r < 0 {
		next.Y = r
		s.vel.Y = 0
		hit = true
	} else if next.Y+r > t.MapHeight {
		next.Y = t.MapHeight - r
		s.vel.Y = 0
		hit = true
	}
	return next, hit
}

// tickCooldowns counts both cooldowns down by one, floored at zero.
func (s *Ship) tickCooldowns() {
	if s.fireCooldown > 0 {
		s.fireCooldown--
	}
	if s.collisionCooldown > 0 {
		s.collisionCooldown--
	}
}

// canScan reports whether the ship is ready to pick and shoot a target.
func (s *Ship) canScan() bool {
	return !s.dead && s.ammo > 0 && s.fireCooldown == 0
}
