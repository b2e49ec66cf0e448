package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShip_FullHealthAndAmmo(t *testing.T) {
	tu := DefaultTuning()
	s := NewShip("A1", TeamA, V(20, 20), tu)
	assert.Equal(t, 3, s.Health())
	assert.Equal(t, 10, s.Ammo())
	assert.True(t, s.Alive())
	_, dead := s.TimeOfDeath()
	assert.False(t, dead)
	assert.Equal(t, "", s.TargetID())
}

func TestApplyDamage_ProjectileAlwaysApplies(t *testing.T) {
	s := NewShip("A1", TeamA, V(20, 20), DefaultTuning())
	s.collisionCooldown = 10

	applied, killed := s.ApplyDamage(DamageProjectile, 0)
	assert.True(t, applied)
	assert.False(t, killed)
	assert.Equal(t, 2, s.Health())
	assert.Equal(t, 10, s.collisionCooldown, "projectile hits leave the collision cooldown alone")
}

func TestApplyDamage_CollisionThrottled(t *testing.T) {
	tu := DefaultTuning()
	s := NewShip("A1", TeamA, V(20, 20), tu)

	applied, _ := s.ApplyDamage(DamageCollision, 0)
	require.True(t, applied)
	assert.Equal(t, tu.CollisionCooldown, s.collisionCooldown)

	s.tickCooldowns()
	applied, _ = s.ApplyDamage(DamageCollision, 0)
	assert.False(t, applied)
	assert.Equal(t, 2, s.Health(), "second collision inside the cooldown must be ignored")
	assert.Equal(t, tu.CollisionCooldown-1, s.collisionCooldown, "ignored hit must not reset the cooldown")

	for s.collisionCooldown > 0 {
		s.tickCooldowns()
	}
	applied, _ = s.ApplyDamage(DamageCollision, 0)
	assert.True(t, applied)
	assert.Equal(t, 1, s.Health())
}

func TestApplyDamage_DeathRecordsOnce(t *testing.T) {
	s := NewShip("B1", TeamB, V(700, 200), DefaultTuning())
	s.vel = V(1, 1)
	s.acc = V(0.1, 0)
	s.targetID = "A1"

	s.ApplyDamage(DamageProjectile, time.Second)
	s.ApplyDamage(DamageProjectile, 2*time.Second)
	applied, killed := s.ApplyDamage(DamageProjectile, 3*time.Second)
	require.True(t, applied)
	require.True(t, killed)

	tod, dead := s.TimeOfDeath()
	assert.True(t, dead)
	assert.Equal(t, 3*time.Second, tod)
	assert.Equal(t, 0, s.Health())
	assert.True(t, s.Velocity().IsZero())
	assert.True(t, s.acc.IsZero())
	assert.Equal(t, "", s.TargetID())

	// Damage after death is a no-op of either kind.
	for _, src := range []DamageSource{DamageProjectile, DamageCollision} {
		applied, killed = s.ApplyDamage(src, 9*time.Second)
		assert.False(t, applied)
		assert.False(t, killed)
	}
	tod, _ = s.TimeOfDeath()
	assert.Equal(t, 3*time.Second, tod)
	assert.Equal(t, 0, s.Health())
}

func TestDrift_DampsVelocity(t *testing.T) {
	s := NewShip("A1", TeamA, V(100, 100), DefaultTuning())
	sink(&Engine{tuning: DefaultTuning()}, s)
	s.vel = V(1, 0)
	s.drift(0.9)
	assert.InDelta(t, 0.9, s.vel.X, 1e-12)
	assert.InDelta(t, 100.9, s.pos.X, 1e-12)
}

func TestIntegrate_LimitsSpeedAndConsumesForce(t *testing.T) {
	tu := DefaultTuning()
	s := NewShip("A1", TeamA, V(100, 100), tu)
	s.vel = V(1.9, 0)
	s.applyForce(V(5, 0))
	next := s.integrate()
	assert.InDelta(t, tu.MaxSpeed, s.vel.Mag(), 1e-12)
	assert.InDelta(t, 102, next.X, 1e-12)
	assert.True(t, s.acc.IsZero())
	assert.Equal(t, 0.0, s.Heading())
}

func TestEnforceBounds_TeamLanes(t *testing.T) {
	tu := DefaultTuning()
	r := tu.ShipSize * tu.HullRadius

	tests := []struct {
		name    string
		team    Team
		next    Vec2
		vel     Vec2
		want    Vec2
		wantVel Vec2
		hit     bool
	}{
		{"A inside", TeamA, V(300, 200), V(1, 1), V(300, 200), V(1, 1), false},
		{"A home edge", TeamA, V(2, 200), V(-1, 1), V(r, 200), V(0, 1), true},
		{"A enemy base", TeamA, V(tu.MapWidth-tu.BaseWidth-1, 200), V(2, 0), V(tu.MapWidth-tu.BaseWidth-r, 200), V(0, 0), true},
		{"B cannot enter A base", TeamB, V(tu.BaseWidth+2, 200), V(-2, 0), V(tu.BaseWidth+r, 200), V(0, 0), true},
		{"B far edge", TeamB, V(tu.MapWidth-1, 200), V(1, 0), V(tu.MapWidth-r, 200), V(0, 0), true},
		{"top", TeamB, V(400, 1), V(1, -1), V(400, r), V(1, 0), true},
		{"bottom", TeamA, V(400, tu.MapHeight), V(1, 1), V(400, tu.MapHeight-r), V(1, 0), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewShip("X1", tc.team, tc.next, tu)
			s.vel = tc.vel
			got, hit := s.enforceBounds(tc.next, tu.Side(tc.team), tu)
			assert.Equal(t, tc.hit, hit)
			assert.InDelta(t, tc.want.X, got.X, 1e-9)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-9)
			assert.Equal(t, tc.wantVel, s.vel)
		})
	}
}

func TestTickCooldowns_FlooredAtZero(t *testing.T) {
	s := NewShip("A1", TeamA, V(100, 100), DefaultTuning())
	s.fireCooldown = 1
	s.tickCooldowns()
	s.tickCooldowns()
	assert.Equal(t, 0, s.fireCooldown)
	assert.Equal(t, 0, s.collisionCooldown)
}
