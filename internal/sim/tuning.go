package sim

import (
	"fmt"
	"time"
)

// Tuning holds every numeric constant that shapes the battle. None of these
// values carry a derivation; they are configuration, loaded by the config
// package and defaulted by DefaultTuning.
type Tuning struct {
	// World.
	MapWidth       float64 `mapstructure:"mapWidth"`
	MapHeight      float64 `mapstructure:"mapHeight"`
	BaseWidth      float64 `mapstructure:"baseWidth"`
	TicksPerSecond int     `mapstructure:"ticksPerSecond"`

	// Ship kinematics and sensors.
	ShipSize     float64 `mapstructure:"shipSize"`
	MaxSpeed     float64 `mapstructure:"maxSpeed"`
	MaxForce     float64 `mapstructure:"maxForce"`
	VisionRadius float64 `mapstructure:"visionRadius"`
	FiringRange  float64 `mapstructure:"firingRange"`

	// Combat.
	MaxHealth         int     `mapstructure:"maxHealth"`
	MaxAmmo           int     `mapstructure:"maxAmmo"`
	FireCooldown      int     `mapstructure:"fireCooldown"`      // ticks between shots
	CollisionCooldown int     `mapstructure:"collisionCooldown"` // ticks between collision hits
	FireChance        float64 `mapstructure:"fireChance"`        // per-tick Bernoulli when a target is in range
	HitDecay          float64 `mapstructure:"hitDecay"`          // k in 1 - k*distance

	// Steering.
	WanderRadius       float64 `mapstructure:"wanderRadius"`
	WanderDistance     float64 `mapstructure:"wanderDistance"`
	WanderChange       float64 `mapstructure:"wanderChange"`
	LookaheadTicks     float64 `mapstructure:"lookaheadTicks"`
	WanderWeight       float64 `mapstructure:"wanderWeight"`
	AvoidWeight        float64 `mapstructure:"avoidWeight"`
	SeparateWeight     float64 `mapstructure:"separateWeight"`
	EdgeMargin         float64 `mapstructure:"edgeMargin"`         // × ShipSize
	EdgeSteer          float64 `mapstructure:"edgeSteer"`          // × MaxForce
	IslandMargin       float64 `mapstructure:"islandMargin"`       // × ShipSize
	IslandSteer        float64 `mapstructure:"islandSteer"`        // × MaxForce
	IslandSteerNear    float64 `mapstructure:"islandSteerNear"`    // multiplier at the island centre
	IslandSteerFar     float64 `mapstructure:"islandSteerFar"`     // multiplier at the margin
	SeparationDistance float64 `mapstructure:"separationDistance"` // × ShipSize

	// Collision response.
	HullRadius      float64       `mapstructure:"hullRadius"` // effective radius × ShipSize for walls and islands
	ShipPush        float64       `mapstructure:"shipPush"`   // share of overlap each ship moves
	IslandPush      float64       `mapstructure:"islandPush"` // overshoot on island push-out
	IslandBounce    float64       `mapstructure:"islandBounce"`
	DeadDrag        float64       `mapstructure:"deadDrag"`
	GraceWindow     time.Duration `mapstructure:"graceWindow"`
	MuzzleFlashTime time.Duration `mapstructure:"muzzleFlashTime"`

	// Placement.
	SpawnMargin          float64 `mapstructure:"spawnMargin"`
	IslandSizeMin        float64 `mapstructure:"islandSizeMin"`
	IslandSizeMax        float64 `mapstructure:"islandSizeMax"`
	IslandSpacing        float64 `mapstructure:"islandSpacing"`
	ShorePadding         float64 `mapstructure:"shorePadding"`
	MaxPlacementAttempts int     `mapstructure:"maxPlacementAttempts"`
}

// DefaultTuning returns the stock battle parameters.
func DefaultTuning() Tuning {
	return Tuning{
		MapWidth:       800,
		MapHeight:      400,
		BaseWidth:      50,
		TicksPerSecond: 60,

		ShipSize:     11,
		MaxSpeed:     2,
		MaxForce:     0.15,
		VisionRadius: 100,
		FiringRange:  75,

		MaxHealth:         3,
		MaxAmmo:           10,
		FireCooldown:      30,
		CollisionCooldown: 30,
		FireChance:        0.08,
		HitDecay:          0.03,

		WanderRadius:       10,
		WanderDistance:     20,
		WanderChange:       0.3,
		LookaheadTicks:     25,
		WanderWeight:       0.5,
		AvoidWeight:        1.8,
		SeparateWeight:     1.6,
		EdgeMargin:         1.5,
		EdgeSteer:          2.5,
		IslandMargin:       1.8,
		IslandSteer:        2.0,
		IslandSteerNear:    1.5,
		IslandSteerFar:     0.5,
		SeparationDistance: 3.5,

		HullRadius:      0.8,
		ShipPush:        0.5,
		IslandPush:      1.1,
		IslandBounce:    1.2,
		DeadDrag:        0.9,
		GraceWindow:     3 * time.Second,
		MuzzleFlashTime: 150 * time.Millisecond,

		SpawnMargin:          15,
		IslandSizeMin:        20,
		IslandSizeMax:        60,
		IslandSpacing:        20,
		ShorePadding:         4,
		MaxPlacementAttempts: 50,
	}
}

// TickDuration is the simulated time covered by one Step.
func (t Tuning) TickDuration() time.Duration {
	if t.TicksPerSecond <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(t.TicksPerSecond)
}

// Validate rejects parameter sets that would make the world degenerate.
func (t Tuning) Validate() error {
	switch {
	case t.MapWidth <= 0 || t.MapHeight <= 0:
		return fmt.Errorf("%w: map must have positive size, got %gx%g", ErrInvalidTuning, t.MapWidth, t.MapHeight)
	case t.BaseWidth < 0 || 2*t.BaseWidth >= t.MapWidth:
		return fmt.Errorf("%w: base width %g does not fit map width %g", ErrInvalidTuning, t.BaseWidth, t.MapWidth)
	case t.ShipSize <= 0:
		return fmt.Errorf("%w: ship size must be positive", ErrInvalidTuning)
	case t.MaxHealth <= 0:
		return fmt.Errorf("%w: max health must be positive", ErrInvalidTuning)
	case t.FireChance < 0 || t.FireChance > 1:
		return fmt.Errorf("%w: fire chance %g outside [0,1]", ErrInvalidTuning, t.FireChance)
	case t.IslandSizeMin <= 0 || t.IslandSizeMax < t.IslandSizeMin:
		return fmt.Errorf("%w: island size range [%g,%g]", ErrInvalidTuning, t.IslandSizeMin, t.IslandSizeMax)
	case t.MaxPlacementAttempts <= 0:
		return fmt.Errorf("%w: max placement attempts must be positive", ErrInvalidTuning)
	}
	return nil
}
