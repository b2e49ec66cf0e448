package sim

import "time"

// ShipView is a read-only copy of one ship for render sinks.
type ShipView struct {
	ID           string
	Team         Team
	Position     Vec2
	Velocity     Vec2
	Heading      float64
	Size         float64
	Health       int
	MaxHealth    int
	Ammo         int
	FireCooldown int
	TargetID     string
	Alive        bool
	Alpha        float64 // 1 while afloat, fading toward zero while sinking
	SinceShot    int     // ticks since the last shot, -1 if never fired
}

// Firing reports whether the muzzle flash should still show.
func (v ShipView) Firing(flashTicks int) bool {
	return v.Alive && v.SinceShot >= 0 && v.SinceShot < flashTicks
}

// TeamStats summarises one fleet.
type TeamStats struct {
	Team    Team
	Spawned int
	Alive   int
	Present int // afloat plus sinking ships not yet removed
	Lost    int
	Health  int
	Ammo    int
	Shots   int
	Hits    int
}

// Frame is an immutable snapshot of the battle after a tick.
type Frame struct {
	RunID        string
	Tick         int
	Now          time.Duration
	Width        float64
	Height       float64
	BaseWidth    float64
	VisionRadius float64
	FiringRange  float64
	FlashTicks   int
	Islands      []Island
	Ships        []ShipView
	Stats        [2]TeamStats
	Outcome      Outcome
}

// Ship looks up a ship view by ID.
func (f Frame) Ship(id string) (ShipView, bool) {
	for _, s := range f.Ships {
		if s.ID == id {
			return s, true
		}
	}
	return ShipView{}, false
}

// RenderSink consumes frames. Implementations must not retain or mutate the
// engine; the frame is theirs to keep.
type RenderSink interface {
	Render(f Frame)
}
