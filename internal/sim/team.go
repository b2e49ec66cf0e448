package sim

import "math"

// Team identifies one of the two fleets.
type Team int

const (
	TeamA Team = iota // spawns on the left edge
	TeamB             // spawns on the right edge
)

// Teams lists both fleets in iteration order.
var Teams = [2]Team{TeamA, TeamB}

func (t Team) String() string {
	if t == TeamA {
		return "A"
	}
	return "B"
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	return 1 - t
}

// TeamSide describes the half of the map a team lives in. All team-dependent
// movement and spawning reads these values instead of branching on Team.
type TeamSide struct {
	// Hard lane: ships are clamped to [MinX, MaxX].
	MinX, MaxX float64
	// Soft edges the avoidance behaviour steers away from. ±Inf disables a side.
	AvoidMinX, AvoidMaxX float64
	// Spawn rectangle x-range; y is shared.
	SpawnMinX, SpawnMaxX float64
}

// Side returns the lane data for team under this tuning. Team A owns the left
// base and may not enter the right one; team B mirrors it.
func (t Tuning) Side(team Team) TeamSide {
	w, b, m := t.MapWidth, t.BaseWidth, t.SpawnMargin
	if team == TeamA {
		return TeamSide{
			MinX: 0, MaxX: w - b,
			AvoidMinX: math.Inf(-1), AvoidMaxX: w - b,
			SpawnMinX: m, SpawnMaxX: b - m,
		}
	}
	return TeamSide{
		MinX: b, MaxX: w,
		AvoidMinX: b, AvoidMaxX: math.Inf(1),
		SpawnMinX: w - b + m, SpawnMaxX: w - m,
	}
}
