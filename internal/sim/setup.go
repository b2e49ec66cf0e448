package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSetup is returned when team or island counts are out of range.
	ErrInvalidSetup = errors.New("invalid setup")
	// ErrInvalidTuning is returned when the world parameters are unusable.
	ErrInvalidTuning = errors.New("invalid tuning")
)

// Allowed counts per battle.
const (
	MinShipsPerTeam = 3
	MaxShipsPerTeam = 9
	MinIslands      = 0
	MaxIslands      = 10
)

// Setup is the battle composition requested by the player.
type Setup struct {
	TeamA   int `mapstructure:"teamA"`
	TeamB   int `mapstructure:"teamB"`
	Islands int `mapstructure:"islands"`
}

// DefaultSetup is a five-on-five battle among three islands.
func DefaultSetup() Setup {
	return Setup{TeamA: 5, TeamB: 5, Islands: 3}
}

// Validate checks every count against its allowed range.
func (s Setup) Validate() error {
	if s.TeamA < MinShipsPerTeam || s.TeamA > MaxShipsPerTeam {
		return fmt.Errorf("%w: team A ships %d outside [%d,%d]", ErrInvalidSetup, s.TeamA, MinShipsPerTeam, MaxShipsPerTeam)
	}
	if s.TeamB < MinShipsPerTeam || s.TeamB > MaxShipsPerTeam {
		return fmt.Errorf("%w: team B ships %d outside [%d,%d]", ErrInvalidSetup, s.TeamB, MinShipsPerTeam, MaxShipsPerTeam)
	}
	if s.Islands < MinIslands || s.Islands > MaxIslands {
		return fmt.Errorf("%w: islands %d outside [%d,%d]", ErrInvalidSetup, s.Islands, MinIslands, MaxIslands)
	}
	return nil
}

// Count returns the requested ship count for team.
func (s Setup) Count(team Team) int {
	if team == TeamA {
		return s.TeamA
	}
	return s.TeamB
}
