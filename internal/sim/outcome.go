package sim

// Outcome is the terminal result of a battle.
type Outcome int

const (
	OutcomeNone Outcome = iota // battle still running
	OutcomeTeamAWins
	OutcomeTeamBWins
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeTeamAWins:
		return "team_a_wins"
	case OutcomeTeamBWins:
		return "team_b_wins"
	case OutcomeDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Terminal reports whether o ends the battle.
func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

// Banner is the headline shown when the battle ends.
func (o Outcome) Banner() string {
	switch o {
	case OutcomeTeamAWins:
		return "Team A Wins!"
	case OutcomeTeamBWins:
		return "Team B Wins!"
	case OutcomeDraw:
		return "Mutual Destruction!"
	default:
		return ""
	}
}

// Winner returns the winning team, and false for a draw or a running battle.
func (o Outcome) Winner() (Team, bool) {
	switch o {
	case OutcomeTeamAWins:
		return TeamA, true
	case OutcomeTeamBWins:
		return TeamB, true
	default:
		return 0, false
	}
}

// OutcomeReason records the survivor counts an outcome was decided on.
type OutcomeReason struct {
	Outcome     Outcome
	Tick        int
	ASurvivors  int
	ATotal      int
	BSurvivors  int
	BTotal      int
	Description string
}

// DetermineOutcome evaluates both fleets together. A fleet is eliminated when
// none of its ships is afloat; sinking ships that have not been removed yet
// still count as eliminated.
func DetermineOutcome(a, b []*Ship) OutcomeReason {
	r := OutcomeReason{ATotal: len(a), BTotal: len(b)}
	for _, s := range a {
		if s.Alive() {
			r.ASurvivors++
		}
	}
	for _, s := range b {
		if s.Alive() {
			r.BSurvivors++
		}
	}
	switch {
	case r.ASurvivors == 0 && r.BSurvivors == 0:
		r.Outcome = OutcomeDraw
		r.Description = "mutual_destruction"
	case r.BSurvivors == 0:
		r.Outcome = OutcomeTeamAWins
		r.Description = "team_b_eliminated"
	case r.ASurvivors == 0:
		r.Outcome = OutcomeTeamBWins
		r.Description = "team_a_eliminated"
	default:
		r.Outcome = OutcomeNone
		r.Description = "in_progress"
	}
	return r
}
