package sim

import (
	"fmt"
	"sort"
	"strings"
)

// ShipRecord is one ship's combat record reconstructed from the SimLog.
type ShipRecord struct {
	ID          string
	Team        Team
	Shots       int
	Hits        int
	Kills       int
	DamageTaken int
	Collisions  int
	Survived    bool
	DeathCause  string // empty while afloat
	DeathTick   int    // -1 while afloat
}

// ShipGrade is the scored performance of one ship.
type ShipGrade struct {
	ShipRecord
	Score      float64 // 0-100
	Grade      string
	GoodTraits []string
	BadTraits  []string
}

// Accuracy is hits over shots, zero when nothing was fired.
func (r ShipRecord) Accuracy() float64 {
	return perfFrac(r.Hits, r.Shots)
}

// Records rebuilds every spawned ship's record for the current run. Events
// before the most recent init are ignored so a reset starts a clean slate.
func (sl *SimLog) Records(f Frame) []ShipRecord {
	byID := map[string]*ShipRecord{}
	var order []string
	for _, team := range Teams {
		for n := 1; n <= f.Stats[team].Spawned; n++ {
			id := shipID(team, n)
			byID[id] = &ShipRecord{ID: id, Team: team, Survived: true, DeathTick: -1}
			order = append(order, id)
		}
	}

	start := 0
	for i, e := range sl.entries {
		if e.Category == CatWorld && e.Key == "init" {
			start = i
		}
	}
	for _, e := range sl.entries[start:] {
		switch e.Category {
		case CatCombat:
			r, ok := byID[e.Ship]
			if !ok {
				continue
			}
			r.Shots++
			if e.Key != "hit" {
				continue
			}
			r.Hits++
			if target, ok := byID[firstWord(e.Value)]; ok {
				target.DamageTaken++
			}
		case CatCollision:
			if r, ok := byID[e.Ship]; ok && !strings.HasSuffix(e.Key, "_ignored") {
				r.Collisions++
				r.DamageTaken++
			}
		case CatLifecycle:
			if e.Key != "death" {
				continue
			}
			r, ok := byID[e.Ship]
			if !ok {
				continue
			}
			r.Survived = false
			r.DeathCause = e.Value
			r.DeathTick = e.Tick
			if killer, ok := byID[strings.TrimPrefix(e.Value, "shot by ")]; ok && killer != r {
				killer.Kills++
			}
		}
	}

	out := make([]ShipRecord, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// GradePerformance scores each record, best first within each team.
func GradePerformance(records []ShipRecord) []ShipGrade {
	grades := make([]ShipGrade, 0, len(records))
	for _, r := range records {
		grades = append(grades, computeGrade(r))
	}
	sort.SliceStable(grades, func(i, j int) bool {
		if grades[i].Team != grades[j].Team {
			return grades[i].Team < grades[j].Team
		}
		return grades[i].Score > grades[j].Score
	})
	return grades
}

func computeGrade(r ShipRecord) ShipGrade {
	g := ShipGrade{ShipRecord: r}

	score := 40.0
	if r.Shots > 0 {
		score += 25 * r.Accuracy()
	}
	score += minf(30, 12*float64(r.Kills))
	if r.Survived {
		score += 15
	}
	score -= 5 * float64(r.DamageTaken)
	score -= 2 * float64(r.Collisions)
	g.Score = perfClamp(score)
	g.Grade = PerfLetterGrade(g.Score)
	g.GoodTraits, g.BadTraits = perfDetectTraits(r)
	return g
}

func perfDetectTraits(r ShipRecord) (good, bad []string) {
	if r.Shots >= 4 && r.Accuracy() >= 0.5 {
		good = append(good, "sharpshooter")
	}
	if r.Kills >= 2 {
		good = append(good, "ace")
	}
	if r.Survived && r.DamageTaken == 0 {
		good = append(good, "untouched")
	}
	if r.Shots >= 6 && r.Accuracy() < 0.2 {
		bad = append(bad, "wasteful")
	}
	if r.Collisions >= 2 {
		bad = append(bad, "reckless")
	}
	switch r.DeathCause {
	case "island", "boundary", "ship":
		bad = append(bad, "wrecked")
	}
	return good, bad
}

// FormatGrades returns a human-readable performance report.
func FormatGrades(grades []ShipGrade) string {
	var sb strings.Builder
	sb.WriteString("\n=== Ship Performance Grades ===\n")

	currentTeam := Team(-1)
	for _, g := range grades {
		if g.Team != currentTeam {
			currentTeam = g.Team
			fmt.Fprintf(&sb, "\n--- Team %s ---\n", g.Team)
		}

		status := "afloat"
		if !g.Survived {
			status = fmt.Sprintf("sunk T=%d", g.DeathTick)
		}
		fmt.Fprintf(&sb, "  %-3s  %-3s  [%s]  shots=%d hits=%d kills=%d dmg=%d coll=%d\n",
			g.Grade, g.ID, status, g.Shots, g.Hits, g.Kills, g.DamageTaken, g.Collisions)
		if len(g.GoodTraits) > 0 {
			fmt.Fprintf(&sb, "       Good: %s\n", strings.Join(g.GoodTraits, ", "))
		}
		if len(g.BadTraits) > 0 {
			fmt.Fprintf(&sb, "       Bad:  %s\n", strings.Join(g.BadTraits, ", "))
		}
	}
	return sb.String()
}

// FormatGradesSummary returns a compact team-level summary.
func FormatGradesSummary(grades []ShipGrade) string {
	var sb strings.Builder

	type teamStats struct {
		count     int
		scoreSum  float64
		survived  int
		goodCount map[string]int
		badCount  map[string]int
	}
	var teams [2]*teamStats
	for _, g := range grades {
		ts := teams[g.Team]
		if ts == nil {
			ts = &teamStats{goodCount: map[string]int{}, badCount: map[string]int{}}
			teams[g.Team] = ts
		}
		ts.count++
		ts.scoreSum += g.Score
		if g.Survived {
			ts.survived++
		}
		for _, t := range g.GoodTraits {
			ts.goodCount[t]++
		}
		for _, t := range g.BadTraits {
			ts.badCount[t]++
		}
	}

	for _, team := range Teams {
		ts := teams[team]
		if ts == nil {
			continue
		}
		avg := ts.scoreSum / float64(ts.count)
		fmt.Fprintf(&sb, "  Team %s: avg_score=%.1f (%s)  survived=%d/%d\n",
			team, avg, PerfLetterGrade(avg), ts.survived, ts.count)
		if len(ts.goodCount) > 0 {
			fmt.Fprintf(&sb, "    Top good: %s\n", perfTopTraits(ts.goodCount, 4))
		}
		if len(ts.badCount) > 0 {
			fmt.Fprintf(&sb, "    Top bad:  %s\n", perfTopTraits(ts.badCount, 4))
		}
	}
	return sb.String()
}

func perfFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

func perfClamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// PerfLetterGrade maps a 0-100 score to a letter grade.
func PerfLetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

func perfTopTraits(counts map[string]int, n int) string {
	type kv struct {
		trait string
		count int
	}
	items := make([]kv, 0, len(counts))
	for k, v := range counts {
		items = append(items, kv{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].trait < items[j].trait
	})
	if len(items) > n {
		items = items[:n]
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s(%d)", it.trait, it.count)
	}
	return strings.Join(parts, ", ")
}
