package main

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Naval-Skirmish/internal/config"
	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

func TestTeamSurvivalCounts(t *testing.T) {
	grades := []sim.ShipGrade{
		{ShipRecord: sim.ShipRecord{Team: sim.TeamA, Survived: true}},
		{ShipRecord: sim.ShipRecord{Team: sim.TeamA, Survived: false}},
		{ShipRecord: sim.ShipRecord{Team: sim.TeamB, Survived: true}},
		{ShipRecord: sim.ShipRecord{Team: sim.TeamB, Survived: true}},
	}

	aTotal, bTotal, aSurvivors, bSurvivors := teamSurvivalCounts(grades)
	if aTotal != 2 || bTotal != 2 {
		t.Fatalf("expected totals A=2 B=2, got A=%d B=%d", aTotal, bTotal)
	}
	if aSurvivors != 1 || bSurvivors != 2 {
		t.Fatalf("expected survivors A=1 B=2, got A=%d B=%d", aSurvivors, bSurvivors)
	}
}

func TestDetectStalemate_TrueWhenCappedWithBothFleetsAfloat(t *testing.T) {
	rs := runStats{
		capped:      true,
		ticks:       5000,
		lastHitTick: 3000,
		aSurvivors:  2,
		bSurvivors:  3,
		aAmmo:       0,
		bAmmo:       0,
	}

	isStalemate, reason := detectStalemate(rs)
	if !isStalemate {
		t.Fatalf("expected stalemate=true, got false (reason=%s)", reason)
	}
	for _, want := range []string{"tick_cap", "mutual_survival", "quiet_guns", "out_of_ammo"} {
		if !strings.Contains(reason, want) {
			t.Fatalf("expected reason to mention %s, got: %s", want, reason)
		}
	}
}

func TestDetectStalemate_RecentFireIsNotQuiet(t *testing.T) {
	rs := runStats{capped: true, ticks: 5000, lastHitTick: 4990, aSurvivors: 1, bSurvivors: 1, aAmmo: 4}

	isStalemate, reason := detectStalemate(rs)
	if !isStalemate {
		t.Fatalf("expected stalemate=true (reason=%s)", reason)
	}
	if strings.Contains(reason, "quiet_guns") || strings.Contains(reason, "out_of_ammo") {
		t.Fatalf("unexpected reason: %s", reason)
	}
}

func TestDetectStalemate_FalseWhenDecided(t *testing.T) {
	rs := runStats{outcome: sim.OutcomeTeamBWins, bSurvivors: 3}

	isStalemate, reason := detectStalemate(rs)
	if isStalemate {
		t.Fatalf("expected stalemate=false for a decided battle (reason=%s)", reason)
	}
	if reason != "decided:team_b_wins" {
		t.Fatalf("unexpected reason: %s", reason)
	}
}

func TestDetectStalemate_FalseWhenOneFleetSunk(t *testing.T) {
	rs := runStats{capped: true, aSurvivors: 0, bSurvivors: 2}

	if isStalemate, reason := detectStalemate(rs); isStalemate {
		t.Fatalf("expected stalemate=false when a fleet is gone (reason=%s)", reason)
	}
}

func testConfig() config.Config {
	return config.Config{
		Setup:  sim.Setup{TeamA: 3, TeamB: 3, Islands: 2},
		Tuning: sim.DefaultTuning(),
		Agent:  "steering",
	}
}

func TestRunBattle_StatsAreConsistent(t *testing.T) {
	rs, err := runBattle(context.Background(), testConfig(), 1, 42, 4000, zerolog.Nop())
	if err != nil {
		t.Fatalf("runBattle: %v", err)
	}

	if rs.aTotal != 3 || rs.bTotal != 3 {
		t.Fatalf("expected 3v3 grades, got A=%d B=%d", rs.aTotal, rs.bTotal)
	}
	if rs.hits > rs.shots {
		t.Fatalf("hits %d exceed shots %d", rs.hits, rs.shots)
	}
	if rs.capped == rs.outcome.Terminal() {
		t.Fatalf("capped=%v disagrees with outcome %s", rs.capped, rs.outcome)
	}
	if rs.ticks > 4000 {
		t.Fatalf("ran %d ticks past the cap", rs.ticks)
	}
	if rs.firstHitTick >= 0 && rs.firstShotTick > rs.firstHitTick {
		t.Fatalf("first hit %d before first shot %d", rs.firstHitTick, rs.firstShotTick)
	}
	if rs.deaths != (rs.aTotal-rs.aSurvivors)+(rs.bTotal-rs.bSurvivors) {
		t.Fatalf("deaths=%d but survivors A=%d/%d B=%d/%d", rs.deaths, rs.aSurvivors, rs.aTotal, rs.bSurvivors, rs.bTotal)
	}
	shots := 0
	for _, g := range rs.grades {
		shots += g.Shots
	}
	if shots != rs.shots {
		t.Fatalf("per-ship shots %d != team shots %d", shots, rs.shots)
	}
	if rs.runID == "" {
		t.Fatal("expected a run id")
	}
}

func TestRunBattle_SameSeedSameReport(t *testing.T) {
	a, err := runBattle(context.Background(), testConfig(), 1, 7, 3000, zerolog.Nop())
	if err != nil {
		t.Fatalf("runBattle: %v", err)
	}
	b, err := runBattle(context.Background(), testConfig(), 1, 7, 3000, zerolog.Nop())
	if err != nil {
		t.Fatalf("runBattle: %v", err)
	}
	if a.ticks != b.ticks || a.shots != b.shots || a.hits != b.hits || a.outcome != b.outcome {
		t.Fatalf("seeded runs diverged: %+v vs %+v", a, b)
	}
	if a.runID == b.runID {
		t.Fatal("each battle gets its own run id")
	}
}

func TestRunBattle_UnknownAgent(t *testing.T) {
	cfg := testConfig()
	cfg.Agent = "admiral"
	if _, err := runBattle(context.Background(), cfg, 1, 1, 10, zerolog.Nop()); err == nil {
		t.Fatal("expected an error for an unknown agent")
	}
}

func TestRunBattle_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runBattle(ctx, testConfig(), 1, 1, 100, zerolog.Nop()); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHelpers(t *testing.T) {
	if got := pick(0, 5); got != 5 {
		t.Fatalf("pick(0, 5) = %d", got)
	}
	if got := pick(int64(3), 9); got != 3 {
		t.Fatalf("pick(3, 9) = %d", got)
	}
	if got := topTrait(map[string]int{"ace": 2, "sharpshooter": 2, "untouched": 1}); got != "ace(2)" {
		t.Fatalf("topTrait tie-break: %s", got)
	}
	if got := joinCounts(map[string]int{"tick_cap": 2, "mutual_survival": 2}); got != "mutual_survival=2,tick_cap=2" {
		t.Fatalf("joinCounts: %s", got)
	}
	if got := avgTickString(nil); got != "n/a" {
		t.Fatalf("avgTickString(nil) = %s", got)
	}
	if got := accuracy(1, 4); got != 25 {
		t.Fatalf("accuracy(1, 4) = %v", got)
	}
}
