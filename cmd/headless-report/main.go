package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Naval-Skirmish/internal/config"
	"github.com/Garsondee/Naval-Skirmish/internal/logging"
	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

// quietTicks is how long the guns must be silent before a capped run
// counts as quiet (~10s at 60TPS).
const quietTicks = 600

type runStats struct {
	runIndex int
	seed     int64
	runID    string

	outcome sim.Outcome
	ticks   int
	capped  bool // stopped by -ticks before an outcome

	firstContactTick int
	firstShotTick    int
	firstHitTick     int
	firstDeathTick   int
	lastHitTick      int

	shots              int
	hits               int
	deaths             int
	shipCollisions     int
	islandCollisions   int
	boundaryCollisions int
	islandsPlaced      int

	aTotal, bTotal         int
	aSurvivors, bSurvivors int
	aAmmo, bAmmo           int

	grades []sim.ShipGrade
}

func main() {
	var (
		configPath string
		runs       int
		ticks      int
		seedBase   int64
		seedStep   int64
		agent      string
	)
	flag.StringVar(&configPath, "config", "", "path to a JSON config file")
	flag.IntVar(&runs, "runs", 0, "number of headless battles (0 uses headless.runs)")
	flag.IntVar(&ticks, "ticks", 0, "tick cap per battle (0 uses headless.maxTicks)")
	flag.Int64Var(&seedBase, "seed-base", 0, "RNG seed for run 1 (0 uses seed, or 42)")
	flag.Int64Var(&seedStep, "seed-step", 0, "seed increment between runs (0 uses headless.seedStep)")
	flag.StringVar(&agent, "agent", "", "decision provider: steering or random (empty uses agent)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(logging.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	runs = pick(runs, cfg.Headless.Runs)
	ticks = pick(ticks, cfg.Headless.MaxTicks)
	seedStep = pick(seedStep, cfg.Headless.SeedStep)
	seedBase = pick(seedBase, pick(cfg.Seed, 42))
	if agent != "" {
		cfg.Agent = agent
	}
	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	batch := uuid.New()
	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("batch=%s agent=%s fleets=%dv%d islands=%d runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		batch, cfg.Agent, cfg.Setup.TeamA, cfg.Setup.TeamB, cfg.Setup.Islands, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runBattle(ctx, cfg, i+1, seed, ticks, log)
		if errors.Is(err, context.Canceled) {
			fmt.Printf("interrupted after %d runs\n\n", len(all))
			break
		}
		if err != nil {
			log.Error().Err(err).Int64("seed", seed).Msg("battle failed")
			os.Exit(1)
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

// pick returns v unless it is zero.
func pick[T int | int64](v, fallback T) T {
	if v != 0 {
		return v
	}
	return fallback
}

func runBattle(ctx context.Context, cfg config.Config, runIndex int, seed int64, maxTicks int, log zerolog.Logger) (runStats, error) {
	opts, err := cfg.EngineOptions(log)
	if err != nil {
		return runStats{}, err
	}
	events := sim.NewSimLog(true)
	opts = append(opts, sim.WithSeed(seed), sim.WithSimLog(events))
	e, err := sim.New(cfg.Setup, opts...)
	if err != nil {
		return runStats{}, err
	}
	if _, err := e.Run(ctx, maxTicks); err != nil {
		return runStats{}, err
	}
	return collectStats(runIndex, seed, e), nil
}

// collectStats derives a run's report from the engine's event log and final
// frame.
func collectStats(runIndex int, seed int64, e *sim.Engine) runStats {
	ev := e.Events()
	f := e.Frame()
	entries := ev.Entries()

	rs := runStats{
		runIndex:           runIndex,
		seed:               seed,
		runID:              f.RunID,
		outcome:            f.Outcome,
		ticks:              f.Tick,
		capped:             !f.Outcome.Terminal(),
		firstContactTick:   firstTick(entries, sim.CatTarget, "acquired"),
		firstShotTick:      firstTick(entries, sim.CatCombat, ""),
		firstHitTick:       firstTick(entries, sim.CatCombat, "hit"),
		firstDeathTick:     firstTick(entries, sim.CatLifecycle, "death"),
		lastHitTick:        -1,
		deaths:             ev.CountCategory(sim.CatLifecycle, "death"),
		shipCollisions:     ev.CountCategory(sim.CatCollision, "ship"),
		islandCollisions:   ev.CountCategory(sim.CatCollision, "island"),
		boundaryCollisions: ev.CountCategory(sim.CatCollision, "boundary"),
		islandsPlaced:      len(f.Islands),
		aAmmo:              f.Stats[sim.TeamA].Ammo,
		bAmmo:              f.Stats[sim.TeamB].Ammo,
	}
	if last, ok := ev.LastOf(sim.CatCombat, "hit"); ok {
		rs.lastHitTick = last.Tick
	}
	for _, st := range f.Stats {
		rs.shots += st.Shots
		rs.hits += st.Hits
	}
	rs.grades = sim.GradePerformance(ev.Records(f))
	rs.aTotal, rs.bTotal, rs.aSurvivors, rs.bSurvivors = teamSurvivalCounts(rs.grades)
	return rs
}

// firstTick returns the tick of the first entry in category with key, or -1.
// An empty key matches any key in the category.
func firstTick(entries []sim.SimLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category != category {
			continue
		}
		if key == "" || e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func teamSurvivalCounts(grades []sim.ShipGrade) (aTotal, bTotal, aSurvivors, bSurvivors int) {
	for _, g := range grades {
		switch g.Team {
		case sim.TeamA:
			aTotal++
			if g.Survived {
				aSurvivors++
			}
		case sim.TeamB:
			bTotal++
			if g.Survived {
				bSurvivors++
			}
		}
	}
	return aTotal, bTotal, aSurvivors, bSurvivors
}

// detectStalemate flags capped runs where both fleets are still afloat. The
// reason lists every condition that held.
func detectStalemate(rs runStats) (bool, string) {
	if !rs.capped {
		return false, "decided:" + rs.outcome.String()
	}
	if rs.aSurvivors == 0 || rs.bSurvivors == 0 {
		return false, "one_fleet_sunk"
	}
	reasons := []string{"tick_cap", "mutual_survival"}
	if rs.lastHitTick < 0 || rs.ticks-rs.lastHitTick >= quietTicks {
		reasons = append(reasons, "quiet_guns")
	}
	if rs.aAmmo == 0 && rs.bAmmo == 0 {
		reasons = append(reasons, "out_of_ammo")
	}
	return true, strings.Join(reasons, ",")
}

func accuracy(hits, shots int) float64 {
	if shots == 0 {
		return 0
	}
	return float64(hits) / float64(shots) * 100
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d run=%s) ---\n", rs.runIndex, rs.seed, rs.runID)
	result := rs.outcome.String()
	if stalemate, reason := detectStalemate(rs); stalemate {
		result = "stalemate(" + reason + ")"
	}
	fmt.Printf("result: %s ticks=%d survivors: A=%d/%d B=%d/%d\n",
		result, rs.ticks, rs.aSurvivors, rs.aTotal, rs.bSurvivors, rs.bTotal)
	fmt.Printf("phase_markers: contact=%d first_shot=%d first_hit=%d first_death=%d last_hit=%d\n",
		rs.firstContactTick, rs.firstShotTick, rs.firstHitTick, rs.firstDeathTick, rs.lastHitTick)
	fmt.Printf("gunnery: shots=%d hits=%d accuracy=%.0f%% deaths=%d ammo_left: A=%d B=%d\n",
		rs.shots, rs.hits, accuracy(rs.hits, rs.shots), rs.deaths, rs.aAmmo, rs.bAmmo)
	fmt.Printf("collisions: ship=%d island=%d boundary=%d islands_placed=%d\n",
		rs.shipCollisions, rs.islandCollisions, rs.boundaryCollisions, rs.islandsPlaced)
	fmt.Print(sim.FormatGrades(rs.grades))
	fmt.Println()
}

func printAggregate(all []runStats) {
	wins := map[sim.Outcome]int{}
	stalemates := 0
	stalemateReasons := map[string]int{}
	totalShots, totalHits, totalDeaths := 0, 0, 0
	totalShipColl, totalIslandColl, totalBoundaryColl := 0, 0, 0

	decidedTicks := make([]int, 0, len(all))
	contactTicks := make([]int, 0, len(all))
	hitTicks := make([]int, 0, len(all))
	deathTicks := make([]int, 0, len(all))

	// Aggregate per-ship scores across runs. IDs repeat between runs since
	// every battle numbers its fleets from 1.
	type shipAgg struct {
		team     sim.Team
		scoreSum float64
		count    int
		survived int
		good     map[string]int
		bad      map[string]int
	}
	shipAggs := map[string]*shipAgg{}

	for _, rs := range all {
		wins[rs.outcome]++
		if stalemate, reason := detectStalemate(rs); stalemate {
			stalemates++
			for _, r := range strings.Split(reason, ",") {
				stalemateReasons[r]++
			}
		}
		totalShots += rs.shots
		totalHits += rs.hits
		totalDeaths += rs.deaths
		totalShipColl += rs.shipCollisions
		totalIslandColl += rs.islandCollisions
		totalBoundaryColl += rs.boundaryCollisions
		if !rs.capped {
			decidedTicks = append(decidedTicks, rs.ticks)
		}
		if rs.firstContactTick >= 0 {
			contactTicks = append(contactTicks, rs.firstContactTick)
		}
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
		if rs.firstDeathTick >= 0 {
			deathTicks = append(deathTicks, rs.firstDeathTick)
		}
		for _, g := range rs.grades {
			ag, ok := shipAggs[g.ID]
			if !ok {
				ag = &shipAgg{team: g.Team, good: map[string]int{}, bad: map[string]int{}}
				shipAggs[g.ID] = ag
			}
			ag.scoreSum += g.Score
			ag.count++
			if g.Survived {
				ag.survived++
			}
			for _, t := range g.GoodTraits {
				ag.good[t]++
			}
			for _, t := range g.BadTraits {
				ag.bad[t]++
			}
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", n)
	fmt.Printf("results: team_a_wins=%d team_b_wins=%d draw=%d unfinished=%d (stalemate=%d)\n",
		wins[sim.OutcomeTeamAWins], wins[sim.OutcomeTeamBWins], wins[sim.OutcomeDraw], wins[sim.OutcomeNone], stalemates)
	if stalemates > 0 {
		fmt.Printf("stalemate_reasons: %s\n", joinCounts(stalemateReasons))
	}
	fmt.Printf("avg_ticks_to_decision=%s\n", avgTickString(decidedTicks))
	fmt.Printf("avg_per_run: shots=%.1f hits=%.1f deaths=%.1f ship_collisions=%.1f island_collisions=%.1f boundary_collisions=%.1f\n",
		avg(totalShots, n), avg(totalHits, n), avg(totalDeaths, n), avg(totalShipColl, n), avg(totalIslandColl, n), avg(totalBoundaryColl, n))
	fmt.Printf("overall_accuracy=%.1f%%\n", accuracy(totalHits, totalShots))
	fmt.Printf("phase_marker_avg_ticks: first_contact=%s first_hit=%s first_death=%s\n",
		avgTickString(contactTicks), avgTickString(hitTicks), avgTickString(deathTicks))

	fmt.Println("\n=== Aggregate Ship Performance ===")
	type idScore struct {
		id       string
		team     sim.Team
		avgScore float64
		survRate float64
		topGood  string
		topBad   string
	}
	var rows []idScore
	for id, ag := range shipAggs {
		rows = append(rows, idScore{
			id:       id,
			team:     ag.team,
			avgScore: ag.scoreSum / float64(ag.count),
			survRate: float64(ag.survived) / float64(ag.count) * 100,
			topGood:  topTrait(ag.good),
			topBad:   topTrait(ag.bad),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].team != rows[j].team {
			return rows[i].team < rows[j].team
		}
		if len(rows[i].id) != len(rows[j].id) {
			return len(rows[i].id) < len(rows[j].id)
		}
		return rows[i].id < rows[j].id
	})
	for _, r := range rows {
		fmt.Printf("  %-4s %s (avg=%.1f)  survival=%.0f%%", r.id, sim.PerfLetterGrade(r.avgScore), r.avgScore, r.survRate)
		if r.topGood != "" {
			fmt.Printf("  good=%s", r.topGood)
		}
		if r.topBad != "" {
			fmt.Printf("  bad=%s", r.topBad)
		}
		fmt.Println()
	}

	if n > 0 {
		fmt.Println("\n--- Team Summary (across all runs) ---")
		fmt.Print(sim.FormatGradesSummary(collectAllGrades(all)))
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// topTrait returns the most frequent trait, ties broken alphabetically.
func topTrait(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	best := ""
	bestN := 0
	for k, v := range counts {
		if v > bestN || (v == bestN && k < best) {
			best = k
			bestN = v
		}
	}
	return fmt.Sprintf("%s(%d)", best, bestN)
}

func collectAllGrades(all []runStats) []sim.ShipGrade {
	var out []sim.ShipGrade
	for _, rs := range all {
		out = append(out, rs.grades...)
	}
	return out
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, ",")
}
