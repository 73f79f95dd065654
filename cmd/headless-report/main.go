package main

import (
	"flag"
	"fmt"

	"github.com/august-k/Aristaeus/internal/wall"
)

type runStats struct {
	runIndex int
	seed     int64

	sealedTick     int
	finalState     string
	barriers       int
	turrets        int
	finalPlacement bool

	startRetries int
	stateChanges int
	pathRebuilds int

	report string
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless planning runs")
	flag.IntVar(&ticks, "ticks", 60, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "scenario seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "pocket", "scenario name (pocket, open)")
	flag.BoolVar(&verbose, "verbose", false, "print the full session report per run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "pocket" && scenario != "open" {
		fmt.Printf("error: unsupported scenario %q (supported: pocket, open)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Wall Planning Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(i+1, seed, ticks, scenario)
		all = append(all, stats)
		printRun(stats, verbose)
	}

	printAggregate(all)
}

func runScenario(runIndex int, seed int64, ticks int, scenario string) runStats {
	opts := []wall.PlanOption{wall.WithSeed(seed)}
	if scenario == "open" {
		opts = append(opts, wall.WithOpenField())
	}
	tp := wall.NewTestPlan(opts...)
	tp.RunTicks(ticks)

	barriers, turrets := 0, 0
	finalSeen := false
	for _, pb := range tp.Reporter.Placements() {
		switch pb.Kind {
		case wall.StructureBarrier:
			barriers++
			if pb.Final {
				finalSeen = true
			}
		case wall.StructureTurret:
			turrets++
		}
	}

	finalState := "awaiting-start"
	if last := tp.Reporter.Latest(); last != nil {
		finalState = last.State.String()
	}

	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		sealedTick:     tp.Reporter.SealedAtTick(),
		finalState:     finalState,
		barriers:       barriers,
		turrets:        turrets,
		finalPlacement: finalSeen,
		startRetries:   tp.PlanLog.CountCategory("path", "blacklist"),
		stateChanges:   tp.PlanLog.CountCategory("state", "change"),
		pathRebuilds:   tp.PlanLog.CountCategory("path", "found"),
		report:         tp.Report(),
	}
}

func printRun(rs runStats, verbose bool) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome: state=%s sealed_at=%d barriers=%d turrets=%d final_marked=%t\n",
		rs.finalState, rs.sealedTick, rs.barriers, rs.turrets, rs.finalPlacement)
	fmt.Printf("events: state_changes=%d path_rebuilds=%d start_retries=%d\n",
		rs.stateChanges, rs.pathRebuilds, rs.startRetries)
	if verbose {
		fmt.Println(rs.report)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	sealed := 0
	sealTicks := make([]int, 0, len(all))
	totalBarriers := 0
	totalTurrets := 0
	totalRetries := 0

	for _, rs := range all {
		if rs.sealedTick >= 0 {
			sealed++
			sealTicks = append(sealTicks, rs.sealedTick)
		}
		totalBarriers += rs.barriers
		totalTurrets += rs.turrets
		totalRetries += rs.startRetries
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d sealed=%d (%.0f%%)\n", len(all), sealed, pct(sealed, len(all)))
	fmt.Printf("avg_seal_tick=%s avg_barriers=%.1f avg_turrets=%.1f avg_start_retries=%.1f\n",
		avgTickString(sealTicks), avg(totalBarriers, len(all)), avg(totalTurrets, len(all)), avg(totalRetries, len(all)))
}

func avg(sum, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func pct(part, whole int) float64 {
	return avg(part, whole) * 100
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
