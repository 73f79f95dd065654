package wall

import (
	"strings"
	"testing"
)

// checkLoopWellFormed verifies a perimeter walk is a closed loop with no
// repeated interior tiles.
func checkLoopWellFormed(t *testing.T, loop []TileCoordinate) {
	t.Helper()
	if len(loop) < 4 {
		t.Fatalf("loop too short: %d tiles", len(loop))
	}
	if loop[0] != loop[len(loop)-1] {
		t.Errorf("loop endpoints differ: %v vs %v", loop[0], loop[len(loop)-1])
	}
	seen := make(map[TileCoordinate]bool)
	for _, tc := range loop[:len(loop)-1] {
		if seen[tc] {
			t.Errorf("loop revisits %v", tc)
		}
		seen[tc] = true
	}
}

func TestPlannerSealsPocket(t *testing.T) {
	tp := NewTestPlan(WithVerbose(true))

	sealedTick := tp.RunUntil(func(tp *TestPlan) bool {
		return tp.Planner.Sealed()
	}, 50)
	if sealedTick < 0 {
		t.Fatalf("pocket never sealed\n%s", tp.PlanLog.Format())
	}

	// Let the session settle: the turret follows the seal, then nothing.
	tp.RunTicks(5)

	placements := tp.Reporter.Placements()
	if len(placements) == 0 {
		t.Fatal("sealed without placing anything")
	}
	turrets := 0
	for i, pb := range placements {
		switch pb.Kind {
		case StructureTurret:
			turrets++
			if pb.Location != tp.Anchor {
				t.Errorf("turret placed at (%d,%d), want the anchor", pb.Location.X, pb.Location.Y)
			}
			if i != len(placements)-1 {
				t.Error("turret must be the final placement")
			}
		case StructureBarrier:
			if pb.Final && i != len(placements)-2 {
				t.Errorf("barrier %d marked final but is not the sealing one", i)
			}
		default:
			t.Errorf("unexpected placement kind %s", pb.Kind)
		}
	}
	if turrets != 1 {
		t.Errorf("placed %d turrets, want exactly 1", turrets)
	}
	if tp.Planner.State() != StateSealed {
		t.Errorf("final state %s, want sealed", tp.Planner.State())
	}
	if !tp.PlanLog.HasEntry("state", "change", "sealed") {
		t.Error("no state transition to sealed was logged")
	}
	checkLoopWellFormed(t, tp.Planner.WallPath())

	// Idempotence: a sealed session with its turret in place emits nothing.
	before := len(tp.Grid.Structures())
	tp.RunTicks(5)
	if after := len(tp.Grid.Structures()); after != before {
		t.Errorf("sealed planner kept building: %d -> %d structures", before, after)
	}
}

func TestPlannerOpenFieldDegrades(t *testing.T) {
	tp := NewTestPlan(WithOpenField(), WithVerbose(true))
	tp.RunTicks(10)

	if got := tp.Reporter.Placements(); len(got) != 0 {
		t.Errorf("open field produced %d placements, want none", len(got))
	}
	if tp.Planner.State() != StateAwaitingStart {
		t.Errorf("state %s, want awaiting-start", tp.Planner.State())
	}
	if tp.Planner.Sealed() {
		t.Error("open field reads as sealed")
	}
	if tp.Planner.WallPath() != nil {
		t.Error("open field produced a wall path")
	}
	if _, have := tp.Planner.StartTile(); have {
		t.Error("open field produced a start tile")
	}
}

func TestPlannerStartBlacklist(t *testing.T) {
	tp := NewTestPlan()
	tp.RunTicks(1)
	start, ok := tp.Planner.StartTile()
	if !ok {
		t.Fatal("no start tile in the pocket scenario")
	}

	redo := NewTestPlan(WithStartBlacklist(start))
	redo.RunTicks(1)
	other, ok := redo.Planner.StartTile()
	if !ok {
		t.Fatal("blacklisting one tile exhausted the start search")
	}
	if other == start {
		t.Errorf("blacklisted start (%d,%d) was chosen again", start.X, start.Y)
	}
}

func TestPlannerManualApplyIsStable(t *testing.T) {
	tp := NewTestPlan(WithManualApply())
	tp.RunTicks(3)

	if n := len(tp.Grid.Structures()); n != 0 {
		t.Fatalf("manual apply placed %d structures on the grid", n)
	}
	placements := tp.Reporter.Placements()
	if len(placements) != 3 {
		t.Fatalf("got %d recommendations over 3 ticks, want one per tick", len(placements))
	}
	for _, pb := range placements[1:] {
		if pb != placements[0] {
			t.Errorf("recommendation drifted on an unchanged grid: %+v vs %+v", pb, placements[0])
		}
	}
}

// Non-blocking candidates are structurally useless by classification:
// building on them must never flip the wall between unsealed and sealed.
func TestPlannerNonBlockingPlacementKeepsSealedStatus(t *testing.T) {
	tp := NewTestPlan(WithManualApply())
	tp.RunTicks(1)

	for i := 0; i < 12; i++ {
		cands := tp.Planner.Candidates()
		if cands == nil || len(cands.NonBlocking) == 0 {
			t.Fatalf("no non-blocking candidates left after %d placements", i)
		}
		cand := cands.NonBlocking[0]
		sealedBefore := tp.Planner.Sealed()
		tp.Grid.AddStructure(StructureBarrier, cand.Location)
		tp.RunTicks(1)
		if got := tp.Planner.Sealed(); got != sealedBefore {
			t.Fatalf("placement %d on non-blocking candidate (%d,%d) changed sealed from %v to %v",
				i+1, cand.Location.X, cand.Location.Y, sealedBefore, got)
		}
	}
	if tp.Planner.Sealed() {
		t.Error("non-blocking placements alone sealed the wall")
	}

	// Same invariant once the wall is already sealed.
	done := NewTestPlan()
	if n := done.RunUntil(func(tp *TestPlan) bool { return tp.Planner.Sealed() }, 50); n < 0 {
		t.Fatalf("pocket never sealed\n%s", done.PlanLog.Format())
	}
	done.RunTicks(2)
	cands := done.Planner.Candidates()
	if cands == nil || len(cands.NonBlocking) == 0 {
		t.Fatal("sealed session has no non-blocking candidates")
	}
	done.Grid.AddStructure(StructureBarrier, cands.NonBlocking[0].Location)
	done.RunTicks(1)
	if !done.Planner.Sealed() {
		t.Error("a non-blocking placement unsealed a sealed wall")
	}
}

func TestPlannerRebuildTracking(t *testing.T) {
	tp := NewTestPlan(WithManualApply())
	tp.RunTicks(1)
	first := tp.Planner.Candidates()
	if first == nil {
		t.Fatal("no candidates after first tick")
	}

	// Unchanged grid: cached classification is reused.
	tp.RunTicks(1)
	if tp.Planner.Candidates() != first {
		t.Error("candidates rebuilt although the grid generation is unchanged")
	}

	// Any structure change invalidates, even one far from the wall.
	tp.Grid.AddStructure(StructureBarrier, TileCoordinate{55, 55})
	tp.RunTicks(1)
	second := tp.Planner.Candidates()
	if second == first {
		t.Error("candidates not rebuilt after a structure change")
	}

	// Explicit invalidation forces a rebuild with no generation change.
	tp.Planner.Invalidate()
	tp.RunTicks(1)
	if tp.Planner.Candidates() == second {
		t.Error("candidates not rebuilt after Invalidate")
	}
}

func TestPlannerReportCapturesSession(t *testing.T) {
	tp := NewTestPlan()
	tp.RunUntil(func(tp *TestPlan) bool { return tp.Planner.Sealed() }, 50)
	tp.RunTicks(2)

	report := tp.Report()
	for _, want := range []string{"Wall planning report", "placements:", "stages:", "turret"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if tp.Reporter.SealedAtTick() < 0 {
		t.Error("reporter never observed the sealed state")
	}
}
