package wall

import (
	"fmt"
	"strings"
)

// --- Snapshot types ---

// PlanSnapshot captures the planner's state at one tick.
type PlanSnapshot struct {
	Tick        int
	State       PlannerState
	Blocking    int
	NonBlocking int
	PathLen     int
	HaveStart   bool
	Start       TileCoordinate
	Emitted     bool
	Building    PendingBuilding
	Structures  int
	Sealed      bool
}

// PlanReporter collects per-tick snapshots of one planning session and turns
// them into a human-readable report for headless runs and the viewer's
// clipboard export.
type PlanReporter struct {
	history []PlanSnapshot
}

// NewPlanReporter creates an empty reporter.
func NewPlanReporter() *PlanReporter {
	return &PlanReporter{}
}

// Collect records one snapshot after a planner tick. emitted and pb come from
// the Tick return values.
func (r *PlanReporter) Collect(tick int, p *WallPlanner, g *TerrainGrid, pb PendingBuilding, emitted bool) {
	snap := PlanSnapshot{
		Tick:       tick,
		State:      p.State(),
		PathLen:    len(p.WallPath()),
		Emitted:    emitted,
		Building:   pb,
		Structures: len(g.Structures()),
		Sealed:     p.Sealed(),
	}
	if cands := p.Candidates(); cands != nil {
		snap.Blocking = len(cands.Blocking)
		snap.NonBlocking = len(cands.NonBlocking)
	}
	snap.Start, snap.HaveStart = p.StartTile()
	r.history = append(r.history, snap)
}

// Latest returns the most recent snapshot, or nil if none collected yet.
func (r *PlanReporter) Latest() *PlanSnapshot {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected snapshots.
func (r *PlanReporter) History() []PlanSnapshot {
	return r.history
}

// SealedAtTick returns the first tick at which the session reported sealed,
// or -1 when it never did.
func (r *PlanReporter) SealedAtTick() int {
	for _, s := range r.history {
		if s.Sealed {
			return s.Tick
		}
	}
	return -1
}

// Placements returns the buildings emitted over the session in order.
func (r *PlanReporter) Placements() []PendingBuilding {
	var out []PendingBuilding
	for _, s := range r.history {
		if s.Emitted {
			out = append(out, s.Building)
		}
	}
	return out
}

// reportStage groups consecutive snapshots with identical planner state and
// candidate counts, so a long run compresses to its turning points.
type reportStage struct {
	first PlanSnapshot
	last  PlanSnapshot
	count int
}

func buildStages(snaps []PlanSnapshot) []reportStage {
	if len(snaps) == 0 {
		return nil
	}
	keyOf := func(s PlanSnapshot) string {
		return fmt.Sprintf("st=%d|b=%d|nb=%d|path=%t|sealed=%t",
			s.State, s.Blocking, s.NonBlocking, s.PathLen > 0, s.Sealed)
	}
	stages := make([]reportStage, 0, 8)
	start := 0
	curKey := keyOf(snaps[0])
	for i := 1; i < len(snaps); i++ {
		if k := keyOf(snaps[i]); k != curKey {
			stages = append(stages, reportStage{first: snaps[start], last: snaps[i-1], count: i - start})
			start = i
			curKey = k
		}
	}
	stages = append(stages, reportStage{first: snaps[start], last: snaps[len(snaps)-1], count: len(snaps) - start})
	return stages
}

// Format renders the full session report.
func (r *PlanReporter) Format(seed int64, anchor TileCoordinate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Wall planning report ---\n")
	fmt.Fprintf(&sb, "seed=%d anchor=(%d,%d) ticks=%d\n", seed, anchor.X, anchor.Y, len(r.history))

	if len(r.history) == 0 {
		sb.WriteString("(no snapshots recorded yet)\n")
		return sb.String()
	}

	last := r.history[len(r.history)-1]
	sealedAt := r.SealedAtTick()
	placements := r.Placements()
	fmt.Fprintf(&sb, "final_state=%s sealed_at=%d placements=%d structures=%d\n\n",
		last.State, sealedAt, len(placements), last.Structures)

	sb.WriteString("placements:\n")
	if len(placements) == 0 {
		sb.WriteString("  (none)\n")
	}
	for i, pb := range placements {
		tag := ""
		if pb.Final {
			tag = " [FINAL]"
		}
		fmt.Fprintf(&sb, "  %02d) %s at (%d,%d)%s\n", i+1, pb.Kind, pb.Location.X, pb.Location.Y, tag)
	}

	sb.WriteString("\nstages:\n")
	for i, st := range buildStages(r.history) {
		fmt.Fprintf(&sb, "  %02d) T=%d..%d (%dt) state:%s cand:%d+%d path:%d->%d sealed:%t\n",
			i+1, st.first.Tick, st.last.Tick, st.count,
			st.first.State, st.first.Blocking, st.first.NonBlocking,
			st.first.PathLen, st.last.PathLen, st.last.Sealed)
	}
	return sb.String()
}
