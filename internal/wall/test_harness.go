package wall

import "fmt"

// TestPlan is a headless planning harness used exclusively by tests and the
// headless reporter. It owns a terrain grid, a classifier and one planner,
// and mirrors the viewer's update loop: tick the planner, apply whatever it
// recommends, repeat.
type TestPlan struct {
	Grid       *TerrainGrid
	Classifier *Classifier
	Planner    *WallPlanner
	PlanLog    *PlanLog
	Reporter   *PlanReporter

	Seed      int64
	Anchor    TileCoordinate
	Reference TileCoordinate

	cols, rows int
	verbose    bool
	openField  bool
	radius     int
	blacklist  []TileCoordinate
	autoApply  bool
	tick       int
}

// planOptionKind controls the pass in which an option is applied.
type planOptionKind int

const (
	planOptInfra   planOptionKind = iota // grid size, seed, anchor, verbose; applied first
	planOptTerrain                       // terrain edits, applied after the grid is generated
	planOptConfig                        // planner config, applied before the planner is built
)

// PlanOption is a builder function applied to a TestPlan during construction.
type PlanOption struct {
	kind planOptionKind
	fn   func(*TestPlan)
}

// WithGridSize sets the terrain dimensions in tiles.
func WithGridSize(cols, rows int) PlanOption {
	return PlanOption{planOptInfra, func(tp *TestPlan) {
		tp.cols = cols
		tp.rows = rows
	}}
}

// WithSeed sets the scenario seed for deterministic terrain.
func WithSeed(seed int64) PlanOption {
	return PlanOption{planOptInfra, func(tp *TestPlan) {
		tp.Seed = seed
	}}
}

// WithAnchor sets the point the wall is planned around.
func WithAnchor(x, y int) PlanOption {
	return PlanOption{planOptInfra, func(tp *TestPlan) {
		tp.Anchor = TileCoordinate{x, y}
	}}
}

// WithReference sets the tie-break bias point, typically the expected enemy
// approach.
func WithReference(x, y int) PlanOption {
	return PlanOption{planOptInfra, func(tp *TestPlan) {
		tp.Reference = TileCoordinate{x, y}
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) PlanOption {
	return PlanOption{planOptInfra, func(tp *TestPlan) {
		tp.verbose = v
	}}
}

// WithOpenField replaces the pocket scenario with featureless open ground.
func WithOpenField() PlanOption {
	return PlanOption{planOptInfra, func(tp *TestPlan) {
		tp.openField = true
	}}
}

// WithCliff carves an impassable, unbuildable rectangle into the terrain.
func WithCliff(x0, y0, x1, y1 int) PlanOption {
	return PlanOption{planOptTerrain, func(tp *TestPlan) {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				carveCliff(tp.Grid, x, y)
			}
		}
	}}
}

// WithHeightRect sets terrain height over a rectangle.
func WithHeightRect(x0, y0, x1, y1, h int) PlanOption {
	return PlanOption{planOptTerrain, func(tp *TestPlan) {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				tp.Grid.SetHeight(x, y, h)
			}
		}
	}}
}

// WithStructure pre-places a structure before planning starts.
func WithStructure(kind StructureKind, x, y int) PlanOption {
	return PlanOption{planOptTerrain, func(tp *TestPlan) {
		tp.Grid.AddStructure(kind, TileCoordinate{x, y})
	}}
}

// WithWindowRadius overrides the candidate window radius.
func WithWindowRadius(r int) PlanOption {
	return PlanOption{planOptConfig, func(tp *TestPlan) {
		tp.radius = r
	}}
}

// WithStartBlacklist seeds tiles the start search must never use.
func WithStartBlacklist(tiles ...TileCoordinate) PlanOption {
	return PlanOption{planOptConfig, func(tp *TestPlan) {
		tp.blacklist = append(tp.blacklist, tiles...)
	}}
}

// WithManualApply stops RunTicks from applying emitted buildings to the grid,
// so tests can inspect recommendations without the world changing.
func WithManualApply() PlanOption {
	return PlanOption{planOptConfig, func(tp *TestPlan) {
		tp.autoApply = false
	}}
}

// NewTestPlan constructs a TestPlan from the given options in three ordered
// passes:
//  1. Infrastructure (grid size, seed, anchor, verbose)
//  2. Generate terrain, then terrain edits
//  3. Planner config, then the planner itself
func NewTestPlan(opts ...PlanOption) *TestPlan {
	tp := &TestPlan{
		Seed:      1,
		cols:      64,
		rows:      64,
		Anchor:    TileCoordinate{24, 32},
		Reference: TileCoordinate{44, 32},
		autoApply: true,
	}
	for _, o := range opts {
		if o.kind == planOptInfra {
			o.fn(tp)
		}
	}

	if tp.openField {
		tp.Grid = GenerateOpenTerrain(tp.cols, tp.rows)
	} else {
		tp.Grid = GeneratePocketTerrain(tp.cols, tp.rows, tp.Anchor, tp.Seed)
	}
	for _, o := range opts {
		if o.kind == planOptTerrain {
			o.fn(tp)
		}
	}
	for _, o := range opts {
		if o.kind == planOptConfig {
			o.fn(tp)
		}
	}

	cl, err := NewClassifier()
	if err != nil {
		// The lookup table ships with the binary; failing to load it is the
		// one unrecoverable condition.
		panic(fmt.Sprintf("wall: classifier init: %v", err))
	}
	tp.Classifier = cl
	tp.PlanLog = NewPlanLog(tp.verbose)
	tp.Reporter = NewPlanReporter()
	tp.Planner = NewWallPlanner(tp.Grid, cl, PlannerConfig{
		Anchor:         tp.Anchor,
		Reference:      tp.Reference,
		WindowRadius:   tp.radius,
		StartBlacklist: tp.blacklist,
	}, tp.PlanLog)
	return tp
}

// RunTicks advances the session n ticks. Each tick the planner runs once and,
// unless manual apply is on, any emitted building is placed on the grid.
func (tp *TestPlan) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tp.runOneTick()
	}
}

// RunUntil advances the session up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (tp *TestPlan) RunUntil(predicate func(*TestPlan) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tp.runOneTick()
		if predicate(tp) {
			return tp.tick
		}
	}
	return -1
}

func (tp *TestPlan) runOneTick() {
	tp.tick++
	pb, ok := tp.Planner.Tick()
	if ok && tp.autoApply {
		tp.Grid.AddStructure(pb.Kind, pb.Location)
	}
	tp.Reporter.Collect(tp.tick, tp.Planner, tp.Grid, pb, ok)
}

// CurrentTick returns the harness tick counter.
func (tp *TestPlan) CurrentTick() int { return tp.tick }

// Report renders the session report.
func (tp *TestPlan) Report() string {
	return tp.Reporter.Format(tp.Seed, tp.Anchor)
}
