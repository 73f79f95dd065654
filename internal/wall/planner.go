package wall

import (
	"fmt"
	"math"
)

// PlannerState is the wall planner's lifecycle phase.
type PlannerState uint8

const (
	// StateAwaitingStart: no usable perimeter walk yet; retried every tick.
	StateAwaitingStart PlannerState = iota
	// StateBuildingWall: perimeter known, not yet sealed.
	StateBuildingWall
	// StateSealed: the perimeter walk is below the sealing threshold.
	StateSealed
)

func (s PlannerState) String() string {
	switch s {
	case StateBuildingWall:
		return "building-wall"
	case StateSealed:
		return "sealed"
	default:
		return "awaiting-start"
	}
}

// PendingBuilding is the planner's single recommendation for one tick. It is
// consumed immediately by the worker-dispatch side and never persisted here.
type PendingBuilding struct {
	Location TileCoordinate
	Kind     StructureKind
	// Final marks a placement that seals the wall, so the dispatching side
	// can make sure its worker ends up on the right side of it.
	Final bool
}

// PlannerConfig fixes a planning session's inputs.
type PlannerConfig struct {
	// Anchor is the point the wall is built to enclose.
	Anchor TileCoordinate
	// Reference biases placement tie-breaks, typically toward the expected
	// enemy approach.
	Reference TileCoordinate
	// WindowRadius bounds the candidate search; 0 means the default.
	WindowRadius int
	// StartBlacklist seeds tiles the start search must never use.
	StartBlacklist []TileCoordinate
}

// WallPlanner orchestrates encoding, classification, pathfinding and
// selection once per external simulation tick, emitting at most one
// PendingBuilding. Single-threaded: it owns all of its derived state and is
// only ever driven by one caller.
type WallPlanner struct {
	grid       *TerrainGrid
	classifier *Classifier
	cfg        PlannerConfig
	log        *PlanLog

	cache      genCache
	window     Window
	heights    map[int]bool
	candidates *CandidateSet
	baseGrid   *WeightGrid // obstructions only, anchor footprint reserved
	routeGrid  *WeightGrid // baseGrid plus candidate weights

	start      TileCoordinate
	haveStart  bool
	path       []TileCoordinate // candidate-weighted perimeter walk
	sealedLoop []TileCoordinate // base-grid walk, drives the sealed oracle
	blacklist  map[TileCoordinate]bool

	state PlannerState
	tick  int
}

// NewWallPlanner creates a planner for one anchor. log may be nil.
func NewWallPlanner(grid *TerrainGrid, classifier *Classifier, cfg PlannerConfig, log *PlanLog) *WallPlanner {
	if cfg.WindowRadius <= 0 {
		cfg.WindowRadius = windowRadius
	}
	p := &WallPlanner{
		grid:       grid,
		classifier: classifier,
		cfg:        cfg,
		log:        log,
		blacklist:  make(map[TileCoordinate]bool),
	}
	for _, tc := range cfg.StartBlacklist {
		p.blacklist[tc] = true
	}
	return p
}

// Invalidate marks all cached grids and paths stale. Collaborators call this
// when they change the world in ways the structure registry cannot see.
func (p *WallPlanner) Invalidate() { p.cache.Invalidate() }

// State returns the planner's current phase.
func (p *WallPlanner) State() PlannerState { return p.state }

// Anchor returns the point the wall encloses.
func (p *WallPlanner) Anchor() TileCoordinate { return p.cfg.Anchor }

// Window returns the candidate search bounds from the last rebuild.
func (p *WallPlanner) Window() Window { return p.window }

// Candidates returns the last classified candidate set, or nil.
func (p *WallPlanner) Candidates() *CandidateSet { return p.candidates }

// StartTile returns the current wall walk start, if one is held.
func (p *WallPlanner) StartTile() (TileCoordinate, bool) { return p.start, p.haveStart }

// WallPath returns the current perimeter walk for visualization or secondary
// defence logic. Callers must not mutate it.
func (p *WallPlanner) WallPath() []TileCoordinate { return p.path }

// Sealed reports whether the wall around the anchor is complete. Only the
// base-grid walk counts: the candidate-weighted walk routes through tiles
// that hold no structure yet.
func (p *WallPlanner) Sealed() bool {
	return WallSealed(p.sealedLoop)
}

// Tick runs one planning pass and returns at most one recommendation.
// Degrades to no recommendation rather than failing: empty candidate sets and
// pathfinding misses are transient states, retried next tick.
func (p *WallPlanner) Tick() (PendingBuilding, bool) {
	p.tick++
	if p.cache.Stale(p.grid.Generation()) {
		p.rebuild()
	}
	if p.path == nil {
		// Pathfinding retries every tick from cached grids until it lands.
		p.findPerimeter()
	}

	if p.path == nil {
		p.setState(StateAwaitingStart)
		return PendingBuilding{}, false
	}

	if p.Sealed() {
		p.setState(StateSealed)
		if p.grid.StructureAt(p.cfg.Anchor) == StructureTurret {
			// Terminal structure exists; nothing left to recommend.
			return PendingBuilding{}, false
		}
		pb := PendingBuilding{Location: p.cfg.Anchor, Kind: StructureTurret}
		p.log.Add(p.tick, "emit", "building", fmt.Sprintf("%s at (%d,%d)", pb.Kind, pb.Location.X, pb.Location.Y), 0)
		return pb, true
	}

	p.setState(StateBuildingWall)
	sel, ok := SelectPlacement(p.candidates, p.path, p.cfg.Reference, p.placementSeals)
	if !ok {
		return PendingBuilding{}, false
	}
	pb := PendingBuilding{Location: sel.Candidate.Location, Kind: StructureBarrier, Final: sel.Final}
	p.log.Add(p.tick, "emit", "building",
		fmt.Sprintf("%s at (%d,%d) coverage=%d final=%v", pb.Kind, pb.Location.X, pb.Location.Y, sel.Coverage, sel.Final), float64(sel.Coverage))
	return pb, true
}

// rebuild regenerates the obstruction grids and candidate classification from
// the current terrain snapshot, then invalidates the cached walk.
func (p *WallPlanner) rebuild() {
	gen := p.grid.Generation()
	p.window = WindowAround(p.grid, p.cfg.Anchor, p.cfg.WindowRadius)
	p.heights = p.grid.RegionHeights(p.cfg.Anchor, p.cfg.WindowRadius)

	scores := EncodeWindow(p.grid, p.cfg.Anchor, p.window, p.heights)
	p.candidates = p.classifier.ClassifyWindow(scores)

	p.baseGrid = NewWallGrid(p.grid)
	p.baseGrid.StampFootprint(p.cfg.Anchor, math.Inf(1))

	p.routeGrid = p.baseGrid.Clone()
	for _, c := range p.candidates.Blocking {
		p.routeGrid.StampFootprint(c.Location, blockingWeight)
	}
	for _, c := range p.candidates.NonBlocking {
		p.routeGrid.StampFootprint(c.Location, nonBlockingWeight)
	}

	p.path = nil
	p.sealedLoop = nil
	p.findPerimeter()
	p.cache.MarkFresh(gen)

	p.log.AddVerbose(p.tick, "grid", "rebuild",
		fmt.Sprintf("gen=%d blocking=%d non-blocking=%d", gen, len(p.candidates.Blocking), len(p.candidates.NonBlocking)),
		float64(p.candidates.Len()))
}

// findPerimeter locates a start tile if needed and recomputes both walks. A
// start that yields no loop is blacklisted so the next attempt tries a
// different tile instead of spinning on the same dead one.
func (p *WallPlanner) findPerimeter() {
	if p.baseGrid == nil {
		return
	}
	if !p.haveStart {
		start, ok := FindStartTile(p.baseGrid, p.cfg.Anchor, p.blacklist)
		if !ok {
			p.log.AddVerbose(p.tick, "path", "no_start", "no usable start tile in range", 0)
			return
		}
		p.start = start
		p.haveStart = true
		p.log.Add(p.tick, "path", "start", fmt.Sprintf("(%d,%d)", start.X, start.Y), 0)
	}

	loop := ClockwiseLoop(p.routeGrid, p.start, p.cfg.Anchor)
	if loop == nil {
		p.blacklist[p.start] = true
		p.haveStart = false
		p.log.Add(p.tick, "path", "blacklist", fmt.Sprintf("(%d,%d) yielded no loop", p.start.X, p.start.Y), 0)
		return
	}
	p.path = loop
	p.sealedLoop = ClockwiseLoop(p.baseGrid, p.start, p.cfg.Anchor)
	p.log.Add(p.tick, "path", "found", fmt.Sprintf("len=%d sealed_len=%d", len(loop), len(p.sealedLoop)), float64(len(loop)))
}

// placementSeals simulates placing a barrier at loc: its footprint becomes
// wall material on the base grid, and the completion oracle runs against the
// result.
func (p *WallPlanner) placementSeals(loc TileCoordinate) bool {
	if p.baseGrid == nil || !p.haveStart {
		return false
	}
	sim := p.baseGrid.Clone()
	sim.StampFootprint(loc, terrainWeight)
	return WallSealed(ClockwiseLoop(sim, p.start, p.cfg.Anchor))
}

func (p *WallPlanner) setState(s PlannerState) {
	if p.state == s {
		return
	}
	p.log.Add(p.tick, "state", "change", fmt.Sprintf("%s → %s", p.state, s), 0)
	p.state = s
}
