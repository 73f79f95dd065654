package wall

// TileCoordinate addresses one tile of the terrain grid.
type TileCoordinate struct {
	X int
	Y int
}

// StructureKind identifies a planner-visible structure type.
type StructureKind uint8

const (
	StructureNone    StructureKind = iota
	StructureBarrier               // 2x2 wall component
	StructureTurret                // 2x2 defensive structure placed on the anchor
)

func (k StructureKind) String() string {
	switch k {
	case StructureBarrier:
		return "barrier"
	case StructureTurret:
		return "turret"
	default:
		return "none"
	}
}

// Structure is one placed building tracked by the grid.
type Structure struct {
	Kind     StructureKind
	Location TileCoordinate // footprint occupies {X-1,X} x {Y-1,Y}
}

// TerrainGrid is the read-only-per-tick view of the battlefield the planner
// works from: per-tile passability, buildability and terrain height, plus the
// set of placed structures. Row-major arrays indexed Y*Cols+X.
type TerrainGrid struct {
	Cols int
	Rows int

	passable   []bool
	buildable  []bool
	height     []int
	structTile []StructureKind // StructureNone where no footprint overlaps

	structures []Structure
	generation uint64
}

// NewTerrainGrid creates a grid that is fully passable and buildable at
// height 0. Scenario generators carve cliffs and plateaus into it.
func NewTerrainGrid(cols, rows int) *TerrainGrid {
	n := cols * rows
	g := &TerrainGrid{
		Cols:       cols,
		Rows:       rows,
		passable:   make([]bool, n),
		buildable:  make([]bool, n),
		height:     make([]int, n),
		structTile: make([]StructureKind, n),
	}
	for i := 0; i < n; i++ {
		g.passable[i] = true
		g.buildable[i] = true
	}
	return g
}

func (g *TerrainGrid) inBounds(x, y int) bool {
	return x >= 0 && x < g.Cols && y >= 0 && y < g.Rows
}

// InBounds reports whether (x, y) addresses a tile on the grid.
func (g *TerrainGrid) InBounds(x, y int) bool { return g.inBounds(x, y) }

// Generation increments whenever the structure set changes. Cached planner
// state keyed to an older generation is stale.
func (g *TerrainGrid) Generation() uint64 { return g.generation }

// Passable reports whether ground units can traverse the bare terrain at
// (x, y). Out-of-bounds tiles are impassable.
func (g *TerrainGrid) Passable(x, y int) bool {
	if !g.inBounds(x, y) {
		return false
	}
	return g.passable[y*g.Cols+x]
}

// Traversable reports whether ground units can currently pass (x, y):
// passable terrain with no structure footprint on it.
func (g *TerrainGrid) Traversable(x, y int) bool {
	if !g.inBounds(x, y) {
		return false
	}
	i := y*g.Cols + x
	return g.passable[i] && g.structTile[i] == StructureNone
}

// Buildable reports whether a structure footprint tile may occupy (x, y).
func (g *TerrainGrid) Buildable(x, y int) bool {
	if !g.inBounds(x, y) {
		return false
	}
	i := y*g.Cols + x
	return g.buildable[i] && g.structTile[i] == StructureNone
}

// Height returns the terrain height at (x, y), or 0 out of bounds.
func (g *TerrainGrid) Height(x, y int) int {
	if !g.inBounds(x, y) {
		return 0
	}
	return g.height[y*g.Cols+x]
}

// StructureTileAt returns the structure kind whose footprint covers (x, y).
func (g *TerrainGrid) StructureTileAt(x, y int) StructureKind {
	if !g.inBounds(x, y) {
		return StructureNone
	}
	return g.structTile[y*g.Cols+x]
}

// SetPassable sets bare-terrain passability for a tile.
func (g *TerrainGrid) SetPassable(x, y int, v bool) {
	if !g.inBounds(x, y) {
		return
	}
	g.passable[y*g.Cols+x] = v
}

// SetBuildable sets buildability for a tile.
func (g *TerrainGrid) SetBuildable(x, y int, v bool) {
	if !g.inBounds(x, y) {
		return
	}
	g.buildable[y*g.Cols+x] = v
}

// SetHeight sets the terrain height for a tile.
func (g *TerrainGrid) SetHeight(x, y int, h int) {
	if !g.inBounds(x, y) {
		return
	}
	g.height[y*g.Cols+x] = h
}

// AddStructure registers a placed 2x2 structure and stamps its footprint.
// Bumps the generation so cached planner state goes stale.
func (g *TerrainGrid) AddStructure(kind StructureKind, loc TileCoordinate) {
	g.structures = append(g.structures, Structure{Kind: kind, Location: loc})
	for _, off := range footprintOffsets {
		x, y := loc.X+off[0], loc.Y+off[1]
		if g.inBounds(x, y) {
			g.structTile[y*g.Cols+x] = kind
		}
	}
	g.generation++
}

// RemoveStructure removes the structure anchored at loc, if any.
func (g *TerrainGrid) RemoveStructure(loc TileCoordinate) {
	for i, s := range g.structures {
		if s.Location != loc {
			continue
		}
		g.structures = append(g.structures[:i], g.structures[i+1:]...)
		for _, off := range footprintOffsets {
			x, y := loc.X+off[0], loc.Y+off[1]
			if g.inBounds(x, y) {
				g.structTile[y*g.Cols+x] = StructureNone
			}
		}
		g.generation++
		return
	}
}

// Structures returns the placed structures. Callers must not mutate it.
func (g *TerrainGrid) Structures() []Structure { return g.structures }

// StructureAt returns the structure anchored exactly at loc.
func (g *TerrainGrid) StructureAt(loc TileCoordinate) StructureKind {
	for _, s := range g.structures {
		if s.Location == loc {
			return s.Kind
		}
	}
	return StructureNone
}

// RegionHeights collects the terrain heights of the anchor's region: a
// bounded flood over passable tiles starting from the anchor. Candidate
// placements must sit on one of these heights, which keeps the wall on the
// anchor's own plateau.
func (g *TerrainGrid) RegionHeights(anchor TileCoordinate, radius int) map[int]bool {
	heights := make(map[int]bool)
	if !g.Passable(anchor.X, anchor.Y) {
		// Degenerate anchor: fall back to its own height so the candidate
		// window is not empty.
		heights[g.Height(anchor.X, anchor.Y)] = true
		return heights
	}
	type node struct{ x, y int }
	seen := map[node]bool{{anchor.X, anchor.Y}: true}
	queue := []node{{anchor.X, anchor.Y}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		heights[g.Height(n.x, n.y)] = true
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := n.x+d[0], n.y+d[1]
			if abs(nx-anchor.X) > radius || abs(ny-anchor.Y) > radius {
				continue
			}
			nn := node{nx, ny}
			if seen[nn] || !g.Passable(nx, ny) {
				continue
			}
			seen[nn] = true
			queue = append(queue, nn)
		}
	}
	return heights
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
