package wall

import "math"

// Wall path weights. The wall path is routed through obstructions, not around
// them: existing obstacles are cheapest, candidate building sites cost more,
// and open ground is impassable for the wall.
const (
	terrainWeight     = 1.0   // existing obstruction (cliff, structure)
	blockingWeight    = 100.0 // tile coverable by a blocking candidate
	nonBlockingWeight = 200.0 // tile coverable by a non-blocking candidate
)

// WeightGrid is a 2D grid of wall-path weights. +Inf means the wall cannot
// route through the tile.
type WeightGrid struct {
	Cols int
	Rows int
	w    []float64
}

// NewWallGrid builds the inverted pathing grid used for wall routing: every
// tile ground units cannot currently traverse gets terrainWeight, every
// traversable tile is +Inf. The wall is a ring of obstructions, so the path
// for the wall itself runs along obstructed tiles.
func NewWallGrid(g *TerrainGrid) *WeightGrid {
	wg := &WeightGrid{
		Cols: g.Cols,
		Rows: g.Rows,
		w:    make([]float64, g.Cols*g.Rows),
	}
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if g.Traversable(x, y) {
				wg.w[y*g.Cols+x] = math.Inf(1)
			} else {
				wg.w[y*g.Cols+x] = terrainWeight
			}
		}
	}
	return wg
}

// At returns the weight at (x, y). Out-of-bounds tiles are +Inf.
func (wg *WeightGrid) At(x, y int) float64 {
	if x < 0 || x >= wg.Cols || y < 0 || y >= wg.Rows {
		return math.Inf(1)
	}
	return wg.w[y*wg.Cols+x]
}

// Set writes the weight at (x, y), ignoring out-of-bounds coordinates.
func (wg *WeightGrid) Set(x, y int, v float64) {
	if x < 0 || x >= wg.Cols || y < 0 || y >= wg.Rows {
		return
	}
	wg.w[y*wg.Cols+x] = v
}

// Clone returns an independent copy, used for what-if placement simulation.
func (wg *WeightGrid) Clone() *WeightGrid {
	out := &WeightGrid{Cols: wg.Cols, Rows: wg.Rows, w: make([]float64, len(wg.w))}
	copy(out.w, wg.w)
	return out
}

// StampFootprint writes a weight over the 2x2 footprint anchored at loc.
func (wg *WeightGrid) StampFootprint(loc TileCoordinate, v float64) {
	for _, off := range footprintOffsets {
		wg.Set(loc.X+off[0], loc.Y+off[1], v)
	}
}

// genCache tracks whether derived planner state matches the terrain grid's
// structure generation. Collaborators call Invalidate when they change the
// world in ways the generation counter cannot see.
type genCache struct {
	built uint64
	valid bool
}

// Stale reports whether the cached state needs rebuilding for generation gen.
func (c *genCache) Stale(gen uint64) bool { return !c.valid || c.built != gen }

// MarkFresh records that cached state now reflects generation gen.
func (c *genCache) MarkFresh(gen uint64) { c.built = gen; c.valid = true }

// Invalidate forces a rebuild on the next tick.
func (c *genCache) Invalidate() { c.valid = false }
