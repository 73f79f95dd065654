package wall

import "math/rand"

// pocketConfig holds tuneable parameters for pocket scenario generation.
type pocketConfig struct {
	HalfExtent    int // inner Chebyshev radius of the cliff ring
	BandThickness int // cliff band thickness in tiles
	GapWidth      int // open gap height on the east side
	MesaCount     int // raised off-plateau patches scattered outside
	RubbleCount   int // small obstruction clusters scattered outside
}

// GapWidth stays even: structure footprints are 2x2, so an odd gap leaves a
// row no legal footprint can cover.
var defaultPocketConfig = pocketConfig{
	HalfExtent:    4,
	BandThickness: 2,
	GapWidth:      2,
	MesaCount:     2,
	RubbleCount:   4,
}

// GeneratePocketTerrain builds the standard walling scenario: the anchor sits
// inside a cliff pocket that is closed on three sides and open toward the
// east, where the wall has to go. Scatter outside the pocket is seeded so
// runs are reproducible.
func GeneratePocketTerrain(cols, rows int, anchor TileCoordinate, seed int64) *TerrainGrid {
	g := NewTerrainGrid(cols, rows)
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- scenario generation
	cfg := defaultPocketConfig

	carvePocket(g, anchor, cfg)
	for i := 0; i < cfg.MesaCount; i++ {
		placeMesa(g, rng, anchor, cfg)
	}
	for i := 0; i < cfg.RubbleCount; i++ {
		placeRubbleCluster(g, rng, anchor, cfg)
	}
	return g
}

// GenerateOpenTerrain builds a featureless all-open grid: no obstruction near
// the anchor, so a planner on it never finds a wall start.
func GenerateOpenTerrain(cols, rows int) *TerrainGrid {
	return NewTerrainGrid(cols, rows)
}

// carveCliff marks one tile as impassable, unbuildable cliff.
func carveCliff(g *TerrainGrid, x, y int) {
	g.SetPassable(x, y, false)
	g.SetBuildable(x, y, false)
}

// carvePocket cuts the cliff ring around the anchor, leaving the east gap.
func carvePocket(g *TerrainGrid, anchor TileCoordinate, cfg pocketConfig) {
	inner := cfg.HalfExtent
	outer := cfg.HalfExtent + cfg.BandThickness - 1
	gapHalf := cfg.GapWidth / 2
	for dy := -outer; dy <= outer; dy++ {
		for dx := -outer; dx <= outer; dx++ {
			cheb := max(abs(dx), abs(dy))
			if cheb < inner || cheb > outer {
				continue
			}
			// The gap: skip the east band around the anchor's row.
			if dx >= inner && dy >= -gapHalf && dy < gapHalf {
				continue
			}
			carveCliff(g, anchor.X+dx, anchor.Y+dy)
		}
	}
}

// placeMesa places a small raised patch outside the pocket. Mesas are
// passable but sit off the anchor's plateau height, so the height gate keeps
// candidates off them.
func placeMesa(g *TerrainGrid, rng *rand.Rand, anchor TileCoordinate, cfg pocketConfig) {
	reach := cfg.HalfExtent + cfg.BandThickness
	x := anchor.X + reach + 2 + rng.Intn(max(1, g.Cols-anchor.X-reach-6))
	y := 2 + rng.Intn(max(1, g.Rows-6))
	w := 2 + rng.Intn(3)
	h := 2 + rng.Intn(3)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			g.SetHeight(x+i, y+j, 2)
		}
	}
}

// placeRubbleCluster places a short unbuildable-but-passable obstruction run
// outside the pocket, the way debris fields break up open ground.
func placeRubbleCluster(g *TerrainGrid, rng *rand.Rand, anchor TileCoordinate, cfg pocketConfig) {
	reach := cfg.HalfExtent + cfg.BandThickness
	x := anchor.X + reach + 3 + rng.Intn(max(1, g.Cols-anchor.X-reach-8))
	y := 2 + rng.Intn(max(1, g.Rows-6))
	horizontal := rng.Intn(2) == 0
	length := 2 + rng.Intn(3)
	for i := 0; i < length; i++ {
		cx, cy := x, y
		if horizontal {
			cx = x + i
		} else {
			cy = y + i
		}
		if !g.InBounds(cx, cy) {
			break
		}
		g.SetBuildable(cx, cy, false)
	}
}
