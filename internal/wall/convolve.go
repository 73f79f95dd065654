package wall

// Window is an inclusive tile-coordinate rectangle bounding the candidate
// search around the anchor.
type Window struct {
	MinX, MinY int
	MaxX, MaxY int
}

// windowRadius bounds the candidate search around the anchor, matching the
// scale the exclusion tables and sealing threshold were tuned at.
const windowRadius = 20

// WindowAround returns the search window centred on the anchor, clamped to
// the grid.
func WindowAround(g *TerrainGrid, anchor TileCoordinate, radius int) Window {
	return Window{
		MinX: max(0, anchor.X-radius),
		MinY: max(0, anchor.Y-radius),
		MaxX: min(g.Cols-1, anchor.X+radius),
		MaxY: min(g.Rows-1, anchor.Y+radius),
	}
}

// Contains reports whether (x, y) lies inside the window.
func (w Window) Contains(x, y int) bool {
	return x >= w.MinX && x <= w.MaxX && y >= w.MinY && y <= w.MaxY
}

func (w Window) width() int  { return w.MaxX - w.MinX + 1 }
func (w Window) height() int { return w.MaxY - w.MinY + 1 }

// ScoreMap holds per-candidate neighbourhood scores over a window as a
// fixed-size array with explicit bounds checks. Candidates whose 4x4
// neighbourhood does not fit inside the window are never scored.
type ScoreMap struct {
	win    Window
	scores []int
	scored []bool
}

func newScoreMap(win Window) *ScoreMap {
	n := win.width() * win.height()
	return &ScoreMap{win: win, scores: make([]int, n), scored: make([]bool, n)}
}

// At returns the score for the candidate at (x, y) and whether it was scored.
func (m *ScoreMap) At(x, y int) (int, bool) {
	if !m.win.Contains(x, y) {
		return 0, false
	}
	i := (y-m.win.MinY)*m.win.width() + (x - m.win.MinX)
	if !m.scored[i] {
		return 0, false
	}
	return m.scores[i], true
}

func (m *ScoreMap) set(x, y, score int) {
	i := (y-m.win.MinY)*m.win.width() + (x - m.win.MinX)
	m.scores[i] = score
	m.scored[i] = true
}

// Window returns the bounds the map was scored over.
func (m *ScoreMap) Window() Window { return m.win }

// obstructedForWalling reports whether (x, y) counts as an obstruction in the
// convolution input: anything a wall segment could not be placed on. The
// anchor's own footprint is reserved and always counts as obstructed, so
// candidates overlapping it score past the sentinel.
func obstructedForWalling(g *TerrainGrid, anchor TileCoordinate, heights map[int]bool, x, y int) bool {
	for _, off := range footprintOffsets {
		if x == anchor.X+off[0] && y == anchor.Y+off[1] {
			return true
		}
	}
	if !g.Traversable(x, y) || !g.Buildable(x, y) {
		return true
	}
	return !heights[g.Height(x, y)]
}

// EncodeWindow convolves the obstruction indicator against the desirability
// kernel for every candidate placement point whose 4x4 neighbourhood fits
// inside win. Pure function over the grid snapshot: scores >= sentinelWeight
// mean an obstructed footprint, anything below is the exact ring bitmask.
func EncodeWindow(g *TerrainGrid, anchor TileCoordinate, win Window, heights map[int]bool) *ScoreMap {
	m := newScoreMap(win)
	// A candidate at P reads tiles {P-2 .. P+1} in both axes; keep the whole
	// neighbourhood inside the window so partial reads never produce a score.
	for y := win.MinY + 2; y <= win.MaxY-1; y++ {
		for x := win.MinX + 2; x <= win.MaxX-1; x++ {
			score := 0
			for dy := -2; dy <= 1; dy++ {
				for dx := -2; dx <= 1; dx++ {
					if obstructedForWalling(g, anchor, heights, x+dx, y+dy) {
						score += desirabilityKernel[dy+2][dx+2]
					}
				}
			}
			m.set(x, y, score)
		}
	}
	return m
}
