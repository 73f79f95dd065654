package wall

import (
	"container/heap"
	"math"
)

const (
	// startSearchRadius is the disk around the anchor scanned for a wall
	// start tile.
	startSearchRadius = 8

	// sealedLoopThreshold: a closed wall walk shorter than this means no open
	// area remains to route through, so the wall is sealed. Empirically tuned
	// to this grid resolution and a 2x2-footprint perimeter; an approximation
	// of true containment, kept as-is rather than generalized.
	sealedLoopThreshold = 40
)

// FindStartTile scans a disk around the anchor for the cheapest usable tile
// to anchor the wall walk on: an existing obstruction (weight 1), not
// blacklisted, nearest to the anchor. Ties break toward smaller Y then X so
// repeated searches on an unchanged grid agree.
func FindStartTile(wg *WeightGrid, anchor TileCoordinate, blacklist map[TileCoordinate]bool) (TileCoordinate, bool) {
	best := TileCoordinate{}
	bestDist := math.MaxInt
	found := false
	for dy := -startSearchRadius; dy <= startSearchRadius; dy++ {
		for dx := -startSearchRadius; dx <= startSearchRadius; dx++ {
			if dx*dx+dy*dy > startSearchRadius*startSearchRadius {
				continue
			}
			x, y := anchor.X+dx, anchor.Y+dy
			w := wg.At(x, y)
			if math.IsInf(w, 1) || w > terrainWeight {
				continue
			}
			tc := TileCoordinate{x, y}
			if blacklist[tc] {
				continue
			}
			d := dx*dx + dy*dy
			if d < bestDist {
				best, bestDist, found = tc, d, true
			}
		}
	}
	return best, found
}

// --- weighted A* over a WeightGrid ---

type wallNode struct {
	x, y   int
	g, h   float64
	parent *wallNode
	index  int // heap index
}

type wallOpenList []*wallNode

func (ol wallOpenList) Len() int           { return len(ol) }
func (ol wallOpenList) Less(i, j int) bool { return (ol[i].g + ol[i].h) < (ol[j].g + ol[j].h) }
func (ol wallOpenList) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].index = i
	ol[j].index = j
}
func (ol *wallOpenList) Push(x interface{}) {
	n := x.(*wallNode)
	n.index = len(*ol)
	*ol = append(*ol, n)
}
func (ol *wallOpenList) Pop() interface{} {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

var wallDirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func octile(ax, ay, bx, by int) float64 {
	dx := math.Abs(float64(ax - bx))
	dy := math.Abs(float64(ay - by))
	return dx + dy + (math.Sqrt2-2)*math.Min(dx, dy)
}

// findWeightedPath runs A* over the wall grid from any source to any target,
// treating tiles in cut as impassable. Entering a tile costs its grid weight
// times the step length. Returns the tile sequence including source and
// target, or nil.
func findWeightedPath(wg *WeightGrid, sources, targets []TileCoordinate, cut map[TileCoordinate]bool) []TileCoordinate {
	if len(sources) == 0 || len(targets) == 0 {
		return nil
	}
	targetSet := make(map[TileCoordinate]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}
	// Heuristic target for octile estimates; any target keeps it admissible
	// only if it is the nearest, so take the min over all targets.
	hFor := func(x, y int) float64 {
		best := math.Inf(1)
		for _, t := range targets {
			if h := octile(x, y, t.X, t.Y); h < best {
				best = h
			}
		}
		return best
	}

	blocked := func(x, y int) bool {
		if cut[TileCoordinate{x, y}] {
			return true
		}
		return math.IsInf(wg.At(x, y), 1)
	}

	key := func(x, y int) int { return y*wg.Cols + x }
	best := make(map[int]*wallNode)
	closed := make(map[int]bool)
	ol := &wallOpenList{}
	heap.Init(ol)
	for _, s := range sources {
		if blocked(s.X, s.Y) {
			continue
		}
		n := &wallNode{x: s.X, y: s.Y, g: wg.At(s.X, s.Y), h: hFor(s.X, s.Y)}
		best[key(s.X, s.Y)] = n
		heap.Push(ol, n)
	}

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*wallNode)
		if targetSet[TileCoordinate{cur.x, cur.y}] {
			return buildWallPath(cur)
		}
		k := key(cur.x, cur.y)
		if closed[k] {
			continue
		}
		closed[k] = true

		for _, d := range wallDirs {
			nx, ny := cur.x+d[0], cur.y+d[1]
			if blocked(nx, ny) {
				continue
			}
			// No diagonal corner-cutting through blocked tiles.
			if d[0] != 0 && d[1] != 0 {
				if blocked(cur.x+d[0], cur.y) || blocked(cur.x, cur.y+d[1]) {
					continue
				}
			}
			nk := key(nx, ny)
			if closed[nk] {
				continue
			}
			step := 1.0
			if d[0] != 0 && d[1] != 0 {
				step = math.Sqrt2
			}
			g := cur.g + wg.At(nx, ny)*step
			if prev, ok := best[nk]; ok && g >= prev.g {
				continue
			}
			node := &wallNode{x: nx, y: ny, g: g, h: hFor(nx, ny), parent: cur}
			best[nk] = node
			heap.Push(ol, node)
		}
	}
	return nil
}

func buildWallPath(end *wallNode) []TileCoordinate {
	var path []TileCoordinate
	for n := end; n != nil; n = n.parent {
		path = append(path, TileCoordinate{n.x, n.y})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// rayCut rasterizes the half-line from the anchor through start out to the
// grid edge, excluding start itself. Blocking these tiles splits the ring
// around the anchor, so a path between the cut's two sides must wind all the
// way around the anchor.
func rayCut(wg *WeightGrid, anchor, start TileCoordinate) map[TileCoordinate]bool {
	cut := map[TileCoordinate]bool{anchor: true}
	dx := float64(start.X - anchor.X)
	dy := float64(start.Y - anchor.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return cut
	}
	dx, dy = dx/length, dy/length
	fx, fy := float64(anchor.X), float64(anchor.Y)
	for {
		fx += dx * 0.5
		fy += dy * 0.5
		x, y := int(math.Round(fx)), int(math.Round(fy))
		if x < 0 || x >= wg.Cols || y < 0 || y >= wg.Rows {
			return cut
		}
		tc := TileCoordinate{x, y}
		if tc != start {
			cut[tc] = true
		}
	}
}

// ClockwiseLoop computes a closed, direction-consistent walk over the wall
// grid that starts and ends at start while keeping the anchor enclosed.
// Returns nil when no such loop exists; that is a transient state, not an
// error.
func ClockwiseLoop(wg *WeightGrid, start, anchor TileCoordinate) []TileCoordinate {
	if math.IsInf(wg.At(start.X, start.Y), 1) {
		return nil
	}
	cut := rayCut(wg, anchor, start)
	// The loop may not pass back through its own start mid-walk.
	blockedStart := map[TileCoordinate]bool{start: true}
	for tc := range cut {
		blockedStart[tc] = true
	}

	// Split the start's neighbours by which side of the cut ray they sit on.
	dirX := float64(start.X - anchor.X)
	dirY := float64(start.Y - anchor.Y)
	var ahead, behind []TileCoordinate
	for _, d := range wallDirs {
		nx, ny := start.X+d[0], start.Y+d[1]
		tc := TileCoordinate{nx, ny}
		if blockedStart[tc] || math.IsInf(wg.At(nx, ny), 1) {
			continue
		}
		cross := dirX*float64(ny-anchor.Y) - dirY*float64(nx-anchor.X)
		switch {
		case cross > 0:
			ahead = append(ahead, tc)
		case cross < 0:
			behind = append(behind, tc)
		}
	}

	path := findWeightedPath(wg, ahead, behind, blockedStart)
	if path == nil {
		return nil
	}

	loop := make([]TileCoordinate, 0, len(path)+2)
	loop = append(loop, start)
	loop = append(loop, path...)
	loop = append(loop, start)
	if signedArea(loop) < 0 {
		reverseLoop(loop)
	}
	return loop
}

// signedArea is the shoelace sum of the loop. Positive means clockwise in
// screen orientation (Y grows downward).
func signedArea(loop []TileCoordinate) float64 {
	sum := 0.0
	for i := 0; i+1 < len(loop); i++ {
		a, b := loop[i], loop[i+1]
		sum += float64(a.X*b.Y - b.X*a.Y)
	}
	return sum
}

func reverseLoop(loop []TileCoordinate) {
	for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
		loop[i], loop[j] = loop[j], loop[i]
	}
}

// WallSealed is the completion oracle: a closed walk shorter than the sealing
// threshold means no open area remains around the anchor.
func WallSealed(loop []TileCoordinate) bool {
	return loop != nil && len(loop) < sealedLoopThreshold
}
