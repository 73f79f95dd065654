package wall

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	viewerCols   = 64
	viewerRows   = 64
	viewerTile   = 11
	viewerPanelW = 300

	// autoStepFrames is the frame interval between planner ticks in auto mode,
	// slow enough to watch the wall grow.
	autoStepFrames = 20
)

var (
	colOpen        = color.RGBA{R: 34, G: 48, B: 34, A: 255}
	colCliff       = color.RGBA{R: 78, G: 74, B: 66, A: 255}
	colRubble      = color.RGBA{R: 52, G: 58, B: 46, A: 255}
	colMesa        = color.RGBA{R: 46, G: 56, B: 62, A: 255}
	colBarrier     = color.RGBA{R: 150, G: 128, B: 70, A: 255}
	colTurret      = color.RGBA{R: 170, G: 80, B: 70, A: 255}
	colBlocking    = color.RGBA{R: 200, G: 120, B: 40, A: 90}
	colNonBlocking = color.RGBA{R: 60, G: 110, B: 180, A: 50}
	colPath        = color.RGBA{R: 120, G: 200, B: 120, A: 220}
	colPathSealed  = color.RGBA{R: 230, G: 210, B: 90, A: 240}
	colStart       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colAnchor      = color.RGBA{R: 220, G: 90, B: 90, A: 255}
	colPanelBg     = color.RGBA{R: 12, G: 14, B: 12, A: 255}
	colPanelLine   = color.RGBA{R: 50, G: 70, B: 50, A: 255}
	colHUD         = color.RGBA{R: 190, G: 220, B: 190, A: 255}
)

// Viewer is the interactive planning visualizer. It steps one planning
// session over a generated pocket map and draws the grids, candidates and the
// evolving wall path.
type Viewer struct {
	grid     *TerrainGrid
	planner  *WallPlanner
	log      *PlanLog
	reporter *PlanReporter

	seed      int64
	anchor    TileCoordinate
	reference TileCoordinate

	tick       int
	auto       bool
	frame      int
	copiedNote int // frames left to show the clipboard confirmation

	prevKeys map[ebiten.Key]bool
}

// NewViewer builds a viewer over a fresh planning session.
func NewViewer(seed int64) (*Viewer, error) {
	v := &Viewer{
		seed:     seed,
		prevKeys: make(map[ebiten.Key]bool),
	}
	if err := v.reset(seed); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Viewer) reset(seed int64) error {
	cl, err := NewClassifier()
	if err != nil {
		return err
	}
	v.seed = seed
	v.anchor = TileCoordinate{24, 32}
	v.reference = TileCoordinate{44, 32}
	v.grid = GeneratePocketTerrain(viewerCols, viewerRows, v.anchor, seed)
	v.log = NewPlanLog(false)
	v.reporter = NewPlanReporter()
	v.planner = NewWallPlanner(v.grid, cl, PlannerConfig{
		Anchor:    v.anchor,
		Reference: v.reference,
	}, v.log)
	v.tick = 0
	v.auto = false
	return nil
}

func (v *Viewer) step() {
	v.tick++
	pb, ok := v.planner.Tick()
	if ok {
		v.grid.AddStructure(pb.Kind, pb.Location)
	}
	v.reporter.Collect(v.tick, v.planner, v.grid, pb, ok)
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !v.prevKeys[k]
	}

	if pressed(ebiten.KeySpace) {
		v.step()
	}
	if pressed(ebiten.KeyP) {
		v.auto = !v.auto
	}
	if pressed(ebiten.KeyR) {
		if err := v.reset(v.seed + 1); err != nil {
			return err
		}
	}
	if pressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(v.reporter.Format(v.seed, v.anchor)); err == nil {
			v.copiedNote = 90
		}
	}
	v.prevKeys = currentKeys

	if v.auto {
		v.frame++
		if v.frame%autoStepFrames == 0 {
			v.step()
		}
	}
	if v.copiedNote > 0 {
		v.copiedNote--
	}
	return nil
}

func tileColor(g *TerrainGrid, x, y int) color.RGBA {
	switch g.StructureTileAt(x, y) {
	case StructureBarrier:
		return colBarrier
	case StructureTurret:
		return colTurret
	}
	if !g.Passable(x, y) {
		return colCliff
	}
	if !g.Buildable(x, y) {
		return colRubble
	}
	if g.Height(x, y) != 0 {
		return colMesa
	}
	return colOpen
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	for y := 0; y < v.grid.Rows; y++ {
		for x := 0; x < v.grid.Cols; x++ {
			vector.FillRect(screen,
				float32(x*viewerTile), float32(y*viewerTile),
				viewerTile-1, viewerTile-1,
				tileColor(v.grid, x, y), false)
		}
	}

	if cands := v.planner.Candidates(); cands != nil {
		for _, c := range cands.NonBlocking {
			v.fillTile(screen, c.Location, colNonBlocking)
		}
		for _, c := range cands.Blocking {
			v.fillTile(screen, c.Location, colBlocking)
		}
	}

	if path := v.planner.WallPath(); len(path) > 1 {
		col := colPath
		if v.planner.Sealed() {
			col = colPathSealed
		}
		for i := 0; i+1 < len(path); i++ {
			x0, y0 := tileCenter(path[i])
			x1, y1 := tileCenter(path[i+1])
			vector.StrokeLine(screen, x0, y0, x1, y1, 2.0, col, false)
		}
	}

	if start, ok := v.planner.StartTile(); ok {
		sx, sy := tileCenter(start)
		vector.StrokeRect(screen, sx-5, sy-5, 10, 10, 1.5, colStart, false)
	}
	ax, ay := tileCenter(v.anchor)
	vector.StrokeLine(screen, ax-5, ay, ax+5, ay, 2.0, colAnchor, false)
	vector.StrokeLine(screen, ax, ay-5, ax, ay+5, 2.0, colAnchor, false)

	v.drawPanel(screen)
}

func (v *Viewer) fillTile(screen *ebiten.Image, tc TileCoordinate, col color.RGBA) {
	vector.FillRect(screen,
		float32(tc.X*viewerTile), float32(tc.Y*viewerTile),
		viewerTile-1, viewerTile-1, col, false)
}

func tileCenter(tc TileCoordinate) (float32, float32) {
	return float32(tc.X*viewerTile) + viewerTile/2, float32(tc.Y*viewerTile) + viewerTile/2
}

func (v *Viewer) drawPanel(screen *ebiten.Image) {
	px := viewerCols * viewerTile
	ph := viewerRows * viewerTile
	vector.FillRect(screen, float32(px), 0, viewerPanelW, float32(ph), colPanelBg, false)
	vector.StrokeLine(screen, float32(px), 0, float32(px), float32(ph), 1.0, colPanelLine, false)

	text.Draw(screen, "WALL PLANNER", basicfont.Face7x13, px+12, 20, colHUD)
	vector.StrokeLine(screen, float32(px+8), 28, float32(px+viewerPanelW-8), 28, 1.0, colPanelLine, false)

	mode := "manual"
	if v.auto {
		mode = "auto"
	}
	lines := []string{
		fmt.Sprintf("seed:  %d", v.seed),
		fmt.Sprintf("tick:  %d (%s)", v.tick, mode),
		fmt.Sprintf("state: %s", v.planner.State()),
		fmt.Sprintf("sealed: %v", v.planner.Sealed()),
		"",
	}
	if cands := v.planner.Candidates(); cands != nil {
		topPriority := 0
		for _, c := range cands.Blocking {
			topPriority = max(topPriority, c.Priority)
		}
		lines = append(lines,
			fmt.Sprintf("blocking:     %d", len(cands.Blocking)),
			fmt.Sprintf("non-blocking: %d", len(cands.NonBlocking)),
			fmt.Sprintf("top priority: %d", topPriority),
		)
	}
	lines = append(lines,
		fmt.Sprintf("path tiles:  %d", len(v.planner.WallPath())),
		fmt.Sprintf("structures:  %d", len(v.grid.Structures())),
		"",
		"[space] step   [p] auto",
		"[r] new seed   [c] copy report",
	)
	if v.copiedNote > 0 {
		lines = append(lines, "", "report copied to clipboard")
	}
	y := 40
	for _, l := range lines {
		if l != "" {
			ebitenutil.DebugPrintAt(screen, l, px+12, y)
		}
		y += 14
	}

	// Recent log tail.
	entries := v.log.Entries()
	from := max(0, len(entries)-12)
	y += 8
	vector.StrokeLine(screen, float32(px+8), float32(y), float32(px+viewerPanelW-8), float32(y), 1.0, colPanelLine, false)
	y += 6
	for _, e := range entries[from:] {
		ebitenutil.DebugPrintAt(screen, e.String(), px+12, y)
		y += 14
	}
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(_, _ int) (int, int) {
	return viewerCols*viewerTile + viewerPanelW, viewerRows * viewerTile
}
