package wall

import "testing"

func TestEncodeWindowRingBitmask(t *testing.T) {
	anchor := TileCoordinate{24, 24}
	probe := TileCoordinate{34, 24} // far enough that the anchor never enters its neighbourhood
	heights := map[int]bool{0: true}

	for i, off := range ringOffsets {
		g := NewTerrainGrid(48, 48)
		g.SetPassable(probe.X+off[0], probe.Y+off[1], false)
		win := WindowAround(g, anchor, windowRadius)

		scores := EncodeWindow(g, anchor, win, heights)
		score, ok := scores.At(probe.X, probe.Y)
		if !ok {
			t.Fatalf("probe candidate not scored")
		}
		if score != 1<<i {
			t.Errorf("obstruction at ring offset %v: score %012b, want bit %d", off, score, i)
		}
	}
}

func TestEncodeWindowFootprintSentinel(t *testing.T) {
	anchor := TileCoordinate{24, 24}
	probe := TileCoordinate{34, 24}
	heights := map[int]bool{0: true}

	for _, off := range footprintOffsets {
		g := NewTerrainGrid(48, 48)
		g.SetBuildable(probe.X+off[0], probe.Y+off[1], false)
		win := WindowAround(g, anchor, windowRadius)

		score, ok := EncodeWindow(g, anchor, win, heights).At(probe.X, probe.Y)
		if !ok {
			t.Fatalf("probe candidate not scored")
		}
		if score < sentinelWeight {
			t.Errorf("obstructed footprint tile %v scored %d, below the sentinel", off, score)
		}
	}
}

// Tiles off the anchor's plateau count as obstructions even when they are
// passable and buildable.
func TestEncodeWindowHeightGate(t *testing.T) {
	anchor := TileCoordinate{24, 24}
	probe := TileCoordinate{34, 24}
	heights := map[int]bool{0: true}

	g := NewTerrainGrid(48, 48)
	g.SetHeight(probe.X+1, probe.Y, 2) // ring tile H
	win := WindowAround(g, anchor, windowRadius)

	score, ok := EncodeWindow(g, anchor, win, heights).At(probe.X, probe.Y)
	if !ok {
		t.Fatalf("probe candidate not scored")
	}
	if score != int(bitH) {
		t.Errorf("raised ring tile scored %012b, want %012b", score, bitH)
	}
}

// Candidates whose 4x4 neighbourhood would read outside the window are never
// scored, so a partial neighbourhood can never masquerade as open ground.
func TestEncodeWindowEdgeExclusion(t *testing.T) {
	g := NewTerrainGrid(48, 48)
	anchor := TileCoordinate{24, 24}
	win := WindowAround(g, anchor, 10)
	scores := EncodeWindow(g, anchor, win, map[int]bool{0: true})

	if _, ok := scores.At(win.MinX, win.MinY); ok {
		t.Error("window corner must not be scored")
	}
	if _, ok := scores.At(win.MinX+1, win.MinY+2); ok {
		t.Error("candidate one tile from the window edge must not be scored")
	}
	if _, ok := scores.At(win.MinX+2, win.MinY+2); !ok {
		t.Error("first full-neighbourhood candidate must be scored")
	}
	if _, ok := scores.At(win.MaxX, win.MaxY); ok {
		t.Error("window max corner must not be scored")
	}
	if _, ok := scores.At(win.MaxX-1, win.MaxY-1); !ok {
		t.Error("last full-neighbourhood candidate must be scored")
	}
}

func TestWindowAroundClamps(t *testing.T) {
	g := NewTerrainGrid(32, 32)
	win := WindowAround(g, TileCoordinate{2, 30}, windowRadius)
	if win.MinX != 0 || win.MinY != 10 || win.MaxX != 22 || win.MaxY != 31 {
		t.Errorf("clamped window = %+v", win)
	}
}
