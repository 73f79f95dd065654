package wall

import (
	"reflect"
	"testing"
)

func TestTerrainGridBounds(t *testing.T) {
	g := NewTerrainGrid(8, 8)
	if g.Passable(-1, 0) || g.Passable(8, 0) || g.Passable(0, 8) {
		t.Error("out-of-bounds tiles must not be passable")
	}
	if g.Buildable(-1, -1) {
		t.Error("out-of-bounds tiles must not be buildable")
	}
	if g.Height(99, 99) != 0 {
		t.Error("out-of-bounds height must be zero")
	}
	// Out-of-bounds writes are dropped, not panics.
	g.SetPassable(-1, 0, false)
	g.SetHeight(99, 99, 5)
}

func TestAddRemoveStructure(t *testing.T) {
	g := NewTerrainGrid(16, 16)
	loc := TileCoordinate{8, 8}
	gen := g.Generation()

	g.AddStructure(StructureBarrier, loc)
	if g.Generation() == gen {
		t.Error("adding a structure must bump the generation")
	}
	for _, off := range footprintOffsets {
		x, y := loc.X+off[0], loc.Y+off[1]
		if g.Traversable(x, y) {
			t.Errorf("footprint tile (%d,%d) still traversable", x, y)
		}
		if g.Buildable(x, y) {
			t.Errorf("footprint tile (%d,%d) still buildable", x, y)
		}
		if g.StructureTileAt(x, y) != StructureBarrier {
			t.Errorf("footprint tile (%d,%d) not stamped", x, y)
		}
	}
	if g.StructureAt(loc) != StructureBarrier {
		t.Error("structure registry lost the barrier")
	}
	// Bare terrain is untouched underneath.
	if !g.Passable(loc.X, loc.Y) {
		t.Error("structure placement must not rewrite terrain passability")
	}

	gen = g.Generation()
	g.RemoveStructure(loc)
	if g.Generation() == gen {
		t.Error("removing a structure must bump the generation")
	}
	for _, off := range footprintOffsets {
		x, y := loc.X+off[0], loc.Y+off[1]
		if !g.Traversable(x, y) || !g.Buildable(x, y) {
			t.Errorf("footprint tile (%d,%d) not restored", x, y)
		}
	}
	if len(g.Structures()) != 0 {
		t.Error("structure registry not emptied")
	}
}

func TestRegionHeightsStopsAtCliffs(t *testing.T) {
	g := NewTerrainGrid(32, 16)
	// A full-height cliff wall at x=16 splits the map; the far side is raised.
	for y := 0; y < 16; y++ {
		g.SetPassable(16, y, false)
	}
	for y := 0; y < 16; y++ {
		for x := 17; x < 32; x++ {
			g.SetHeight(x, y, 3)
		}
	}

	heights := g.RegionHeights(TileCoordinate{8, 8}, 20)
	if !reflect.DeepEqual(heights, map[int]bool{0: true}) {
		t.Errorf("heights = %v, want only the anchor plateau", heights)
	}

	// Without the wall the raised side joins the region.
	for y := 0; y < 16; y++ {
		g.SetPassable(16, y, true)
	}
	heights = g.RegionHeights(TileCoordinate{8, 8}, 20)
	if !heights[0] || !heights[3] {
		t.Errorf("heights = %v, want both plateaus", heights)
	}
}

func TestRegionHeightsDegenerateAnchor(t *testing.T) {
	g := NewTerrainGrid(8, 8)
	g.SetPassable(4, 4, false)
	g.SetHeight(4, 4, 7)
	heights := g.RegionHeights(TileCoordinate{4, 4}, 4)
	if !reflect.DeepEqual(heights, map[int]bool{7: true}) {
		t.Errorf("heights = %v, want the anchor's own height", heights)
	}
}
