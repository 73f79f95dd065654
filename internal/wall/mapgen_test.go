package wall

import (
	"reflect"
	"testing"
)

func TestGeneratePocketTerrainDeterministic(t *testing.T) {
	anchor := TileCoordinate{24, 32}
	a := GeneratePocketTerrain(64, 64, anchor, 42)
	b := GeneratePocketTerrain(64, 64, anchor, 42)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different terrain")
	}
}

func TestGeneratePocketTerrainShape(t *testing.T) {
	anchor := TileCoordinate{24, 32}
	g := GeneratePocketTerrain(64, 64, anchor, 1)
	cfg := defaultPocketConfig

	if !g.Passable(anchor.X, anchor.Y) {
		t.Fatal("anchor tile must stay open")
	}
	// Interior stays open up to the ring.
	for dy := -cfg.HalfExtent + 1; dy < cfg.HalfExtent; dy++ {
		for dx := -cfg.HalfExtent + 1; dx < cfg.HalfExtent; dx++ {
			if !g.Passable(anchor.X+dx, anchor.Y+dy) {
				t.Errorf("interior tile (%+d,%+d) carved", dx, dy)
			}
		}
	}
	// The west band is solid cliff; the east band opens only at the gap.
	gapHalf := cfg.GapWidth / 2
	for dy := -cfg.HalfExtent; dy <= cfg.HalfExtent; dy++ {
		if g.Passable(anchor.X-cfg.HalfExtent, anchor.Y+dy) {
			t.Errorf("west ring open at dy=%+d", dy)
		}
		open := g.Passable(anchor.X+cfg.HalfExtent, anchor.Y+dy)
		wantOpen := dy >= -gapHalf && dy < gapHalf
		if open != wantOpen {
			t.Errorf("east ring at dy=%+d: open=%v, want %v", dy, open, wantOpen)
		}
	}
}
