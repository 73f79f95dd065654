package wall

import (
	"math/bits"
	"reflect"
	"testing"
)

func mustClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier()
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return c
}

func TestClassifierTableMatchesPopcount(t *testing.T) {
	c := mustClassifier(t)
	for sig := Signature(0); sig < signatureCount; sig++ {
		want := bits.OnesCount16(uint16(sig &^ cornerMask))
		if got := c.Priority(sig); got != want {
			t.Fatalf("Priority(%012b) = %d, want %d", sig, got, want)
		}
	}
}

func TestPriorityMasksCorners(t *testing.T) {
	c := mustClassifier(t)
	if got := c.Priority(cornerMask); got != 0 {
		t.Errorf("Priority(corners only) = %d, want 0", got)
	}
	if got := c.Priority(bitB | bitJ | bitA | bitL); got != 2 {
		t.Errorf("Priority(B|J plus two corners) = %d, want 2", got)
	}
}

func TestClassifyBuckets(t *testing.T) {
	c := mustClassifier(t)
	cases := []struct {
		score int
		want  Classification
	}{
		{sentinelWeight, ClassInvalid},
		{sentinelWeight + 37, ClassInvalid},
		{4 * sentinelWeight, ClassInvalid},
		{0, ClassNonBlocking},
		{int(allRing), ClassNonBlocking},
		{int(sideTop), ClassNonBlocking},
		{int(bitB | bitJ), ClassBlocking},
		{int(bitE | bitF), ClassBlocking},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.score); got != tc.want {
			t.Errorf("Classify(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

// On flat open ground the only invalid candidates are the ones whose
// footprint overlaps the anchor's reserved tiles; everything else scores as a
// pure ring bitmask.
func TestClassifyWindowAnchorReservation(t *testing.T) {
	c := mustClassifier(t)
	g := NewTerrainGrid(48, 48)
	anchor := TileCoordinate{24, 24}
	win := WindowAround(g, anchor, 10)
	heights := g.RegionHeights(anchor, 10)

	scores := EncodeWindow(g, anchor, win, heights)
	cs := c.ClassifyWindow(scores)

	// Candidate footprints are {X-1,X} x {Y-1,Y}: points within one tile of
	// the anchor in both axes overlap its footprint.
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			x, y := anchor.X+dx, anchor.Y+dy
			score, ok := scores.At(x, y)
			if !ok {
				continue
			}
			overlaps := dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
			if overlaps && score < sentinelWeight {
				t.Errorf("candidate (%d,%d) overlaps anchor but scored %d", x, y, score)
			}
			if _, have := cs.At(x, y); have && overlaps {
				t.Errorf("candidate (%d,%d) overlaps anchor but was kept", x, y)
			}
		}
	}

	// An isolated 2x2 blob only ever shows contiguous edge runs to its
	// neighbours, and those are all in the exclusion set: nothing on a bare
	// grid is worth walling against.
	if len(cs.Blocking) != 0 {
		t.Errorf("bare grid produced %d blocking candidates, want 0", len(cs.Blocking))
	}
	if len(cs.NonBlocking) == 0 {
		t.Error("bare grid should still have legal non-blocking candidates")
	}
	for _, cand := range cs.NonBlocking {
		if !Excluded(cand.Score) {
			t.Errorf("non-blocking candidate at (%d,%d) has score %012b outside the exclusion set",
				cand.Location.X, cand.Location.Y, cand.Score)
		}
	}
}

func TestClassifyWindowDeterministic(t *testing.T) {
	c := mustClassifier(t)
	anchor := TileCoordinate{24, 32}
	g := GeneratePocketTerrain(64, 64, anchor, 7)
	win := WindowAround(g, anchor, windowRadius)
	heights := g.RegionHeights(anchor, windowRadius)

	first := c.ClassifyWindow(EncodeWindow(g, anchor, win, heights))
	second := c.ClassifyWindow(EncodeWindow(g, anchor, win, heights))
	if !reflect.DeepEqual(first.Blocking, second.Blocking) {
		t.Error("blocking candidates differ between identical classification runs")
	}
	if !reflect.DeepEqual(first.NonBlocking, second.NonBlocking) {
		t.Error("non-blocking candidates differ between identical classification runs")
	}
}

func TestCandidateSetAt(t *testing.T) {
	c := mustClassifier(t)
	anchor := TileCoordinate{24, 32}
	g := GeneratePocketTerrain(64, 64, anchor, 7)
	win := WindowAround(g, anchor, windowRadius)
	heights := g.RegionHeights(anchor, windowRadius)
	cs := c.ClassifyWindow(EncodeWindow(g, anchor, win, heights))

	for _, cand := range cs.Blocking {
		got, ok := cs.At(cand.Location.X, cand.Location.Y)
		if !ok || got != cand {
			t.Fatalf("At(%d,%d) lost blocking candidate", cand.Location.X, cand.Location.Y)
		}
	}
	for _, cand := range cs.NonBlocking {
		got, ok := cs.At(cand.Location.X, cand.Location.Y)
		if !ok || got != cand {
			t.Fatalf("At(%d,%d) lost non-blocking candidate", cand.Location.X, cand.Location.Y)
		}
	}
	if _, ok := cs.At(-5, -5); ok {
		t.Error("At outside the window must report no candidate")
	}
}
