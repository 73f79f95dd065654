package wall

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/bits"
	"strconv"
)

// Classification buckets a scored candidate placement.
type Classification uint8

const (
	ClassInvalid     Classification = iota // footprint itself obstructed
	ClassNonBlocking                       // legal but structurally useless
	ClassBlocking                          // legal and helps seal a gap
)

func (c Classification) String() string {
	switch c {
	case ClassBlocking:
		return "blocking"
	case ClassNonBlocking:
		return "non-blocking"
	default:
		return "invalid"
	}
}

// PlacementCandidate is one classified 2x2 placement.
type PlacementCandidate struct {
	Location TileCoordinate
	Score    Signature
	Class    Classification
	// Priority is the number of non-corner ring obstructions: how much local
	// wall the placement connects to. Corners are masked out because they
	// never contribute to sealing a gap.
	Priority int
}

// Footprint returns the candidate's four owned tiles.
func (p PlacementCandidate) Footprint() [4]TileCoordinate {
	var out [4]TileCoordinate
	for i, off := range footprintOffsets {
		out[i] = TileCoordinate{p.Location.X + off[0], p.Location.Y + off[1]}
	}
	return out
}

//go:embed data/hamming_weight_lookups.json
var hammingWeightJSON []byte

// Classifier turns neighbourhood scores into placement classifications. Its
// bit-count table is loaded from a static asset once at startup and verified
// against the machine popcount; every downstream priority depends on it, so a
// bad table is the one startup error that must not be tolerated.
type Classifier struct {
	hamming [signatureCount]uint8
}

// NewClassifier loads and verifies the bit-count lookup table.
func NewClassifier() (*Classifier, error) {
	var raw map[string]int
	if err := json.Unmarshal(hammingWeightJSON, &raw); err != nil {
		return nil, fmt.Errorf("bit-count table: %w", err)
	}
	c := &Classifier{}
	seen := 0
	for k, v := range raw {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("bit-count table: bad key %q", k)
		}
		if i < 0 || i >= signatureCount {
			return nil, fmt.Errorf("bit-count table: key %d out of range", i)
		}
		if v != bits.OnesCount16(uint16(i)) {
			return nil, fmt.Errorf("bit-count table: table[%d]=%d, want %d", i, v, bits.OnesCount16(uint16(i)))
		}
		c.hamming[i] = uint8(v)
		seen++
	}
	if seen != signatureCount {
		return nil, fmt.Errorf("bit-count table: %d entries, want %d", seen, signatureCount)
	}
	return c, nil
}

// Classify buckets one convolution score.
func (c *Classifier) Classify(score int) Classification {
	if score >= sentinelWeight {
		return ClassInvalid
	}
	if Excluded(Signature(score)) {
		return ClassNonBlocking
	}
	return ClassBlocking
}

// Priority returns the ring popcount of sig with the corner bits masked out.
func (c *Classifier) Priority(sig Signature) int {
	if sig < 0 || sig >= signatureCount {
		return 0
	}
	return int(c.hamming[sig&^cornerMask])
}

// CandidateSet holds one tick's classified candidates. Blocking and
// non-blocking candidates are kept apart because the pathfinder weighs them
// differently; invalid placements are dropped entirely.
type CandidateSet struct {
	win         Window
	index       []int16 // candidate index+1 per window tile, 0 = none
	Blocking    []PlacementCandidate
	NonBlocking []PlacementCandidate
}

// ClassifyWindow classifies every scored tile of m. Classification is a pure
// function of the score map and the static tables, so an unchanged grid
// always yields an identical set.
func (c *Classifier) ClassifyWindow(m *ScoreMap) *CandidateSet {
	win := m.Window()
	cs := &CandidateSet{win: win, index: make([]int16, win.width()*win.height())}
	for y := win.MinY; y <= win.MaxY; y++ {
		for x := win.MinX; x <= win.MaxX; x++ {
			score, ok := m.At(x, y)
			if !ok {
				continue
			}
			class := c.Classify(score)
			if class == ClassInvalid {
				continue
			}
			cand := PlacementCandidate{
				Location: TileCoordinate{x, y},
				Score:    Signature(score),
				Class:    class,
				Priority: c.Priority(Signature(score)),
			}
			i := (y-win.MinY)*win.width() + (x - win.MinX)
			if class == ClassBlocking {
				cs.Blocking = append(cs.Blocking, cand)
				cs.index[i] = int16(len(cs.Blocking))
			} else {
				cs.NonBlocking = append(cs.NonBlocking, cand)
				cs.index[i] = -int16(len(cs.NonBlocking))
			}
		}
	}
	return cs
}

// At returns the legal candidate anchored at (x, y), if any.
func (cs *CandidateSet) At(x, y int) (PlacementCandidate, bool) {
	if !cs.win.Contains(x, y) {
		return PlacementCandidate{}, false
	}
	i := cs.index[(y-cs.win.MinY)*cs.win.width()+(x-cs.win.MinX)]
	switch {
	case i > 0:
		return cs.Blocking[i-1], true
	case i < 0:
		return cs.NonBlocking[-i-1], true
	default:
		return PlacementCandidate{}, false
	}
}

// Len returns the total number of legal candidates.
func (cs *CandidateSet) Len() int { return len(cs.Blocking) + len(cs.NonBlocking) }
