package wall

// The desirability kernel encodes the local neighbourhood of a candidate 2x2
// placement as a single integer. The candidate's own footprint tiles carry the
// sentinel weight Z, so any obstruction under the footprint pushes the score
// to >= 4096. The 12 surrounding ring tiles carry pairwise-distinct powers of
// two, so a score below 4096 is exactly the bitmask of obstructed ring tiles.
//
// Ring tile letters, relative to a candidate point P whose footprint is
// {P.X-1, P.X} x {P.Y-1, P.Y}:
//
//	A B C D
//	E Z Z F
//	G Z Z H
//	I J K L

// Signature is the ring bitmask produced by convolving the kernel at one tile.
type Signature int

const (
	bitA Signature = 1 << iota
	bitB
	bitC
	bitD
	bitE
	bitF
	bitG
	bitH
	bitI
	bitJ
	bitK
	bitL
)

const (
	// sentinelWeight dominates the convolution sum whenever a footprint tile
	// is obstructed. Scores >= sentinelWeight mean the placement is unusable.
	sentinelWeight = 4096

	// signatureCount is the number of distinct ring signatures.
	signatureCount = 4096

	// allRing has every ring tile obstructed.
	allRing = Signature(signatureCount - 1)

	// cornerMask selects the four ring corners. Corners never contribute to
	// sealing a gap, so priority weights mask them out before the popcount.
	cornerMask = bitA | bitD | bitI | bitL

	sideTop    = bitA | bitB | bitC | bitD
	sideLeft   = bitA | bitE | bitG | bitI
	sideBottom = bitI | bitJ | bitK | bitL
	sideRight  = bitD | bitF | bitH | bitL
)

// ringOffsets maps ring bit index (A=0 .. L=11) to a tile offset from the
// candidate point. The footprint occupies offsets {-1,0} x {-1,0}; the ring is
// the remainder of the 4x4 window spanning {-2..1} x {-2..1}.
var ringOffsets = [12][2]int{
	{-2, -2}, {-1, -2}, {0, -2}, {1, -2}, // A B C D
	{-2, -1}, {1, -1}, // E F
	{-2, 0}, {1, 0}, // G H
	{-2, 1}, {-1, 1}, {0, 1}, {1, 1}, // I J K L
}

// footprintOffsets are the candidate's own 2x2 tiles relative to its point.
var footprintOffsets = [4][2]int{{-1, -1}, {0, -1}, {-1, 0}, {0, 0}}

// desirabilityKernel holds the weight applied to each tile of the 4x4 window,
// indexed [dy+2][dx+2]. Built once from ringOffsets so the kernel and the ring
// geometry cannot drift apart.
var desirabilityKernel = buildKernel()

func buildKernel() [4][4]int {
	var k [4][4]int
	for _, off := range footprintOffsets {
		k[off[1]+2][off[0]+2] = sentinelWeight
	}
	for i, off := range ringOffsets {
		k[off[1]+2][off[0]+2] = 1 << i
	}
	return k
}

// rotatePerm[i] is the ring bit index that bit i moves to under a 90-degree
// clockwise rotation of the window about the footprint centre. mirrorPerm is
// the same for a horizontal mirror. Both are derived from ringOffsets.
var rotatePerm, mirrorPerm = buildPerms()

func buildPerms() (rot, mir [12]int) {
	// Work in doubled coordinates so the footprint centre sits at the origin
	// and every ring cell has odd integer coordinates.
	index := make(map[[2]int]int, 12)
	for i, off := range ringOffsets {
		cx, cy := 2*off[0]+1, 2*off[1]+1
		index[[2]int{cx, cy}] = i
	}
	for i, off := range ringOffsets {
		cx, cy := 2*off[0]+1, 2*off[1]+1
		rot[i] = index[[2]int{-cy, cx}]
		mir[i] = index[[2]int{-cx, cy}]
	}
	return rot, mir
}

// RotateSignature returns sig with its ring bits rotated 90 degrees clockwise.
func RotateSignature(sig Signature) Signature {
	var out Signature
	for i := 0; i < 12; i++ {
		if sig&(1<<i) != 0 {
			out |= 1 << rotatePerm[i]
		}
	}
	return out
}

// mirrorSignature returns sig with its ring bits mirrored horizontally.
func mirrorSignature(sig Signature) Signature {
	var out Signature
	for i := 0; i < 12; i++ {
		if sig&(1<<i) != 0 {
			out |= 1 << mirrorPerm[i]
		}
	}
	return out
}

// exclusionBases are the degenerate ring patterns that mark a legal placement
// as structurally useless: it cannot help close a gap. The full exclusion set
// is their closure under the kernel's rotations and mirrors, which keeps the
// table free of hand-transcription gaps.
var exclusionBases = []Signature{
	// Nothing to seal against, or already sealed solid.
	0,
	allRing,
	// Isolated single obstructions.
	bitA,
	bitB,
	// Contiguous edge pairs and triples.
	bitA | bitB,
	bitB | bitC,
	bitA | bitB | bitC,
	// A full side.
	sideTop,
	// Corner-only pairs (diagonal lines, nothing contiguous to extend).
	bitA | bitD,
	bitA | bitL,
	// A corner that is already sealed, with arms of growing length.
	bitA | bitB | bitE,
	bitA | bitB | bitC | bitE,
	bitA | bitB | bitC | bitD | bitE,
	bitA | bitB | bitC | bitE | bitG,
	bitA | bitB | bitC | bitE | bitG | bitI,
	sideTop | bitE | bitG | bitI,
	// A full side plus both adjacent ring tiles: a pocket the wall cannot use.
	sideTop | bitE | bitF,
	sideTop | bitE | bitF | bitG,
	sideTop | bitE | bitF | bitG | bitH,
	sideTop | bitE | bitF | bitG | bitI,
	sideTop | bitE | bitF | bitG | bitH | bitI,
	sideTop | bitE | bitF | bitG | bitH | bitI | bitL,
	// Side-and-diagonal pockets around a side's two middle tiles.
	bitB | bitE | bitG,
	bitB | bitE | bitG | bitJ,
	bitA | bitB | bitE | bitG | bitJ,
	// Everything except one tile.
	allRing &^ bitA,
	allRing &^ bitB,
	// Everything except two or three corners, or all four.
	allRing &^ (bitA | bitD),
	allRing &^ (bitA | bitL),
	allRing &^ (bitD | bitI | bitL),
	allRing &^ cornerMask,
}

// excludedSignatures marks every ring signature in the exclusion set.
var excludedSignatures = buildExclusionSet()

func buildExclusionSet() [signatureCount]bool {
	var set [signatureCount]bool
	// Expand each base under the dihedral group: 4 rotations, mirrored or not.
	for _, base := range exclusionBases {
		sig := base
		for r := 0; r < 4; r++ {
			set[sig] = true
			set[mirrorSignature(sig)] = true
			sig = RotateSignature(sig)
		}
	}
	return set
}

// Excluded reports whether a ring signature is in the static exclusion set.
// Excluded signatures are legal placements that do not help seal a gap.
func Excluded(sig Signature) bool {
	if sig < 0 || sig >= signatureCount {
		return false
	}
	return excludedSignatures[sig]
}
