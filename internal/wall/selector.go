package wall

// SelectedPlacement is the selector's pick for the next wall component.
type SelectedPlacement struct {
	Candidate PlacementCandidate
	// Coverage is how many of the candidate's footprint tiles lie on the
	// current wall path.
	Coverage int
	Covered  []TileCoordinate
	// Final marks a placement whose simulated grid seals the wall.
	Final bool
}

// SelectPlacement picks the candidate whose footprint covers the most wall
// path tiles, across both blocking and non-blocking candidates. Ties break by
// squared distance to ref (a point biasing the wall toward the expected
// approach), then by Y and X so unchanged inputs give an identical pick.
// sealsWall simulates the placement against the completion oracle; it may be
// nil when the caller does not need Final.
//
// Returns false when no candidate touches the path at all.
func SelectPlacement(cands *CandidateSet, path []TileCoordinate, ref TileCoordinate, sealsWall func(TileCoordinate) bool) (SelectedPlacement, bool) {
	if cands == nil || len(path) == 0 {
		return SelectedPlacement{}, false
	}
	onPath := make(map[TileCoordinate]bool, len(path))
	for _, tc := range path {
		onPath[tc] = true
	}

	var best SelectedPlacement
	bestDist := 0
	have := false
	consider := func(c PlacementCandidate) {
		coverage := 0
		var covered []TileCoordinate
		for _, tile := range c.Footprint() {
			if onPath[tile] {
				coverage++
				covered = append(covered, tile)
			}
		}
		if coverage == 0 {
			return
		}
		dx := c.Location.X - ref.X
		dy := c.Location.Y - ref.Y
		dist := dx*dx + dy*dy
		if have {
			if coverage < best.Coverage {
				return
			}
			if coverage == best.Coverage {
				if dist > bestDist {
					return
				}
				if dist == bestDist {
					loc, bl := c.Location, best.Candidate.Location
					if loc.Y > bl.Y || (loc.Y == bl.Y && loc.X >= bl.X) {
						return
					}
				}
			}
		}
		best = SelectedPlacement{Candidate: c, Coverage: coverage, Covered: covered}
		bestDist = dist
		have = true
	}
	for _, c := range cands.Blocking {
		consider(c)
	}
	for _, c := range cands.NonBlocking {
		consider(c)
	}
	if !have {
		return SelectedPlacement{}, false
	}
	if sealsWall != nil {
		best.Final = sealsWall(best.Candidate.Location)
	}
	return best, true
}
