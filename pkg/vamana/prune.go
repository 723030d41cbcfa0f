package vamana

// robustPrune implements the alpha-RNG selection rule (C5): from a pool of
// candidates (each already scored by distance to source), greedily keep the
// closest remaining candidate v and eliminate every other candidate w for
// which distance(source, w) >= alpha * distance(v, w) - i.e. v already
// covers w closely enough, scaled by the slack factor alpha, that keeping w
// too would add clustering rather than diversity. Repeats until R
// neighbors are kept or the pool is exhausted.
//
// Grounded on pkg/diskann/build.go's selectNeighbors, corrected from the
// teacher's inverted occlusion check (`distToCandidate < candidate.Distance
// * alpha`, which keeps clustered candidates instead of eliminating them)
// to match the elimination direction stated explicitly in this system's
// pruning contract: remove w whenever distance(s,w) >= alpha*distance(v,w).
func robustPrune(dist distanceFunc, source []float32, candidates []Candidate, lookup func(VectorId) ([]float32, bool), r int, alpha float64) []VectorId {
	pool := make([]Candidate, 0, len(candidates))
	seen := make(map[VectorId]bool, len(candidates))
	for _, c := range candidates {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		pool = append(pool, c)
	}
	insertionSortCandidates(pool)

	selected := make([]VectorId, 0, r)
	for len(pool) > 0 && len(selected) < r {
		best := pool[0]
		selected = append(selected, best.ID)

		bestVec, ok := lookup(best.ID)
		if !ok {
			pool = pool[1:]
			continue
		}

		kept := pool[:0]
		for _, w := range pool[1:] {
			wVec, ok := lookup(w.ID)
			if !ok {
				continue
			}
			dvw := dist(bestVec, wVec)
			if float64(w.Distance) >= alpha*float64(dvw) {
				// best already covers w closely enough within the alpha
				// slack; eliminate it from future consideration.
				continue
			}
			kept = append(kept, w)
		}
		pool = kept
	}
	return selected
}
