package vamana

// Add inserts a new vector under id (C6's insert path). The first Add on an
// empty index fixes the index's dimensionality; every subsequent Add is
// checked against it.
//
// Grounded on pkg/diskann/build.go's buildGraph loop body (greedy search
// against the medoid, select neighbors, install forward edges, add reverse
// edges with re-prune on overflow), generalized from a build-time-only step
// into a standalone incremental operation per spec.md §5's insert contract.
func (idx *Index) Add(id VectorId, vector []float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.dimension == 0 {
		idx.dimension = len(vector)
	} else if len(vector) != idx.dimension {
		return newDimensionError(idx.dimension, len(vector))
	}
	if idx.g.contains(id) {
		return newDuplicateIdError(id)
	}

	vec := make([]float32, len(vector))
	copy(vec, vector)

	if idx.g.size() == 0 {
		idx.g.insert(&Node{ID: id, Vector: vec})
		idx.logDebug("vamana: first node inserted", map[string]interface{}{"id": id})
		return nil
	}

	entryID, ok := idx.g.pickEntry()
	if !ok {
		idx.g.insert(&Node{ID: id, Vector: vec})
		return nil
	}

	buf := NewSearchBuffer()
	buf.resizeForMaxID(idx.g.maxID)
	// Insert's own contract (§4.6) runs this walk with k=L, L=L, so the
	// universal L'=max(L,2k) rule widens the effective beam to 2L here.
	idx.g.walk(idx.distFn, vec, beamL(idx.cfg.L, idx.cfg.L), entryID, buf)
	candidates := buf.VisitedCandidates()

	lookup := func(v VectorId) ([]float32, bool) {
		n, ok := idx.g.get(v)
		if !ok {
			return nil, false
		}
		return n.Vector, true
	}
	neighbors := robustPrune(idx.distFn, vec, candidates, lookup, idx.cfg.R, idx.cfg.Alpha)

	idx.g.insert(&Node{ID: id, Vector: vec, Neighbors: neighbors})

	for _, nbID := range neighbors {
		idx.addReverseEdge(nbID, id)
	}

	idx.sinceRefresh++
	refreshEvery := idx.cfg.MedoidRefreshEvery
	if refreshEvery <= 0 {
		refreshEvery = 1
	}
	if idx.sinceRefresh >= refreshEvery {
		idx.refreshMedoid()
		idx.sinceRefresh = 0
	}

	idx.logDebug("vamana: node inserted", map[string]interface{}{"id": id, "neighbors": len(neighbors)})
	return nil
}

// addReverseEdge adds a toID edge to fromID's neighbor list, re-pruning
// fromID's full neighborhood if that pushes it over R. Grounded on
// pkg/diskann/build.go's addReverseEdge/pruneNeighbors pair.
func (idx *Index) addReverseEdge(fromID, toID VectorId) {
	from, ok := idx.g.get(fromID)
	if !ok {
		return
	}
	for _, nb := range from.Neighbors {
		if nb == toID {
			return
		}
	}
	from.Neighbors = append(from.Neighbors, toID)
	if len(from.Neighbors) <= idx.cfg.R {
		return
	}

	candidates := make([]Candidate, len(from.Neighbors))
	for i, nbID := range from.Neighbors {
		nbNode, ok := idx.g.get(nbID)
		if !ok {
			candidates[i] = Candidate{ID: nbID, Distance: mismatch}
			continue
		}
		candidates[i] = Candidate{ID: nbID, Distance: idx.distFn(from.Vector, nbNode.Vector)}
	}
	lookup := func(v VectorId) ([]float32, bool) {
		n, ok := idx.g.get(v)
		if !ok {
			return nil, false
		}
		return n.Vector, true
	}
	from.Neighbors = robustPrune(idx.distFn, from.Vector, candidates, lookup, idx.cfg.R, idx.cfg.Alpha)
}

// refreshMedoid recomputes and installs a new entry point.
func (idx *Index) refreshMedoid() {
	id, ok := idx.g.computeMedoid(idx.distFn, idx.cfg.MedoidSampleSize, idx.rngSrc)
	if ok {
		idx.g.setEntry(id)
	}
}
