package vamana

// distanceFunc is the plain-function shape the walk implementation calls
// through; Index adapts its configured Distance to this at call sites so
// the hot loop never pays an interface-method-call's worth of indirection
// per neighbor beyond the one the Distance interface itself requires.
type distanceFunc func(a, b []float32) float32

// walk runs a single best-first beam search (C4) from entry toward query,
// expanding the frontier until no unexpanded candidate in it can beat the
// current worst member of the bounded best set. It writes its candidate
// pool into buf and returns nothing; an entryID not in the graph leaves buf
// untouched.
//
// Grounded on pkg/diskann/search.go's searchMemoryGraph/beamSearchDisk,
// collapsed into the single in-memory walk spec.md §4.4 describes (the
// teacher splits memory-graph and disk-graph phases because it has two
// storage tiers; this core has one).
func (g *graph) walk(dist distanceFunc, query []float32, lp int, entryID VectorId, buf *SearchBuffer) {
	entryNode, ok := g.nodes[entryID]
	if !ok {
		return
	}
	d0 := dist(query, entryNode.Vector)
	c0 := Candidate{ID: entryID, Distance: d0}
	buf.frontier.push(c0)
	buf.best.push(c0)
	buf.visited.mark(entryID)
	buf.allVisited = append(buf.allVisited, c0)

	for buf.frontier.Len() > 0 {
		c := buf.frontier.pop()
		// Stop expanding once the frontier's best remaining candidate is
		// already farther than the current worst kept result and the best
		// set is full: nothing left in the frontier can improve it.
		if buf.best.Len() >= lp && c.Distance > buf.best.worst().Distance {
			break
		}
		node, ok := g.nodes[c.ID]
		if !ok {
			continue
		}
		for _, nb := range node.Neighbors {
			if buf.visited.contains(nb) {
				continue
			}
			buf.visited.mark(nb)
			nbNode, ok := g.nodes[nb]
			if !ok {
				// A stale neighbor reference (pointing at a since-deleted
				// node that hasn't been repaired out of this list yet) is
				// skipped rather than treated as an error.
				continue
			}
			d := dist(query, nbNode.Vector)
			cand := Candidate{ID: nb, Distance: d}
			buf.allVisited = append(buf.allVisited, cand)
			buf.frontier.push(cand)
			buf.best.push(cand)
			if buf.best.Len() > lp {
				buf.best.popWorst()
			}
		}
	}
}

// beamL computes L' = max(L, 2k) per §4.4: the candidate list searched must
// be at least twice the requested result count, regardless of the
// configured L, so that small-k searches still get enough breadth to rank
// correctly.
func beamL(l, k int) int {
	if lp := 2 * k; lp > l {
		return lp
	}
	return l
}

// searchTopK drives a walk with beam width lp and returns the k closest
// results in ascending-distance order.
func (g *graph) searchTopK(dist distanceFunc, query []float32, k, lp int, buf *SearchBuffer) []SearchResult {
	buf.Clear()
	buf.resizeForMaxID(g.maxID)
	if g.size() == 0 {
		return nil
	}
	entryID, ok := g.pickEntry()
	if !ok {
		return nil
	}
	g.walk(dist, query, lp, entryID, buf)
	sorted := buf.best.sorted()
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	results := make([]SearchResult, len(sorted))
	for i, c := range sorted {
		results[i] = SearchResult{ID: c.ID, Distance: c.Distance}
	}
	return results
}
