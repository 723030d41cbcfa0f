package vamana

// SearchBuffer (C3) holds the scratch state a beam search needs - frontier,
// bounded best-result set, and visited tracking - so that repeated searches
// against the same Index can reuse one allocation instead of building fresh
// heaps and maps on every call. The teacher has no equivalent: every search
// in pkg/diskann/search.go allocates its own MinHeap/MaxHeap/visited map
// from scratch, which is exactly the per-call allocation cost this type
// exists to remove.
//
// A SearchBuffer is not safe for concurrent use; callers searching from
// multiple goroutines should use one buffer per goroutine (or none, and let
// Search allocate its own internally).
type SearchBuffer struct {
	frontier frontierHeap
	best     bestHeap
	visited  *visitedSet
	// allVisited accumulates every (id, distance) pair computed during a
	// walk, including ones evicted from best - the candidate pool Add's
	// robust prune step needs, per spec.md's "visited candidates" wording.
	allVisited []Candidate
}

// NewSearchBuffer returns an empty, ready-to-use SearchBuffer.
func NewSearchBuffer() *SearchBuffer {
	return &SearchBuffer{visited: newVisitedSet()}
}

// Clear resets the buffer to empty, defensively, at the start of every walk
// this package drives through it - see SearchWithBuffer. This resolves
// spec.md's flagged open question in favor of the index always clearing
// rather than documenting reset as the caller's burden: a stale visited
// bitmap silently corrupting results is a worse failure mode than the cost
// of an O(touched) clear.
func (b *SearchBuffer) Clear() {
	b.frontier = b.frontier[:0]
	b.best = b.best[:0]
	b.visited.clear()
	b.allVisited = b.allVisited[:0]
}

// resizeForMaxID grows internal capacity to cover the given maximum
// VectorId, amortizing future growth.
func (b *SearchBuffer) resizeForMaxID(maxID VectorId) {
	b.visited.resizeForMaxID(maxID)
}

// VisitedCandidates returns every (id, distance) pair computed during the
// most recent walk driven through this buffer, in the order they were first
// computed. Used by Index.Add as the candidate pool for robust prune.
func (b *SearchBuffer) VisitedCandidates() []Candidate {
	return b.allVisited
}
