package vamana

import "container/heap"

// frontierHeap is a min-heap of unexpanded candidates ordered by
// candidateLess, the beam search frontier (C2). Grounded on
// pkg/diskann/search.go's MinHeap, generalized off uint64 IDs onto VectorId
// and given the explicit ascending-id tiebreak spec.md's reproducibility
// properties require.
type frontierHeap []Candidate

func (h frontierHeap) Len() int            { return len(h) }
func (h frontierHeap) Less(i, j int) bool  { return candidateLess(h[i], h[j]) }
func (h frontierHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *frontierHeap) Push(x interface{}) { *h = append(*h, x.(Candidate)) }
func (h *frontierHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func (h *frontierHeap) push(c Candidate) { heap.Push(h, c) }
func (h *frontierHeap) pop() Candidate   { return heap.Pop(h).(Candidate) }
func (h frontierHeap) peek() Candidate   { return h[0] }

// bestHeap is a bounded max-heap of the best candidates seen so far: the
// largest-distance (worst) candidate sits at the root so it can be evicted
// in O(log n) once the heap exceeds its target size. Grounded on
// pkg/diskann/search.go's MaxHeap.
type bestHeap []Candidate

func (h bestHeap) Len() int      { return len(h) }
func (h bestHeap) Less(i, j int) bool {
	// Reversed candidateLess: the worst (largest distance, then largest id)
	// candidate compares as "least" so it bubbles to the root of this
	// max-heap.
	return candidateLess(h[j], h[i])
}
func (h bestHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *bestHeap) Push(x interface{}) { *h = append(*h, x.(Candidate)) }
func (h *bestHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func (h *bestHeap) push(c Candidate) { heap.Push(h, c) }
func (h *bestHeap) popWorst() Candidate { return heap.Pop(h).(Candidate) }
func (h bestHeap) worst() Candidate     { return h[0] }

// sorted returns the heap's contents ordered by candidateLess (ascending
// distance, then id), without mutating the heap.
func (h bestHeap) sorted() []Candidate {
	out := make([]Candidate, len(h))
	copy(out, h)
	insertionSortCandidates(out)
	return out
}

// insertionSortCandidates sorts small slices of candidates in place.
// Insertion sort rather than sort.Slice: the slices this package sorts are
// bounded by L (typically a few hundred at most), and avoiding the
// interface-based less/swap indirection of sort.Slice keeps this off the
// allocation path SearchBuffer exists to eliminate.
func insertionSortCandidates(s []Candidate) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && candidateLess(v, s[j]) {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}
