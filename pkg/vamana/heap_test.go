package vamana

import "testing"

func TestFrontierHeapOrdering(t *testing.T) {
	var h frontierHeap
	h.push(Candidate{ID: 3, Distance: 5})
	h.push(Candidate{ID: 1, Distance: 2})
	h.push(Candidate{ID: 2, Distance: 2})
	h.push(Candidate{ID: 4, Distance: 9})

	var order []Candidate
	for h.Len() > 0 {
		order = append(order, h.pop())
	}
	want := []Candidate{{1, 2}, {2, 2}, {3, 5}, {4, 9}}
	for i, c := range want {
		if order[i] != c {
			t.Fatalf("position %d: got %+v, want %+v", i, order[i], c)
		}
	}
}

func TestBestHeapBoundsToL(t *testing.T) {
	var h bestHeap
	lp := 3
	input := []Candidate{{1, 5}, {2, 1}, {3, 4}, {4, 2}, {5, 3}}
	for _, c := range input {
		h.push(c)
		if h.Len() > lp {
			h.popWorst()
		}
	}
	if h.Len() != lp {
		t.Fatalf("expected heap bounded to %d, got %d", lp, h.Len())
	}
	sorted := h.sorted()
	wantIDs := map[VectorId]bool{2: true, 4: true, 5: true}
	for _, c := range sorted {
		if !wantIDs[c.ID] {
			t.Errorf("unexpected id %d kept in bounded best heap: %v", c.ID, sorted)
		}
	}
}

func TestCandidateLessTieBreak(t *testing.T) {
	a := Candidate{ID: 5, Distance: 1.0}
	b := Candidate{ID: 2, Distance: 1.0}
	if !candidateLess(b, a) {
		t.Fatal("expected smaller id to sort first on distance tie")
	}
}
