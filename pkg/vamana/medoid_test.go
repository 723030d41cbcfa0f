package vamana

import (
	"testing"

	"github.com/arannis/vamana/internal/rng"
)

func TestComputeMedoidEmptyGraph(t *testing.T) {
	g := newGraph()
	_, ok := g.computeMedoid(SquaredL2, 10, rng.New(1))
	if ok {
		t.Fatal("expected no medoid for an empty graph")
	}
}

func TestComputeMedoidPrefersCentralNode(t *testing.T) {
	g := newGraph()
	g.insert(&Node{ID: 0, Vector: []float32{0, 0}})
	g.insert(&Node{ID: 1, Vector: []float32{10, 0}})
	g.insert(&Node{ID: 2, Vector: []float32{-10, 0}})
	g.insert(&Node{ID: 3, Vector: []float32{0, 10}})
	g.insert(&Node{ID: 4, Vector: []float32{0, -10}})

	id, ok := g.computeMedoid(SquaredL2, len(g.order), rng.New(1))
	if !ok {
		t.Fatal("expected a medoid")
	}
	if id != 0 {
		t.Fatalf("expected the central node 0 to be the medoid, got %d", id)
	}
}

func TestComputeMedoidDeterministicGivenSameSeed(t *testing.T) {
	g := newGraph()
	for i := 0; i < 20; i++ {
		g.insert(&Node{ID: VectorId(i), Vector: []float32{float32(i), float32(i * 2)}})
	}
	id1, _ := g.computeMedoid(SquaredL2, 5, rng.New(99))
	id2, _ := g.computeMedoid(SquaredL2, 5, rng.New(99))
	if id1 != id2 {
		t.Fatalf("expected identical medoid for identical seed, got %d vs %d", id1, id2)
	}
}

func TestComputeMedoidTieBreaksBySmallestID(t *testing.T) {
	g := newGraph()
	// Two nodes coincide exactly, so every sample distance ties between
	// them; the tie must resolve toward the smaller id regardless of
	// insertion or map iteration order.
	g.insert(&Node{ID: 5, Vector: []float32{0, 0}})
	g.insert(&Node{ID: 2, Vector: []float32{0, 0}})
	g.insert(&Node{ID: 9, Vector: []float32{1, 1}})

	id, ok := g.computeMedoid(SquaredL2, len(g.order), rng.New(1))
	if !ok {
		t.Fatal("expected a medoid")
	}
	if id != 2 {
		t.Fatalf("expected tie broken toward smallest id 2, got %d", id)
	}
}
