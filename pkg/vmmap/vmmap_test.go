package vmmap

import (
	"path/filepath"
	"testing"

	"github.com/arannis/vamana/pkg/vstore"
)

func TestOpenVectorsMatchesWrittenData(t *testing.T) {
	vectors := [][]float32{
		{1, 2, 3},
		{-4.5, 0, 9.75},
	}
	path := filepath.Join(t.TempDir(), "vectors.vstore")
	if err := vstore.WriteVectors(path, vectors); err != nil {
		t.Fatal(err)
	}

	view, err := OpenVectors(path)
	if err != nil {
		t.Fatal(err)
	}
	defer view.Close()

	if view.NumPoints() != len(vectors) {
		t.Fatalf("expected %d points, got %d", len(vectors), view.NumPoints())
	}
	if view.Dimension() != 3 {
		t.Fatalf("expected dimension 3, got %d", view.Dimension())
	}

	for i, want := range vectors {
		got, err := view.Vector(i)
		if err != nil {
			t.Fatal(err)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("point %d, component %d: got %f want %f", i, j, got[j], want[j])
			}
		}
	}

	if _, err := view.Vector(len(vectors)); err == nil {
		t.Fatal("expected an error for an out-of-range point index")
	}
}

func TestOpenGraphMatchesWrittenData(t *testing.T) {
	neighbors := [][]uint32{
		{1, 2},
		{0},
		{0, 1, 3},
	}
	path := filepath.Join(t.TempDir(), "graph.vstore")
	if err := vstore.WriteGraph(path, neighbors, 3); err != nil {
		t.Fatal(err)
	}

	view, err := OpenGraph(path)
	if err != nil {
		t.Fatal(err)
	}
	defer view.Close()

	if view.NumNodes() != len(neighbors) {
		t.Fatalf("expected %d nodes, got %d", len(neighbors), view.NumNodes())
	}
	if view.R() != 3 {
		t.Fatalf("expected R=3, got %d", view.R())
	}

	for i, want := range neighbors {
		got, err := view.Neighbors(i)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(want) {
			t.Fatalf("node %d: expected degree %d, got %d", i, len(want), len(got))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("node %d, neighbor %d: got %d want %d", i, j, got[j], want[j])
			}
		}
	}
}
