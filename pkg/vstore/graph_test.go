package vstore

import (
	"path/filepath"
	"testing"
)

func TestWriteReadGraphRoundTrip(t *testing.T) {
	neighbors := [][]uint32{
		{1, 2},
		{0, 2, 3},
		{0, 1},
		{1},
	}
	path := filepath.Join(t.TempDir(), "graph.vstore")
	if err := WriteGraph(path, neighbors, 4); err != nil {
		t.Fatal(err)
	}

	gf, err := OpenGraphFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer gf.Close()

	header := gf.Header()
	if header.NumNodes != uint32(len(neighbors)) {
		t.Fatalf("expected NumNodes=%d, got %d", len(neighbors), header.NumNodes)
	}
	if header.R != 4 {
		t.Fatalf("expected R=4, got %d", header.R)
	}

	for i, want := range neighbors {
		got, err := gf.ReadNeighbors(i)
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

func TestWriteGraphRejectsOverdegreeNode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.vstore")
	err := WriteGraph(path, [][]uint32{{1, 2, 3}}, 2)
	if err == nil {
		t.Fatal("expected an error when a node's neighbor list exceeds R")
	}
}

func TestReadNeighborsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.vstore")
	if err := WriteGraph(path, [][]uint32{{1}}, 2); err != nil {
		t.Fatal(err)
	}
	gf, err := OpenGraphFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer gf.Close()

	if _, err := gf.ReadNeighbors(9); err == nil {
		t.Fatal("expected an error for an out-of-range node index")
	}
}

func TestWriteGraphZeroPadsPastDegree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.vstore")
	if err := WriteGraph(path, [][]uint32{{5}}, 3); err != nil {
		t.Fatal(err)
	}
	gf, err := OpenGraphFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer gf.Close()

	got, err := gf.ReadNeighbors(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("expected degree-trimmed result [5], got %v", got)
	}
}
