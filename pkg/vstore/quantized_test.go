package vstore

import (
	"math"
	"path/filepath"
	"testing"
)

func TestWriteReadQuantizedVectorsRoundTrip(t *testing.T) {
	vectors := [][]float32{
		{0, 1, 2, 3},
		{-5, 5, 0, 2.5},
		{10, -10, 4, -4},
	}
	path := filepath.Join(t.TempDir(), "vectors.qvstore")
	if err := WriteQuantizedVectors(path, vectors); err != nil {
		t.Fatal(err)
	}

	qf, err := OpenQuantizedVectorFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer qf.Close()

	header := qf.Header()
	if header.NumPoints != int32(len(vectors)) {
		t.Fatalf("expected NumPoints=%d, got %d", len(vectors), header.NumPoints)
	}
	if header.Dimension != 4 {
		t.Fatalf("expected Dimension=4, got %d", header.Dimension)
	}

	for i, want := range vectors {
		got, err := qf.ReadVector(i)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(want) {
			t.Fatalf("point %d: length mismatch, got %d want %d", i, len(got), len(want))
		}
		for j := range want {
			// Scalar quantization is lossy; allow slack proportional to the
			// value range covered by this test's data.
			if math.Abs(float64(got[j]-want[j])) > 0.3 {
				t.Errorf("point %d, component %d: got %f want %f (tolerance exceeded)", i, j, got[j], want[j])
			}
		}
	}
}

func TestQuantizedReadOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.qvstore")
	if err := WriteQuantizedVectors(path, [][]float32{{1, 2}}); err != nil {
		t.Fatal(err)
	}
	qf, err := OpenQuantizedVectorFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer qf.Close()

	if _, err := qf.ReadVector(5); err == nil {
		t.Fatal("expected an error for an out-of-range point index")
	}
}

func TestWriteQuantizedVectorsRejectsRaggedDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.qvstore")
	err := WriteQuantizedVectors(path, [][]float32{{1, 2, 3}, {1, 2}})
	if err == nil {
		t.Fatal("expected an error for vectors of differing dimension")
	}
}

func TestWriteQuantizedVectorsRejectsEmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.qvstore")
	if err := WriteQuantizedVectors(path, nil); err == nil {
		t.Fatal("expected an error for an empty vector set")
	}
}
