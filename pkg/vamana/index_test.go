package vamana

import (
	"errors"
	"testing"
)

func unitSquareCorners() []Item {
	return []Item{
		{ID: 0, Vector: []float32{0, 0}},
		{ID: 1, Vector: []float32{0, 1}},
		{ID: 2, Vector: []float32{1, 0}},
		{ID: 3, Vector: []float32{1, 1}},
		{ID: 4, Vector: []float32{0.5, 0}},
		{ID: 5, Vector: []float32{0, 0.5}},
		{ID: 6, Vector: []float32{1, 0.5}},
		{ID: 7, Vector: []float32{0.5, 1}},
	}
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.R = 4
	cfg.L = 8
	cfg.Alpha = 1.0
	cfg.Seed = 42
	return cfg
}

// S3: Determinism. Build twice with the same seed/config; degree
// distributions must match element-wise.
func TestScenarioDeterministicBuild(t *testing.T) {
	cfg := smallConfig()
	idx1, err := Build(unitSquareCorners(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	idx2, err := Build(unitSquareCorners(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	d1 := idx1.DegreeDistribution()
	d2 := idx2.DegreeDistribution()
	if len(d1) != len(d2) {
		t.Fatalf("degree distribution length differs: %d vs %d", len(d1), len(d2))
	}
	// DegreeDistribution is reported in insertion order, which the shuffle
	// makes identical across builds with the same seed, so a direct
	// element-wise comparison is valid.
	for i := range d1 {
		if d1[i] != d2[i] {
			t.Fatalf("degree distribution differs at %d: %d vs %d", i, d1[i], d2[i])
		}
	}
	if idx1.AverageDegree() != idx2.AverageDegree() {
		t.Fatalf("average degree differs: %f vs %f", idx1.AverageDegree(), idx2.AverageDegree())
	}
}

// S4: Delete-then-search.
func TestScenarioDeleteThenSearch(t *testing.T) {
	idx, err := NewIndex(smallConfig(), SquaredL2Distance)
	if err != nil {
		t.Fatal(err)
	}
	vecs := []Item{
		{ID: 0, Vector: []float32{1, 0, 0, 0}},
		{ID: 1, Vector: []float32{0, 1, 0, 0}},
		{ID: 2, Vector: []float32{0, 0, 1, 0}},
		{ID: 3, Vector: []float32{0, 0, 0, 1}},
		{ID: 4, Vector: []float32{0.5, 0.5, 0, 0}},
	}
	for _, v := range vecs {
		if err := idx.Add(v.ID, v.Vector); err != nil {
			t.Fatal(err)
		}
	}
	if err := idx.Remove(4); err != nil {
		t.Fatal(err)
	}

	results, err := idx.Search([]float32{0.45, 0.45, 0, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	allowed := map[VectorId]bool{0: true, 1: true, 2: true, 3: true}
	for _, r := range results {
		if r.ID == 4 {
			t.Fatal("deleted id 4 appeared in search results")
		}
		if !allowed[r.ID] {
			t.Fatalf("unexpected id %d in results", r.ID)
		}
	}
}

func TestRemoveAbsentIdIsNoop(t *testing.T) {
	idx, err := NewIndex(smallConfig(), SquaredL2Distance)
	if err != nil {
		t.Fatal(err)
	}
	if err := idx.Add(0, []float32{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := idx.Remove(999); err != nil {
		t.Fatalf("Remove on absent id should be a no-op, got error: %v", err)
	}
	if idx.Size() != 1 {
		t.Fatalf("expected size unchanged at 1, got %d", idx.Size())
	}
}

func TestAddDuplicateIdReturnsError(t *testing.T) {
	idx, err := NewIndex(smallConfig(), SquaredL2Distance)
	if err != nil {
		t.Fatal(err)
	}
	if err := idx.Add(0, []float32{1, 2}); err != nil {
		t.Fatal(err)
	}
	err = idx.Add(0, []float32{3, 4})
	if !errors.Is(err, ErrDuplicateId) {
		t.Fatalf("expected ErrDuplicateId, got %v", err)
	}
}

func TestAddDimensionMismatchReturnsError(t *testing.T) {
	idx, err := NewIndex(smallConfig(), SquaredL2Distance)
	if err != nil {
		t.Fatal(err)
	}
	if err := idx.Add(0, []float32{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	err = idx.Add(1, []float32{1, 2})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestBuildEmptyInputReturnsError(t *testing.T) {
	_, err := Build(nil, DefaultConfig())
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestSearchEmptyGraphReturnsEmpty(t *testing.T) {
	idx, err := NewIndex(smallConfig(), SquaredL2Distance)
	if err != nil {
		t.Fatal(err)
	}
	results, err := idx.Search([]float32{1, 2}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results on empty graph, got %v", results)
	}
}

func TestSearchKZeroReturnsEmpty(t *testing.T) {
	idx, err := NewIndex(smallConfig(), SquaredL2Distance)
	if err != nil {
		t.Fatal(err)
	}
	if err := idx.Add(0, []float32{1, 2}); err != nil {
		t.Fatal(err)
	}
	results, err := idx.Search([]float32{1, 2}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results for k=0, got %v", results)
	}
}

// Graph invariants after a build: degree bound, no self-loops, neighbor
// resolution, reachability.
func TestGraphInvariantsAfterBuild(t *testing.T) {
	idx, err := Build(unitSquareCorners(), smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	for id, node := range idx.g.nodes {
		if len(node.Neighbors) > idx.cfg.R {
			t.Errorf("node %d has %d neighbors > R=%d", id, len(node.Neighbors), idx.cfg.R)
		}
		seen := map[VectorId]bool{}
		for _, nb := range node.Neighbors {
			if nb == id {
				t.Errorf("node %d lists itself as a neighbor", id)
			}
			if seen[nb] {
				t.Errorf("node %d has duplicate neighbor %d", id, nb)
			}
			seen[nb] = true
			if _, ok := idx.g.nodes[nb]; !ok {
				t.Errorf("node %d has neighbor %d which does not exist", id, nb)
			}
		}
	}
}

func TestReachabilityWithinKHops(t *testing.T) {
	idx, err := Build(unitSquareCorners(), smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	entry, ok := idx.EntryPoint()
	if !ok {
		t.Fatal("expected entry point on non-empty index")
	}
	reachable := 0
	total := 0
	for id := VectorId(0); id < 8; id++ {
		if id == entry {
			continue
		}
		total++
		if idx.IsReachableWithinKHops(entry, id, 20) {
			reachable++
		}
	}
	if reachable < total/2 {
		t.Fatalf("expected most nodes reachable within 20 hops, got %d/%d", reachable, total)
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid", DefaultConfig(), true},
		{"zero R", Config{R: 0, L: 10, Alpha: 1.0}, false},
		{"zero L", Config{R: 10, L: 0, Alpha: 1.0}, false},
		{"L less than R is not itself invalid", Config{R: 64, L: 50, Alpha: 1.0}, true},
		{"alpha below 1", Config{R: 10, L: 10, Alpha: 0.5}, false},
	}
	for _, c := range cases {
		err := c.cfg.Validate()
		if c.ok && err != nil {
			t.Errorf("%s: expected valid, got error %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s: expected invalid configuration error, got nil", c.name)
		}
		if !c.ok && !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%s: expected ErrInvalidConfiguration, got %v", c.name, err)
		}
	}
}

func TestResultOrdering(t *testing.T) {
	idx, err := Build(unitSquareCorners(), smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	results, err := idx.Search([]float32{0.5, 0.5}, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Distance > results[i].Distance {
			t.Fatalf("results not sorted ascending by distance: %v", results)
		}
		if results[i-1].Distance == results[i].Distance && results[i-1].ID > results[i].ID {
			t.Fatalf("tie not broken by ascending id: %v", results)
		}
	}
}
