// Package vamana implements an in-memory Vamana/DiskANN-style proximity
// graph: a single-layer navigable small-world graph built by repeated
// greedy-search-then-robust-prune insertion, searched by bounded best-first
// beam search.
package vamana

import "fmt"

// VectorId identifies a vector stored in an Index. Callers allocate ids;
// the index never generates them.
type VectorId uint32

// Item pairs a VectorId with the vector to insert under it, the unit Build
// and Add operate on.
type Item struct {
	ID     VectorId
	Vector []float32
}

// SearchResult is one hit returned by a search operation, ordered by
// ascending Distance.
type SearchResult struct {
	ID       VectorId
	Distance float32
}

// Config holds the four construction/search knobs spec.md names: the
// maximum out-degree R, the search/build list size L, the pruning slack
// factor Alpha, and the Seed for the deterministic build-time shuffle.
type Config struct {
	// R is the maximum number of neighbors retained per node after pruning.
	R int
	// L is the candidate list size used during greedy search, both at build
	// time and as the default for Search when no explicit beam width is
	// given.
	L int
	// Alpha is the robust-prune slack factor; must be >= 1.0.
	Alpha float64
	// Seed drives the deterministic Fisher-Yates shuffle Build applies to
	// its input before sequential insertion.
	Seed uint64
	// MedoidRefreshEvery amortizes medoid recomputation: the entry point is
	// recomputed every MedoidRefreshEvery successful inserts rather than
	// after each one. A value <= 1 recomputes on every insert.
	MedoidRefreshEvery int
	// MedoidSampleSize bounds how many points are sampled when estimating
	// the medoid; 0 selects a built-in default.
	MedoidSampleSize int
	// RepairOnDelete controls whether Remove fully re-prunes each surviving
	// neighbor of a deleted node (true, the default a caller should pick)
	// or only strips the dangling edge and leaves the neighbor's list as-is.
	RepairOnDelete bool
}

// DefaultConfig returns the configuration spec.md documents as the
// reasonable default: R=64, L=100, Alpha=1.2, Seed=42.
func DefaultConfig() Config {
	return Config{
		R:                  64,
		L:                  100,
		Alpha:              1.2,
		Seed:               42,
		MedoidRefreshEvery: 1,
		MedoidSampleSize:   1000,
		RepairOnDelete:     true,
	}
}

// Validate checks the configuration against the invariants spec.md places
// on R, L and Alpha, returning an *ConfigError wrapping
// ErrInvalidConfiguration on the first violation found.
func (c Config) Validate() error {
	if c.R <= 0 {
		return newConfigError("R", fmt.Sprintf("must be positive, got %d", c.R))
	}
	if c.L <= 0 {
		return newConfigError("L", fmt.Sprintf("must be positive, got %d", c.L))
	}
	if c.Alpha < 1.0 {
		return newConfigError("Alpha", fmt.Sprintf("must be >= 1.0, got %f", c.Alpha))
	}
	return nil
}
