package vamana

import (
	"fmt"
	"sync"

	"github.com/arannis/vamana/internal/rng"
	"github.com/arannis/vamana/pkg/observability"
)

// Index is the public surface of the core package: an in-memory Vamana
// proximity graph, searchable and incrementally mutable. Grounded on
// pkg/diskann/index.go's field-for-field style (config knobs, a
// sync.RWMutex guarding everything, a dimension fixed by the first insert),
// extended to the full operation set spec.md §6 names.
type Index struct {
	mu  sync.RWMutex
	cfg Config

	dist   Distance
	distFn distanceFunc

	g         *graph
	dimension int

	rngSrc       *rng.Source
	sinceRefresh int

	logger *observability.Logger
}

// NewIndex returns an empty Index ready for incremental Add calls. Most
// callers building from a known dataset up front should prefer Build.
func NewIndex(cfg Config, dist Distance) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Index{
		cfg:    cfg,
		dist:   dist,
		distFn: dist.Distance,
		g:      newGraph(),
		rngSrc: rng.New(cfg.Seed),
	}, nil
}

// SetLogger attaches a logger that Add/Remove/Build use for phase-boundary
// progress lines. A nil logger (the default) disables logging entirely.
func (idx *Index) SetLogger(l *observability.Logger) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.logger = l
}

func (idx *Index) logDebug(msg string, fields map[string]interface{}) {
	if idx.logger != nil {
		idx.logger.Debug(msg, fields)
	}
}

// Size returns the number of vectors currently in the index.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.g.size()
}

// Dimension returns the vector dimensionality fixed by the first Add, or 0
// if the index is empty.
func (idx *Index) Dimension() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dimension
}

// Config returns a copy of the index's configuration.
func (idx *Index) Config() Config {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.cfg
}

// Search returns the k nearest neighbors of query using the index's
// configured L as the beam width.
func (idx *Index) Search(query []float32, k int) ([]SearchResult, error) {
	return idx.SearchWithBeam(query, k, idx.Config().L)
}

// SearchWithBeam returns the k nearest neighbors of query, using beamWidth
// (widened per §4.4's L'=max(L,2k) rule) as the candidate list size. Each
// call allocates its own SearchBuffer; callers issuing many searches should
// use SearchWithBuffer instead to avoid repeated allocation.
func (idx *Index) SearchWithBeam(query []float32, k int, beamWidth int) ([]SearchResult, error) {
	buf := NewSearchBuffer()
	return idx.SearchWithBuffer(query, k, beamWidth, buf)
}

// SearchWithBuffer is SearchWithBeam but driven through a caller-supplied,
// reusable SearchBuffer (C3) - the zero-allocation warm path. The buffer is
// cleared at the start of the call regardless of its prior contents.
func (idx *Index) SearchWithBuffer(query []float32, k int, beamWidth int, buf *SearchBuffer) ([]SearchResult, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if idx.dimension != 0 && len(query) != idx.dimension {
		return nil, newDimensionError(idx.dimension, len(query))
	}
	if k <= 0 {
		return nil, nil
	}
	lp := beamL(beamWidth, k)
	return idx.g.searchTopK(idx.distFn, query, k, lp, buf), nil
}

// AverageDegree returns the mean out-degree across all nodes, 0 if empty.
func (idx *Index) AverageDegree() float64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	degrees := idx.g.degrees()
	if len(degrees) == 0 {
		return 0
	}
	var total int
	for _, d := range degrees {
		total += d
	}
	return float64(total) / float64(len(degrees))
}

// DegreeDistribution returns every node's out-degree, in the graph's order:
// insertion order, except that each Remove moves the most recently placed
// node into the removed node's position.
func (idx *Index) DegreeDistribution() []int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.g.degrees()
}

// IsReachableWithinKHops reports whether to is reachable from from by
// following at most k forward Neighbors edges - a bounded BFS diagnostic,
// grounded in diskann-impl/tests/beam_search_integration.rs's own
// reachability assertions.
func (idx *Index) IsReachableWithinKHops(from, to VectorId, k int) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if from == to {
		return true
	}
	if !idx.g.contains(from) || !idx.g.contains(to) {
		return false
	}
	frontier := []VectorId{from}
	visited := map[VectorId]bool{from: true}
	for hop := 0; hop < k && len(frontier) > 0; hop++ {
		next := make([]VectorId, 0)
		for _, id := range frontier {
			node, ok := idx.g.get(id)
			if !ok {
				continue
			}
			for _, nb := range node.Neighbors {
				if nb == to {
					return true
				}
				if !visited[nb] {
					visited[nb] = true
					next = append(next, nb)
				}
			}
		}
		frontier = next
	}
	return false
}

// EntryPoint returns the current entry point id and whether the index is
// non-empty.
func (idx *Index) EntryPoint() (VectorId, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.g.pickEntry()
}

// LoadSnapshot reconstructs an Index directly from a prior Snapshot (or an
// equivalent triple read back through pkg/vstore), without re-running the
// build algorithm. The entry point is recomputed by the same medoid sampling
// Build uses, since Snapshot doesn't persist it separately. Grounded on
// pkg/diskann/disk_graph.go's loadIndex, which replays a persisted graph's
// records into memory the same way rather than rebuilding it from scratch.
func LoadSnapshot(ids []VectorId, vectors [][]float32, neighbors [][]uint32, cfg Config, dist Distance) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(ids) != len(vectors) || len(ids) != len(neighbors) {
		return nil, fmt.Errorf("vamana: LoadSnapshot: ids, vectors and neighbors must have equal length")
	}

	idx := &Index{
		cfg:    cfg,
		dist:   dist,
		distFn: dist.Distance,
		g:      newGraph(),
		rngSrc: rng.New(cfg.Seed),
	}
	for i, id := range ids {
		if i == 0 {
			idx.dimension = len(vectors[i])
		} else if len(vectors[i]) != idx.dimension {
			return nil, newDimensionError(idx.dimension, len(vectors[i]))
		}
		nbs := make([]VectorId, len(neighbors[i]))
		for j, nb := range neighbors[i] {
			nbs[j] = VectorId(nb)
		}
		idx.g.insert(&Node{ID: id, Vector: vectors[i], Neighbors: nbs})
	}
	if entry, ok := idx.g.computeMedoid(idx.distFn, cfg.MedoidSampleSize, idx.rngSrc); ok {
		idx.g.setEntry(entry)
	}
	return idx, nil
}

// Snapshot returns every node's vector and neighbor list in the same order
// DegreeDistribution uses, for persistence through pkg/vstore. The returned
// ids give each row's VectorId; row i of vectors and row i of neighbors both
// describe the node at ids[i].
func (idx *Index) Snapshot() (ids []VectorId, vectors [][]float32, neighbors [][]uint32) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	ids = make([]VectorId, len(idx.g.order))
	vectors = make([][]float32, len(idx.g.order))
	neighbors = make([][]uint32, len(idx.g.order))
	for i, id := range idx.g.order {
		n := idx.g.nodes[id]
		ids[i] = id
		vectors[i] = n.Vector
		nbs := make([]uint32, len(n.Neighbors))
		for j, nb := range n.Neighbors {
			nbs[j] = uint32(nb)
		}
		neighbors[i] = nbs
	}
	return ids, vectors, neighbors
}
