package vamana

import (
	"time"

	"github.com/arannis/vamana/pkg/observability"
)

// InstrumentedIndex wraps an *Index to record Prometheus metrics around
// every operation, keeping the core itself free of any third-party call on
// its hot path (per spec.md §5's "no I/O on the search path" constraint).
// Grounded on pkg/search/cache.go's pattern of wrapping a plain structure
// with stats tracking rather than baking instrumentation into the
// structure itself.
type InstrumentedIndex struct {
	*Index
	metrics *observability.Metrics
}

// Instrument wraps idx with metrics recording.
func Instrument(idx *Index, metrics *observability.Metrics) *InstrumentedIndex {
	return &InstrumentedIndex{Index: idx, metrics: metrics}
}

func (ii *InstrumentedIndex) Add(id VectorId, vector []float32) error {
	err := ii.Index.Add(id, vector)
	if err == nil {
		ii.metrics.RecordInsert()
		ii.metrics.UpdateGraphStats(ii.Index.Size(), ii.Index.AverageDegree())
	}
	return err
}

func (ii *InstrumentedIndex) Remove(id VectorId) error {
	err := ii.Index.Remove(id)
	if err == nil {
		ii.metrics.RecordDelete()
		ii.metrics.UpdateGraphStats(ii.Index.Size(), ii.Index.AverageDegree())
	}
	return err
}

func (ii *InstrumentedIndex) Search(query []float32, k int) ([]SearchResult, error) {
	return ii.SearchWithBeam(query, k, ii.Index.Config().L)
}

func (ii *InstrumentedIndex) SearchWithBeam(query []float32, k int, beamWidth int) ([]SearchResult, error) {
	buf := NewSearchBuffer()
	return ii.SearchWithBuffer(query, k, beamWidth, buf)
}

func (ii *InstrumentedIndex) SearchWithBuffer(query []float32, k int, beamWidth int, buf *SearchBuffer) ([]SearchResult, error) {
	start := time.Now()
	results, err := ii.Index.SearchWithBuffer(query, k, beamWidth, buf)
	if err == nil {
		ii.metrics.RecordSearch(time.Since(start), len(buf.VisitedCandidates()))
	}
	return results, err
}

// BuildInstrumented runs Build and records the resulting index's build
// duration and initial graph stats.
func BuildInstrumented(items []Item, cfg Config, metrics *observability.Metrics) (*InstrumentedIndex, error) {
	start := time.Now()
	idx, err := Build(items, cfg)
	if err != nil {
		return nil, err
	}
	metrics.RecordBuild(time.Since(start))
	metrics.UpdateGraphStats(idx.Size(), idx.AverageDegree())
	return Instrument(idx, metrics), nil
}
