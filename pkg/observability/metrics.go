package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics recorded around a vamana.Index.
// Adapted from the teacher's vectordb-server Metrics struct: the
// request/cache/tenant groupings that backed its gRPC/REST surface are
// dropped (that surface isn't part of this system, and multi-tenant
// namespacing is an explicit non-goal), replaced with the index-shaped
// series an embeddable ANN library actually has to report - graph size,
// degree, and the cost of building and searching it.
type Metrics struct {
	GraphSize          prometheus.Gauge
	AverageDegree      prometheus.Gauge
	BuildDuration      prometheus.Histogram
	SearchDuration     prometheus.Histogram
	SearchVisitedNodes prometheus.Histogram
	VectorsInserted    prometheus.Counter
	VectorsDeleted     prometheus.Counter
	VectorsSearched    prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics for a vamana
// index on the default Prometheus registry (through promauto). A second call
// in the same process panics on duplicate registration, so a process
// constructs exactly one Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		GraphSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "vamana_graph_size",
				Help: "Number of vectors currently in the index",
			},
		),
		AverageDegree: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "vamana_average_degree",
				Help: "Mean out-degree across all nodes in the proximity graph",
			},
		),
		BuildDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vamana_build_duration_seconds",
				Help:    "Wall-clock time to build an index from a batch of items",
				Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
		),
		SearchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vamana_search_duration_seconds",
				Help:    "Search latency in seconds",
				Buckets: []float64{.0001, .0005, .001, .0025, .005, .01, .025, .05, .1, .25},
			},
		),
		SearchVisitedNodes: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vamana_search_visited_nodes",
				Help:    "Number of distinct nodes visited per search",
				Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
			},
		),
		VectorsInserted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "vamana_vectors_inserted_total",
				Help: "Total number of vectors inserted",
			},
		),
		VectorsDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "vamana_vectors_deleted_total",
				Help: "Total number of vectors deleted",
			},
		),
		VectorsSearched: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "vamana_vectors_searched_total",
				Help: "Total number of search operations",
			},
		),
	}
}

// RecordInsert records a vector insertion.
func (m *Metrics) RecordInsert() {
	m.VectorsInserted.Inc()
}

// RecordDelete records a vector deletion.
func (m *Metrics) RecordDelete() {
	m.VectorsDeleted.Inc()
}

// RecordSearch records a search operation's latency and how many nodes it
// visited.
func (m *Metrics) RecordSearch(duration time.Duration, visited int) {
	m.VectorsSearched.Inc()
	m.SearchDuration.Observe(duration.Seconds())
	m.SearchVisitedNodes.Observe(float64(visited))
}

// RecordBuild records a completed build's duration.
func (m *Metrics) RecordBuild(duration time.Duration) {
	m.BuildDuration.Observe(duration.Seconds())
}

// UpdateGraphStats refreshes the graph-size and average-degree gauges.
func (m *Metrics) UpdateGraphStats(size int, averageDegree float64) {
	m.GraphSize.Set(float64(size))
	m.AverageDegree.Set(averageDegree)
}
