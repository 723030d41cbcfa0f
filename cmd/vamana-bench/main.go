// Command vamana-bench is a standalone build/search benchmark and recall
// harness. Grounded on
// original_source/DiskANNInRust/diskann-bench/benches/search_benchmarks.rs,
// which measures the same four things (build throughput, search latency,
// QPS, recall@k against a beam-width baseline) with Criterion; this
// reimplements them as plain timed loops since Criterion has no Go
// equivalent in the pack, reporting results on stdout instead of HTML.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/arannis/vamana/internal/rng"
	"github.com/arannis/vamana/pkg/vamana"
)

func main() {
	numVectors := flag.Int("vectors", 5000, "number of vectors to index")
	dimension := flag.Int("dim", 128, "vector dimensionality")
	numQueries := flag.Int("queries", 200, "number of queries to run")
	k := flag.Int("k", 10, "neighbors per query")
	r := flag.Int("r", 64, "maximum out-degree")
	l := flag.Int("l", 100, "candidate list size during build")
	alpha := flag.Float64("alpha", 1.2, "robust-prune slack factor")
	seed := flag.Uint64("seed", 42, "data and build seed")
	flag.Parse()

	fmt.Printf("cpu features: avx2=%v asimd=%v\n\n", cpu.X86.HasAVX2, cpu.ARM64.HasASIMD)

	src := rng.New(*seed)
	items := make([]vamana.Item, *numVectors)
	for i := range items {
		vec := make([]float32, *dimension)
		for j := range vec {
			vec[j] = float32(src.Intn(2000))/1000.0 - 1.0
		}
		items[i] = vamana.Item{ID: vamana.VectorId(i), Vector: vec}
	}

	querySrc := rng.New(*seed + 1000)
	queries := make([][]float32, *numQueries)
	for i := range queries {
		vec := make([]float32, *dimension)
		for j := range vec {
			vec[j] = float32(querySrc.Intn(2000))/1000.0 - 1.0
		}
		queries[i] = vec
	}

	cfg := vamana.DefaultConfig()
	cfg.R = *r
	cfg.L = *l
	cfg.Alpha = *alpha
	cfg.Seed = *seed

	buildStart := time.Now()
	idx, err := vamana.Build(items, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build failed:", err)
		os.Exit(1)
	}
	buildElapsed := time.Since(buildStart)
	fmt.Printf("build: %d vectors, dim=%d, R=%d, L=%d -> %s (average degree %.2f)\n\n",
		*numVectors, *dimension, cfg.R, cfg.L, buildElapsed, idx.AverageDegree())

	for _, beamWidth := range []int{16, 32, 64, 128} {
		latencies := make([]time.Duration, 0, len(queries))
		start := time.Now()
		for _, q := range queries {
			qStart := time.Now()
			if _, err := idx.SearchWithBeam(q, *k, beamWidth); err != nil {
				fmt.Fprintln(os.Stderr, "search failed:", err)
				os.Exit(1)
			}
			latencies = append(latencies, time.Since(qStart))
		}
		elapsed := time.Since(start)
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		p95 := latencies[int(float64(len(latencies))*0.95)]
		qps := float64(len(queries)) / elapsed.Seconds()
		fmt.Printf("beam_width=%-4d qps=%-10.1f p95=%s\n", beamWidth, qps, p95)
	}

	fmt.Println()
	reportRecall(idx, queries, *k)
}

// reportRecall measures recall@k of a narrow beam against a wide-beam
// baseline from the same index, the same comparison
// diskann-bench/benches/search_benchmarks.rs's bench_recall_quality makes.
func reportRecall(idx *vamana.Index, queries [][]float32, k int) {
	var totalRecall float64
	for _, q := range queries {
		baseline, err := idx.SearchWithBeam(q, k, 128)
		if err != nil {
			continue
		}
		narrow, err := idx.SearchWithBeam(q, k, 32)
		if err != nil {
			continue
		}
		baselineIDs := make(map[vamana.VectorId]bool, len(baseline))
		for _, r := range baseline {
			baselineIDs[r.ID] = true
		}
		var hits int
		for _, r := range narrow {
			if baselineIDs[r.ID] {
				hits++
			}
		}
		totalRecall += float64(hits) / float64(k)
	}
	fmt.Printf("recall@%d (beam=32 vs beam=128 baseline): %.3f\n", k, totalRecall/float64(len(queries)))
}
