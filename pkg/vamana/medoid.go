package vamana

import (
	"math"

	"github.com/arannis/vamana/internal/rng"
)

// defaultMedoidSampleSize is used when Config.MedoidSampleSize is zero.
const defaultMedoidSampleSize = 1000

// computeMedoid estimates the graph's medoid (C7): the node with minimum
// average distance to a random sample of distinct nodes, rather than the exact
// medoid (which would cost O(n^2)). Grounded on pkg/diskann/build.go's
// findMedoid, which already samples for the same reason; generalized to
// take a seeded rng.Source instead of math/rand so the choice is
// reproducible given the same seed, matching spec.md §9's determinism
// requirement.
//
// Ties are broken by smallest VectorId, so the result depends only on the
// (sample draw, distances) pair and never on map iteration order.
func (g *graph) computeMedoid(dist distanceFunc, sampleSize int, src *rng.Source) (VectorId, bool) {
	n := len(g.order)
	if n == 0 {
		return 0, false
	}
	if sampleSize <= 0 {
		sampleSize = defaultMedoidSampleSize
	}
	if sampleSize > n {
		sampleSize = n
	}

	// Partial Fisher-Yates over a copy of the order slice: the sample holds
	// sampleSize distinct nodes, so a full-size sample is every node.
	pool := append([]VectorId(nil), g.order...)
	samples := make([]VectorId, sampleSize)
	for i := 0; i < sampleSize; i++ {
		j := i + src.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
		samples[i] = pool[i]
	}
	sampleVecs := make([][]float32, sampleSize)
	for i, id := range samples {
		sampleVecs[i] = g.nodes[id].Vector
	}

	bestID := g.order[0]
	bestAvg := float32(math.Inf(1))
	for _, id := range g.order {
		vec := g.nodes[id].Vector
		var total float32
		for _, sv := range sampleVecs {
			total += dist(vec, sv)
		}
		avg := total / float32(sampleSize)
		if avg < bestAvg || (avg == bestAvg && id < bestID) {
			bestAvg = avg
			bestID = id
		}
	}
	return bestID, true
}
