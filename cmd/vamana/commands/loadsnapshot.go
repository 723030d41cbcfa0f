package commands

import (
	"fmt"

	"github.com/arannis/vamana/pkg/vamana"
	"github.com/arannis/vamana/pkg/vstore"
)

// loadIndex reads an <prefix>.vectors/<prefix>.graph pair written by "vamana
// build" and reconstructs an in-memory Index over them.
func loadIndex(prefix string, cfg vamana.Config) (*vamana.Index, error) {
	vf, err := vstore.OpenVectorFile(prefix + ".vectors")
	if err != nil {
		return nil, fmt.Errorf("open vectors: %w", err)
	}
	defer vf.Close()

	gf, err := vstore.OpenGraphFile(prefix + ".graph")
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer gf.Close()

	numPoints := int(vf.Header().NumPoints)
	if numPoints != int(gf.Header().NumNodes) {
		return nil, fmt.Errorf("vector file has %d points but graph file has %d nodes", numPoints, gf.Header().NumNodes)
	}

	ids := make([]vamana.VectorId, numPoints)
	vectors := make([][]float32, numPoints)
	neighbors := make([][]uint32, numPoints)
	for i := 0; i < numPoints; i++ {
		vec, err := vf.ReadVector(i)
		if err != nil {
			return nil, fmt.Errorf("read vector %d: %w", i, err)
		}
		nbs, err := gf.ReadNeighbors(i)
		if err != nil {
			return nil, fmt.Errorf("read neighbors %d: %w", i, err)
		}
		ids[i] = vamana.VectorId(i)
		vectors[i] = vec
		neighbors[i] = nbs
	}

	cfg.R = int(gf.Header().R)
	return vamana.LoadSnapshot(ids, vectors, neighbors, cfg, vamana.SquaredL2Distance)
}
