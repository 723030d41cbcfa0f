package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arannis/vamana/pkg/config"
	"github.com/arannis/vamana/pkg/observability"
	"github.com/arannis/vamana/pkg/vamana"
	"github.com/arannis/vamana/pkg/vstore"
)

var (
	buildR     int
	buildL     int
	buildAlpha float64
	buildSeed  uint64
)

var buildCmd = &cobra.Command{
	Use:   "build <vectors.csv> <output-prefix>",
	Short: "Build an index from a plain-text vector file and persist it",
	Long: `Reads one vector per line (comma-separated float32 components) from
<vectors.csv>, builds a Vamana index over it, and writes the resulting graph
as <output-prefix>.vectors and <output-prefix>.graph.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, outputPrefix := args[0], args[1]

		raw, err := readVectorFile(inputPath)
		if err != nil {
			return err
		}

		cfg := vamana.DefaultConfig()
		cfg.R = buildR
		cfg.L = buildL
		cfg.Alpha = buildAlpha
		cfg.Seed = buildSeed

		items := make([]vamana.Item, len(raw))
		for i, v := range raw {
			items[i] = vamana.Item{ID: vamana.VectorId(i), Vector: v}
		}

		logger := observability.NewDefaultLogger()
		start := time.Now()
		idx, err := vamana.Build(items, cfg)
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
		logger.Info("build complete", map[string]interface{}{
			"points":         idx.Size(),
			"average_degree": idx.AverageDegree(),
			"elapsed":        time.Since(start).String(),
		})

		// vstore records carry no id, and loadIndex reads row i back as id
		// i, so rows are written in id order rather than Snapshot's order.
		ids, snapVectors, snapNeighbors := idx.Snapshot()
		vectors := make([][]float32, len(ids))
		neighbors := make([][]uint32, len(ids))
		for i, id := range ids {
			vectors[id] = snapVectors[i]
			neighbors[id] = snapNeighbors[i]
		}
		if err := vstore.WriteVectors(outputPrefix+".vectors", vectors); err != nil {
			return fmt.Errorf("write vectors: %w", err)
		}
		if err := vstore.WriteGraph(outputPrefix+".graph", neighbors, uint32(cfg.R)); err != nil {
			return fmt.Errorf("write graph: %w", err)
		}

		fmt.Printf("wrote %s.vectors and %s.graph (%d points, average degree %.2f)\n",
			outputPrefix, outputPrefix, idx.Size(), idx.AverageDegree())
		return nil
	},
}

func init() {
	// Flag defaults come from pkg/config, which already applies any
	// VECTOR_VAMANA_* environment overrides the way the teacher's
	// cmd/server/main.go loads its own config before wiring up flags.
	defaults := config.LoadFromEnv().Vamana
	buildCmd.Flags().IntVar(&buildR, "r", defaults.R, "maximum out-degree per node")
	buildCmd.Flags().IntVar(&buildL, "l", defaults.L, "candidate list size during build")
	buildCmd.Flags().Float64Var(&buildAlpha, "alpha", defaults.Alpha, "robust-prune slack factor")
	buildCmd.Flags().Uint64Var(&buildSeed, "seed", defaults.Seed, "seed for the deterministic build shuffle")
	rootCmd.AddCommand(buildCmd)
}
