package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arannis/vamana/pkg/vamana"
)

var (
	searchK         int
	searchBeamWidth int
)

var searchCmd = &cobra.Command{
	Use:   "search <index-prefix> <query-vector>",
	Short: "Search a persisted index for the nearest neighbors of a query",
	Long: `Loads the <index-prefix>.vectors/<index-prefix>.graph pair written by
"vamana build" and returns the k nearest neighbors of <query-vector>, a
comma-separated list of float32 components. Results are printed as JSON.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix, queryStr := args[0], args[1]

		query, err := parseVector(queryStr)
		if err != nil {
			return fmt.Errorf("query vector: %w", err)
		}

		idx, err := loadIndex(prefix, vamana.DefaultConfig())
		if err != nil {
			return err
		}

		beamWidth := searchBeamWidth
		if beamWidth <= 0 {
			beamWidth = idx.Config().L
		}
		results, err := idx.SearchWithBeam(query, searchK, beamWidth)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func parseVector(s string) ([]float32, error) {
	fields := strings.Split(s, ",")
	vec := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid component %q: %w", f, err)
		}
		vec[i] = float32(v)
	}
	return vec, nil
}

func init() {
	searchCmd.Flags().IntVar(&searchK, "k", 10, "number of results to return")
	searchCmd.Flags().IntVar(&searchBeamWidth, "beam-width", 0, "candidate list size (defaults to the index's L)")
	rootCmd.AddCommand(searchCmd)
}
