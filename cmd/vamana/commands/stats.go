package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arannis/vamana/pkg/vamana"
	"github.com/arannis/vamana/pkg/vstore"
)

var statsCmd = &cobra.Command{
	Use:   "stats <index-prefix>",
	Short: "Report size and graph statistics for a persisted index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := args[0]

		vf, err := vstore.OpenVectorFile(prefix + ".vectors")
		if err != nil {
			return fmt.Errorf("open vectors: %w", err)
		}
		defer vf.Close()

		idx, err := loadIndex(prefix, vamana.DefaultConfig())
		if err != nil {
			return err
		}

		distribution := idx.DegreeDistribution()
		minDeg, maxDeg := distribution[0], distribution[0]
		for _, d := range distribution {
			if d < minDeg {
				minDeg = d
			}
			if d > maxDeg {
				maxDeg = d
			}
		}

		fmt.Printf("points:         %d\n", idx.Size())
		fmt.Printf("dimension:      %d\n", idx.Dimension())
		fmt.Printf("R:              %d\n", idx.Config().R)
		fmt.Printf("average degree: %.2f\n", idx.AverageDegree())
		fmt.Printf("min/max degree: %d / %d\n", minDeg, maxDeg)
		if entry, ok := idx.EntryPoint(); ok {
			fmt.Printf("entry point:    %d\n", entry)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
