// Package commands holds the vamana CLI's cobra command tree.
package commands

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "vamana",
	Short: "Build, search, and inspect vamana proximity-graph indexes",
	Long: `vamana builds and queries an approximate nearest-neighbor index using the
Vamana proximity-graph algorithm.

An index lives on disk as a pair of pkg/vstore files: <prefix>.vectors and
<prefix>.graph. "vamana build" produces that pair from a plain-text vector
file; "vamana search" and "vamana stats" read it back.`,
}

// Execute runs the CLI, returning the first error any subcommand reports.
func Execute() error {
	return rootCmd.Execute()
}
