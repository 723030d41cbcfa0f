// Command vamana is a CLI driver over pkg/vamana: build an index from a
// plain-text vector file, persist it through pkg/vstore, search a persisted
// index, and report its graph statistics.
//
// Grounded on the teacher's cmd/cli/main.go for the command set (insert,
// search, stats) it mirrors, but restructured around
// github.com/spf13/cobra the way the rest of the example pack's CLIs are -
// the teacher's own CLI predates cobra and dispatches on os.Args[1] by hand.
package main

import (
	"fmt"
	"os"

	"github.com/arannis/vamana/cmd/vamana/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
