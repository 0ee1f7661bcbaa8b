// Command fdtctl is a small command-line front end over the fdt library:
// dump a DTB as a DTS-like text rendering, round-trip one through
// parse+encode, or check it for semantic equivalence against `dtc`'s own
// decompilation. These are external collaborators layered on top of the
// library, not part of it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "fdtctl",
		Short:         "Inspect, re-encode, and verify Flattened Device Tree blobs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDumpCommand())
	root.AddCommand(newEncodeCommand())
	root.AddCommand(newDiffDTCCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fdtctl: error: %v\n", err)
		os.Exit(1)
	}
}
