package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scigolib/fdt"
)

func newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE.dtb",
		Short: "Write a DTS-like text rendering of a DTB to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			f, err := fdt.Parse(buf)
			if err != nil {
				return err
			}
			return f.WriteDTS(cmd.OutOrStdout())
		},
	}
}
