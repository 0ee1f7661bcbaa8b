package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scigolib/fdt"
)

func newEncodeCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "encode FILE.dtb",
		Short: "Round-trip a DTB through parse+encode and write the result",
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
			encoded, err := f.Encode()
			if err != nil {
				return err
			}
			if out == "" {
				_, err := cmd.OutOrStdout().Write(encoded)
				return err
			}
			return os.WriteFile(out, encoded, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the re-encoded blob to `path` instead of stdout")
	return cmd
}
