package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/scigolib/fdt"
)

// newDiffDTCCommand implements the equivalence test harness described in
// spec.md §6: decompile the original DTB and a parse+encode round-trip of
// it with an external dtc, then diff the two DTS texts. It exits 0 on
// match, nonzero otherwise — a CI-style check, not a library API.
func newDiffDTCCommand() *cobra.Command {
	var dtcPath string
	cmd := &cobra.Command{
		Use:   "diff-dtc FILE.dtb",
		Short: "Compare dtc(original) against dtc(encode(parse(original)))",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			buf, err := os.ReadFile(src)
			if err != nil {
				return err
			}
			f, err := fdt.Parse(buf)
			if err != nil {
				return fmt.Errorf("parse %s: %w", src, err)
			}
			roundTripped, err := f.Encode()
			if err != nil {
				return fmt.Errorf("encode %s: %w", src, err)
			}

			wantDTS, err := decompileWithDTC(dtcPath, buf)
			if err != nil {
				return fmt.Errorf("dtc(original): %w", err)
			}
			gotDTS, err := decompileWithDTC(dtcPath, roundTripped)
			if err != nil {
				return fmt.Errorf("dtc(encode(parse(original))): %w", err)
			}

			if wantDTS == gotDTS {
				fmt.Fprintln(cmd.OutOrStdout(), "equivalent")
				return nil
			}

			diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(wantDTS),
				B:        difflib.SplitLines(gotDTS),
				FromFile: "dtc(original)",
				ToFile:   "dtc(encode(parse(original)))",
				Context:  3,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
			return fmt.Errorf("%s: dtc output diverged after round-trip", src)
		},
	}
	cmd.Flags().StringVar(&dtcPath, "dtc", "dtc", "path to the dtc binary")
	return cmd
}

func decompileWithDTC(dtcPath string, dtb []byte) (string, error) {
	tmp, err := os.CreateTemp("", "fdtctl-*.dtb")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(dtb); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	out, err := exec.Command(dtcPath, "-I", "dtb", "-O", "dts", tmp.Name()).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
