package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRepackCmd runs the full build → align → sign pipeline
func newRepackCmd() *cobra.Command {
	var (
		inputDir string
		output   string
		flags    signingFlags
	)

	cmd := &cobra.Command{
		Use:   "repack",
		Short: "Rebuild, align and sign an unpacked package in one step",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(flags.apply)
			if err != nil {
				return err
			}
			digest, err := svc.Repack(cmd.Context(), inputDir, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "repacked %s\nsha256 %s\n", output, digest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "unpacked package directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output APK path")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	flags.register(cmd)

	return cmd
}
