package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newBuildCmd rebuilds an unpacked package into an unsigned archive
func newBuildCmd() *cobra.Command {
	var (
		inputDir string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Rebuild an unpacked package directory into an APK",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(nil)
			if err != nil {
				return err
			}
			if err := svc.Build(cmd.Context(), inputDir, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "unpacked package directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output APK path")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}
