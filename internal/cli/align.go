package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newAlignCmd runs zipalign on an existing APK
func newAlignCmd() *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "align",
		Short: "Write a 4-byte aligned copy of an APK",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(nil)
			if err != nil {
				return err
			}
			if err := svc.Align(cmd.Context(), input, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "aligned %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input APK path")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output APK path")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}
