package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDecodeCmd unpacks an APK with apktool
func newDecodeCmd() *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Unpack an APK into an editable directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(nil)
			if err != nil {
				return err
			}
			if err := svc.Decode(cmd.Context(), input, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "decoded to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "APK to decode")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}
