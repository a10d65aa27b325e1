package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDexCmd converts jar/class inputs to a dex file with d8
func newDexCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dex <input.jar> [more inputs...]",
		Short: "Convert JVM bytecode to dex",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(nil)
			if err != nil {
				return err
			}
			if err := svc.ConvertDex(cmd.Context(), args, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "converted %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output dex path")
	cmd.MarkFlagRequired("output")

	return cmd
}
