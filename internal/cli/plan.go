package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ning0612/apkrepack/internal/core/assembly"
	"github.com/Ning0612/apkrepack/internal/progress"
)

// newPlanCmd prints the assembly plan without writing an archive
func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <package-dir>",
		Short: "Show the archive entries that would be packed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := assembly.Assemble(args[0])
			if err != nil {
				return err
			}

			for _, e := range plan.Entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %10s  %s\n",
					e.Method, progress.FormatBytes(e.Size), e.ArchiveName)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d entries (%d stored, %d deflated), %s\n",
				plan.Stats.TotalFiles, plan.Stats.Stored, plan.Stats.Deflated,
				progress.FormatBytes(plan.Stats.TotalBytes))

			for _, w := range plan.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipped %s: %v\n", w.Path, w.Err)
			}
			return nil
		},
	}
}
