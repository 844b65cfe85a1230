package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/typings-labs/gentypings/internal/doctor"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that npm, node, typings and git are installed",
	Long: `Look up every tool the install step runs and check that node is at least
version ` + doctor.MinNodeVersion + `.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		problems := doctor.Print(out, doctor.New().Check(cmd.Context()))
		fmt.Fprintln(out)
		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		fmt.Fprintln(out, "All checks passed.")
		return nil
	},
}
