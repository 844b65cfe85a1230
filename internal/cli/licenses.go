package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/typings-labs/gentypings/internal/license"
)

func init() {
	rootCmd.AddCommand(licensesCmd)
}

var licensesCmd = &cobra.Command{
	Use:   "licenses",
	Short: "List the licenses a generated repository can use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\t")
		for _, l := range license.All() {
			name := l.Name
			if l.ID == license.DefaultID {
				name += " (default)"
			}
			fmt.Fprintf(w, "%s\t%s\t\n", l.ID, name)
		}
		return w.Flush()
	},
}
