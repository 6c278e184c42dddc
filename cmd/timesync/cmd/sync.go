package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run the full reconciliation",
		Long: `Creates weekly tracker entries, appends new time entries to the
spreadsheet snapshot, mirrors project state, patches the scheduling
system and pushes newly appended entries as logged time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := buildClient(cmd.Context(), true)
			if err != nil {
				return err
			}

			result, err := client.Sync(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.String())
			return nil
		},
	}
}
