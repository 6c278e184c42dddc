package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/timesync"
	"github.com/agentstation/timesync/internal/sources/local"
)

func newWeeklyCmd() *cobra.Command {
	var rulesFile string

	weekly := &cobra.Command{
		Use:   "weekly",
		Short: "Create this week's recurring tracker entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := buildClient(cmd.Context(), false)
			if err != nil {
				return err
			}

			var result *timesync.Result
			if rulesFile != "" {
				rules, err := local.LoadWeeklyRules(rulesFile)
				if err != nil {
					return err
				}
				result, err = client.CreateWeeklyFromRules(cmd.Context(), rules)
				if err != nil {
					return err
				}
			} else {
				result, err = client.CreateWeekly(cmd.Context())
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d weekly entries created\n", result.WeeklyCreated)
			return nil
		},
	}

	weekly.Flags().StringVar(&rulesFile, "rules-file", "", "YAML weekly rules file to use instead of the spreadsheet tab")
	return weekly
}

func newEntriesCmd() *cobra.Command {
	var rolesFile string

	entries := &cobra.Command{
		Use:   "entries",
		Short: "Append new tracker entries to the spreadsheet snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := buildClient(cmd.Context(), false)
			if err != nil {
				return err
			}

			var result *timesync.Result
			if rolesFile != "" {
				roles, err := local.LoadEligibleRoles(rolesFile)
				if err != nil {
					return err
				}
				result, err = client.SyncEntriesWithRoles(cmd.Context(), roles)
				if err != nil {
					return err
				}
			} else {
				result, err = client.SyncEntries(cmd.Context())
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d entries appended, %d changed\n",
				result.EntriesAppended, result.EntriesChanged)
			return nil
		},
	}

	entries.Flags().StringVar(&rolesFile, "roles-file", "", "YAML eligible-roles file to use instead of the spreadsheet tab")
	return entries
}

func newProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "Mirror tracker projects to the spreadsheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := buildClient(cmd.Context(), false)
			if err != nil {
				return err
			}

			result, err := client.MirrorProjects(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d project rows mirrored\n", result.ProjectRows)
			return nil
		},
	}
}

func newPeopleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Patch the scheduling system's projects and people from the tracker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := buildClient(cmd.Context(), true)
			if err != nil {
				return err
			}

			result, err := client.SyncScheduler(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d project patches, %d people patches applied\n",
				result.ProjectPatches, result.PeoplePatches)
			return nil
		},
	}
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "timesync "+version)
		},
	}
}
