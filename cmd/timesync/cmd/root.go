// Package cmd implements the timesync command line interface.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/timesync"
	"github.com/agentstation/timesync/internal/sources/floatapp"
	"github.com/agentstation/timesync/internal/sources/harvest"
	"github.com/agentstation/timesync/internal/sheets"
	"github.com/agentstation/timesync/pkg/errors"
	"github.com/agentstation/timesync/pkg/logging"
	"github.com/agentstation/timesync/pkg/schedule"
)

var cfg *Config

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "timesync",
		Short: "Reconcile time tracking, scheduling and the reporting spreadsheet",
		Long: `timesync mirrors tracked time entries and project state into a
reporting spreadsheet, creates recurring weekly entries in the tracker,
and keeps the scheduling system's projects and people in line with the
tracker.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := LoadConfig()
			if err != nil {
				return err
			}
			cfg = loaded

			if flag := cmd.Flags().Lookup("dry-run"); flag != nil && flag.Changed {
				cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
			}
			if flag := cmd.Flags().Lookup("log-level"); flag != nil && flag.Changed {
				cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
			}
			cfg.DetectChanges, _ = cmd.Flags().GetBool("detect-changes")
			cfg.InPlaceUpdates, _ = cmd.Flags().GetBool("in-place-updates")
			cfg.SameWeekDates, _ = cmd.Flags().GetBool("same-week-dates")
			cfg.FullScan, _ = cmd.Flags().GetBool("full-scan")

			logging.Configure(&logging.Config{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				Output: "stderr",
			})
			return nil
		},
	}

	root.PersistentFlags().Bool("dry-run", false, "plan every step but write nothing")
	root.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().Bool("detect-changes", false, "also detect snapshot rows whose fields drifted")
	root.PersistentFlags().Bool("in-place-updates", false, "rewrite drifted snapshot rows in place (with --detect-changes)")
	root.PersistentFlags().Bool("same-week-dates", false, "resolve weekly rules within the current week instead of the next")
	root.PersistentFlags().Bool("full-scan", false, "scan every entries page instead of stopping at the lookback window")

	root.AddCommand(
		newSyncCmd(),
		newWeeklyCmd(),
		newEntriesCmd(),
		newProjectsCmd(),
		newPeopleCmd(),
		newVersionCmd(version),
	)
	return root
}

// buildClient wires the three collaborators from configuration.
func buildClient(ctx context.Context, needFloat bool) (*timesync.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tracker := harvest.New(cfg.HarvestAccountID, cfg.HarvestToken,
		harvest.WithLookbackDays(cfg.LookbackDays),
		harvest.WithScanCutoff(!cfg.FullScan))

	var scheduler timesync.Scheduler
	if needFloat {
		if cfg.FloatToken == "" {
			return nil, errors.NewConfigError("float", "FLOAT_TOKEN is required", errors.ErrTokenRequired)
		}
		scheduler = floatapp.New(cfg.FloatToken)
	}

	sheet, err := sheets.New(ctx, cfg.CredentialsFile, cfg.SpreadsheetID)
	if err != nil {
		return nil, err
	}

	opts := []timesync.Option{
		timesync.WithTabs(timesync.Tabs{
			Entries:  cfg.EntriesSheet,
			Projects: cfg.ProjectsSheet,
			Weekly:   cfg.WeeklySheet,
			Roles:    cfg.RolesSheet,
			Logs:     cfg.LogsSheet,
		}),
		timesync.WithLookbackDays(cfg.LookbackDays),
		timesync.WithDryRun(cfg.DryRun),
		timesync.WithInPlaceUpdates(cfg.InPlaceUpdates),
	}
	if cfg.DetectChanges {
		opts = append(opts, timesync.WithDiffPolicy(timesync.NewOrChanged))
	}
	if cfg.SameWeekDates {
		opts = append(opts, timesync.WithSpentDatePolicy(schedule.SameWeek))
	}

	return timesync.New(tracker, scheduler, sheet, opts...), nil
}
