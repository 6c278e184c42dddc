// Package timesync reconciles a time-tracking system, a scheduling
// system and a spreadsheet: weekly recurring entries are materialized
// into the tracker, tracked entries are mirrored into the spreadsheet
// snapshot, project state is mirrored to its own tab, and the scheduling
// system is patched back into line with the tracker.
package timesync

import (
	"context"
	"time"

	"github.com/agentstation/timesync/internal/sources/floatapp"
	"github.com/agentstation/timesync/internal/sources/harvest"
	"github.com/agentstation/timesync/pkg/planner"
	"github.com/agentstation/timesync/pkg/records"
	"github.com/agentstation/timesync/pkg/schedule"
)

// Tracker is the time-tracking side: the system of record for people,
// projects, tasks and time entries.
type Tracker interface {
	Users(ctx context.Context) ([]records.Person, error)
	Projects(ctx context.Context) ([]records.Project, error)
	Clients(ctx context.Context) ([]records.Client, error)
	Tasks(ctx context.Context) (map[string]int64, error)
	TimeEntries(ctx context.Context, people []records.Person, roles records.EligibleRoles) ([]records.TimeEntry, error)
	CreateTimeEntry(ctx context.Context, req harvest.CreateEntryRequest) (int64, error)
}

// Scheduler is the scheduling side: the system kept in line with the
// tracker through patches and logged-time pushes.
type Scheduler interface {
	Projects(ctx context.Context) ([]planner.TargetProject, error)
	People(ctx context.Context) ([]planner.TargetPerson, error)
	Clients(ctx context.Context) (map[string]int64, error)
	Apply(ctx context.Context, patch planner.Patch) error
	CreateLoggedTime(ctx context.Context, req floatapp.LoggedTimeRequest) error
}

// Spreadsheet is the snapshot, configuration and log collaborator.
type Spreadsheet interface {
	Snapshot(ctx context.Context, sheet string) ([]records.SnapshotRow, error)
	WeeklyRules(ctx context.Context, sheet string) ([]records.WeeklyTaskRule, error)
	EligibleRoles(ctx context.Context, sheet string) (records.EligibleRoles, error)
	Append(ctx context.Context, sheetRange string, values [][]string) (int, error)
	Update(ctx context.Context, sheetRange string, values [][]string) (int, error)
	LogUpdate(ctx context.Context, logSheet, updatedSheet string, cells, rowWidth int) error
}

// DiffPolicy selects how fetched entries are compared to the snapshot.
type DiffPolicy int

const (
	// MissingRows only detects ids absent from the snapshot window.
	MissingRows DiffPolicy = iota

	// NewOrChanged also detects rows whose fields drifted.
	NewOrChanged
)

// Tabs names the spreadsheet's tabs.
type Tabs struct {
	Entries  string
	Projects string
	Weekly   string
	Roles    string
	Logs     string
}

// DefaultTabs is the historical tab layout.
var DefaultTabs = Tabs{
	Entries:  "Entries",
	Projects: "Projects",
	Weekly:   "Weekly Tasks",
	Roles:    "Roles",
	Logs:     "Logs",
}

// Client runs the reconciliation.
type Client struct {
	tracker   Tracker
	scheduler Scheduler
	sheet     Spreadsheet

	tabs            Tabs
	lookbackDays    int
	dryRun          bool
	diffPolicy      DiffPolicy
	inPlaceUpdates  bool
	spentDatePolicy schedule.Policy
	now             func() time.Time
}

// New creates a Client over the three collaborators.
func New(tracker Tracker, scheduler Scheduler, sheet Spreadsheet, opts ...Option) *Client {
	c := &Client{
		tracker:         tracker,
		scheduler:       scheduler,
		sheet:           sheet,
		tabs:            DefaultTabs,
		lookbackDays:    15,
		diffPolicy:      MissingRows,
		spentDatePolicy: schedule.NextWeek,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
