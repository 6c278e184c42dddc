// Package records defines the domain types shared by the timesync system:
// time entries, projects, people, clients and weekly task rules, together
// with their positional spreadsheet row shapes.
package records

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Geography is the coarse location bucket derived from a person's timezone.
type Geography string

// Geography values. Unknown is a valid, expected value, not an error.
const (
	GeographyUSA     Geography = "USA"
	GeographySpain   Geography = "SPAIN"
	GeographyUnknown Geography = "UNKNOWN"
)

// GeographyFromTimezone maps a source-system timezone name to a Geography.
// Anything that is neither US nor Madrid based falls into Unknown.
func GeographyFromTimezone(tz string) Geography {
	upper := strings.ToUpper(tz)
	switch {
	case strings.Contains(upper, "US"):
		return GeographyUSA
	case strings.Contains(upper, "MADRID"):
		return GeographySpain
	default:
		return GeographyUnknown
	}
}

// Person is a user record from either system. Identity across systems is
// the normalized full name; the numeric ID is system-local.
type Person struct {
	ID                int64
	FullName          string
	Role              string // empty when the source carries none
	Geography         Geography
	DefaultHourlyRate decimal.Decimal
	Active            bool
}

// Client is a customer record. Identity across systems is the name.
type Client struct {
	ID     int64
	Name   string
	Active bool
}

// Budget holds the money columns merged onto a project from the budget
// report. Projects absent from the report keep the zero value.
type Budget struct {
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
}

// ZeroBudget is the default for projects without a budget report row.
func ZeroBudget() Budget {
	return Budget{
		Budget:    decimal.Zero,
		Spent:     decimal.Zero,
		Remaining: decimal.Zero,
	}
}

// Project is a project record from the time-tracking system. The
// cross-system match key is the (name, code) pair; the numeric ID is
// system-local.
type Project struct {
	ID        int64
	Name      string
	Code      string
	Active    bool
	Billable  bool
	Client    string
	Notes     string
	StartDate string // ISO date, may be empty
	EndDate   string // ISO date, may be empty
	CreatedAt string // date part only
	UpdatedAt string // date part only
	Budget    Budget
}

// TimeEntry is a logged time record from the time-tracking system,
// flattened from its nested user/client/project/task sub-objects.
// Immutable once fetched; mirrored into the spreadsheet snapshot.
type TimeEntry struct {
	ID          int64
	Date        string // ISO date, lexically comparable
	Person      string
	Role        string
	Geography   Geography
	Client      string
	Project     string
	ProjectCode string
	Task        string
	Billable    bool
	Locked      bool
	Hours       float64
	// TargetUtilization is the role's target utilization as a whole
	// percentage (15 means 15%). Stored as an integer so the snapshot
	// column round-trips without precision drift.
	TargetUtilization int
	CostRate          decimal.Decimal
	HourlyRate        decimal.Decimal
}

// SnapshotRow is the spreadsheet's persisted image of a row, used as the
// comparison baseline for diffing. Index is the 1-based spreadsheet row
// number (header included), so it can be reported back for updates.
type SnapshotRow struct {
	Index int
	Cells []string
}

// ID returns the row's id cell, or empty when the row is blank.
func (r SnapshotRow) ID() string {
	if len(r.Cells) == 0 {
		return ""
	}
	return r.Cells[0]
}

// Date returns the row's date cell, or empty when absent.
func (r SnapshotRow) Date() string {
	if len(r.Cells) < 2 {
		return ""
	}
	return r.Cells[1]
}

// WeeklyTaskRule is a declarative recurring entry: one row of the weekly
// tasks sheet, expanded into a concrete dated entry on each run.
type WeeklyTaskRule struct {
	Person      string
	Project     string
	ProjectCode string
	TaskName    string
	Weekday     Weekday
	Hours       float64
}

// EligibleRoles maps a role name to its target utilization as a fraction
// (0.15 means 15%). Entries whose person's role is not a key are excluded
// from materialized rows.
type EligibleRoles map[string]float64

// Has reports whether the role is eligible.
func (r EligibleRoles) Has(role string) bool {
	_, ok := r[role]
	return ok
}

// TargetPercent returns the role's target utilization as a whole
// percentage, the form persisted in snapshot rows.
func (r EligibleRoles) TargetPercent(role string) int {
	return int(r[role]*100 + 0.5)
}
