package records

import (
	"strconv"
	"strings"
)

// Row width constants used for log-sheet accounting: a write response
// reports updated cells, and cells divided by width gives rows.
const (
	EntryRowWidth   = 15
	ProjectRowWidth = 12
)

// Row returns the entry's 15-column positional snapshot form:
// id, date, person, role, geography, client, project, code, task,
// billable, locked, hours, target utilization, cost rate, hourly rate.
func (e TimeEntry) Row() []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.Date,
		e.Person,
		e.Role,
		string(e.Geography),
		e.Client,
		e.Project,
		e.ProjectCode,
		e.Task,
		formatBool(e.Billable),
		formatBool(e.Locked),
		formatFloat(e.Hours),
		strconv.Itoa(e.TargetUtilization),
		e.CostRate.String(),
		e.HourlyRate.String(),
	}
}

// Row returns the project's positional form written to the projects sheet
// range A:M: id, name, code, active, client, notes, start, end, created,
// updated, budget, spent, remaining. The billable flag is not mirrored;
// it only feeds the cross-system sync.
func (p Project) Row() []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		p.Code,
		formatBool(p.Active),
		p.Client,
		p.Notes,
		p.StartDate,
		p.EndDate,
		p.CreatedAt,
		p.UpdatedAt,
		p.Budget.Budget.String(),
		p.Budget.Spent.String(),
		p.Budget.Remaining.String(),
	}
}

// formatBool renders booleans the way the sheet stores them.
func formatBool(b bool) string {
	return strings.ToUpper(strconv.FormatBool(b))
}

// formatFloat renders hours without trailing zeros.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseBool reads a sheet boolean cell ("TRUE"/"FALSE", any casing).
func ParseBool(cell string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), "true")
}
