package timesync

import "fmt"

// Result summarizes one reconciliation run.
type Result struct {
	WeeklyCreated   int // tracker entries created from weekly rules
	EntriesAppended int // snapshot rows appended
	EntriesChanged  int // snapshot rows that drifted from the tracker
	ProjectRows     int // project rows mirrored
	ProjectPatches  int // scheduler project fields patched
	PeoplePatches   int // scheduler people fields patched
	LoggedTime      int // logged-time records pushed
	DryRun          bool
}

// String returns a one-line run summary.
func (r *Result) String() string {
	prefix := ""
	if r.DryRun {
		prefix = "[dry-run] "
	}
	return fmt.Sprintf("%s%d weekly created, %d entries appended (%d changed), %d project rows, %d+%d patches, %d logged",
		prefix, r.WeeklyCreated, r.EntriesAppended, r.EntriesChanged, r.ProjectRows,
		r.ProjectPatches, r.PeoplePatches, r.LoggedTime)
}
