// Package differ compares freshly fetched time entries against the
// spreadsheet snapshot and classifies each record as new, changed or
// unchanged within a trailing lookback window.
package differ

import (
	"fmt"

	"github.com/agentstation/timesync/pkg/records"
)

// ChangedEntry is a fetched entry whose snapshot image differs, together
// with the 1-based spreadsheet row holding the stale image.
type ChangedEntry struct {
	Entry    records.TimeEntry
	RowIndex int
}

// Changeset is the classified result of a snapshot comparison.
type Changeset struct {
	New       []records.TimeEntry
	Changed   []ChangedEntry
	Unchanged int
}

// HasChanges returns true if the changeset contains any new or changed entries.
func (c *Changeset) HasChanges() bool {
	return len(c.New) > 0 || len(c.Changed) > 0
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if !c.HasChanges() {
		return "No changes detected"
	}
	return fmt.Sprintf("Changeset: %d new, %d changed, %d unchanged",
		len(c.New), len(c.Changed), c.Unchanged)
}
