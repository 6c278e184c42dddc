package differ

import (
	"strconv"
	"time"

	"github.com/agentstation/timesync/pkg/errors"
	"github.com/agentstation/timesync/pkg/logging"
	"github.com/agentstation/timesync/pkg/records"
)

// Differ classifies fetched entries against the snapshot baseline.
type Differ interface {
	// MissingRows returns every fetched entry whose id is absent from the
	// snapshot rows dated within the lookback window. Pure set-difference
	// on id; field-level changes are not detected.
	MissingRows(fetched []records.TimeEntry, snapshot []records.SnapshotRow) []records.TimeEntry

	// NewOrChanged classifies each fetched entry as new (id unseen in the
	// window), changed (id seen, field tuple differs) or unchanged. A
	// snapshot cell that fails its type coercion aborts the comparison.
	NewOrChanged(fetched []records.TimeEntry, snapshot []records.SnapshotRow) (*Changeset, error)
}

// differ is the default implementation of Differ.
type differ struct {
	lookbackDays int
	now          func() time.Time
}

// New creates a Differ with the given trailing lookback window.
func New(lookbackDays int, opts ...Option) Differ {
	d := &differ{
		lookbackDays: lookbackDays,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// windowStart returns the inclusive lower bound of the lookback window as
// an ISO date. Snapshot dates are ISO strings, so the bound compares
// lexically.
func (d *differ) windowStart() string {
	return d.now().AddDate(0, 0, -d.lookbackDays).Format("2006-01-02")
}

// MissingRows implements Policy A.
func (d *differ) MissingRows(fetched []records.TimeEntry, snapshot []records.SnapshotRow) []records.TimeEntry {
	start := d.windowStart()

	seen := make(map[int64]struct{}, len(snapshot))
	for _, row := range snapshot {
		if row.Date() < start {
			continue
		}
		id, err := strconv.ParseInt(row.ID(), 10, 64)
		if err != nil {
			logging.Warn().
				Int("row", row.Index).
				Str("cell", row.ID()).
				Msg("Skipping snapshot row with non-numeric id")
			continue
		}
		seen[id] = struct{}{}
	}

	missing := make([]records.TimeEntry, 0, len(fetched))
	for _, entry := range fetched {
		if _, ok := seen[entry.ID]; !ok {
			missing = append(missing, entry)
		}
	}
	return missing
}

// indexedRow is a snapshot row reduced to its comparison tuple.
type indexedRow struct {
	tuple    fieldTuple
	rowIndex int
}

// NewOrChanged implements Policy B.
func (d *differ) NewOrChanged(fetched []records.TimeEntry, snapshot []records.SnapshotRow) (*Changeset, error) {
	start := d.windowStart()

	index := make(map[int64]indexedRow, len(snapshot))
	for _, row := range snapshot {
		if row.Date() < start {
			continue
		}
		id, err := strconv.ParseInt(row.ID(), 10, 64)
		if err != nil {
			logging.Warn().
				Int("row", row.Index).
				Str("cell", row.ID()).
				Msg("Skipping snapshot row with non-numeric id")
			continue
		}
		tuple, err := coerceCells(row)
		if err != nil {
			return nil, err
		}
		index[id] = indexedRow{tuple: tuple, rowIndex: row.Index}
	}

	changeset := &Changeset{}
	for _, entry := range fetched {
		existing, ok := index[entry.ID]
		if !ok {
			changeset.New = append(changeset.New, entry)
			continue
		}
		if existing.tuple.equal(entryTuple(entry)) {
			changeset.Unchanged++
			continue
		}
		logging.Info().
			Int64("id", entry.ID).
			Int("row", existing.rowIndex).
			Str("date", entry.Date).
			Msg("Snapshot row differs from fetched entry")
		changeset.Changed = append(changeset.Changed, ChangedEntry{
			Entry:    entry,
			RowIndex: existing.rowIndex,
		})
	}

	return changeset, nil
}

// fieldTuple is the typed comparison form of the columns after the date:
// the text columns as-is, hours as float, target utilization as integer,
// and the trailing rate columns as floats. Exact parity is required.
type fieldTuple struct {
	text   [9]string // person..locked
	hours  float64
	target int
	rates  [2]float64 // cost rate, hourly rate
}

func (t fieldTuple) equal(other fieldTuple) bool {
	return t == other
}

// coerceCells converts a 15-column snapshot row into its comparison
// tuple. Any cell that fails its coercion is a fatal condition for the
// comparison, not a silent skip.
func coerceCells(row records.SnapshotRow) (fieldTuple, error) {
	if len(row.Cells) != records.EntryRowWidth {
		return fieldTuple{}, &errors.ParseError{
			Format:  "cell",
			Source:  "snapshot row " + strconv.Itoa(row.Index),
			Message: "expected " + strconv.Itoa(records.EntryRowWidth) + " columns, got " + strconv.Itoa(len(row.Cells)),
		}
	}

	var tuple fieldTuple
	copy(tuple.text[:], row.Cells[2:11])

	hours, err := strconv.ParseFloat(row.Cells[11], 64)
	if err != nil {
		return fieldTuple{}, errors.WrapParse("cell", "snapshot row "+strconv.Itoa(row.Index)+" hours", err)
	}
	tuple.hours = hours

	target, err := strconv.Atoi(row.Cells[12])
	if err != nil {
		return fieldTuple{}, errors.WrapParse("cell", "snapshot row "+strconv.Itoa(row.Index)+" target utilization", err)
	}
	tuple.target = target

	for i, cell := range row.Cells[13:15] {
		rate, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return fieldTuple{}, errors.WrapParse("cell", "snapshot row "+strconv.Itoa(row.Index)+" rate", err)
		}
		tuple.rates[i] = rate
	}

	return tuple, nil
}

// entryTuple builds the comparison tuple from a fetched entry, using the
// same serialization the snapshot rows were written with.
func entryTuple(e records.TimeEntry) fieldTuple {
	row := e.Row()

	var tuple fieldTuple
	copy(tuple.text[:], row[2:11])
	tuple.hours = e.Hours
	tuple.target = e.TargetUtilization
	tuple.rates[0] = e.CostRate.InexactFloat64()
	tuple.rates[1] = e.HourlyRate.InexactFloat64()
	return tuple
}
