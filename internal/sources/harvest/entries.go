package harvest

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/agentstation/timesync/internal/transport"
	"github.com/agentstation/timesync/pkg/logging"
	"github.com/agentstation/timesync/pkg/records"
)

type entriesPage struct {
	TimeEntries []entryRecord `json:"time_entries"`
	TotalPages  int           `json:"total_pages"`
}

func (p *entriesPage) totalPages() int { return p.TotalPages }

type entryRecord struct {
	ID        int64    `json:"id"`
	SpentDate string   `json:"spent_date"`
	Billable  bool     `json:"billable"`
	IsLocked  bool     `json:"is_locked"`
	Hours     float64  `json:"hours"`
	CostRate  *float64 `json:"cost_rate"`
	User      struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
	Client struct {
		Name string `json:"name"`
	} `json:"client"`
	Project struct {
		Name string `json:"name"`
		Code string `json:"code"`
	} `json:"project"`
	Task struct {
		Name string `json:"name"`
	} `json:"task"`
	UserAssignment struct {
		HourlyRate *float64 `json:"hourly_rate"`
	} `json:"user_assignment"`
}

// TimeEntries fetches the entries dated within the trailing lookback
// window, keeping only entries whose person's role is in roles. Each
// record is flattened from its nested sub-objects.
//
// The API returns entries newest first across pages; with the scan
// cutoff enabled, the first entry older than the window ends the whole
// fetch rather than just its page.
func (c *Client) TimeEntries(ctx context.Context, people []records.Person, roles records.EligibleRoles) ([]records.TimeEntry, error) {
	byName := make(map[string]records.Person, len(people))
	for _, p := range people {
		byName[p.FullName] = p
	}

	today := c.now().Format("2006-01-02")
	start := c.now().AddDate(0, 0, -c.lookbackDays).Format("2006-01-02")

	logging.Info().
		Str("system", systemName).
		Str("from", start).
		Str("to", today).
		Msg("Fetching time entries")

	var entries []records.TimeEntry
	err := collectPages(ctx, c, "/time_entries", func() *entriesPage { return &entriesPage{} }, func(p *entriesPage) bool {
		for _, entry := range p.TimeEntries {
			if entry.SpentDate < start {
				if c.scanCutoff {
					return false
				}
				continue
			}
			if entry.SpentDate > today {
				continue
			}

			person, known := byName[entry.User.Name]
			if !known {
				logging.Debug().
					Str("person", entry.User.Name).
					Int64("id", entry.ID).
					Msg("Entry person not in the users list, skipping")
				continue
			}
			if !roles.Has(person.Role) {
				continue
			}

			entries = append(entries, records.TimeEntry{
				ID:                entry.ID,
				Date:              entry.SpentDate,
				Person:            entry.User.Name,
				Role:              person.Role,
				Geography:         person.Geography,
				Client:            entry.Client.Name,
				Project:           entry.Project.Name,
				ProjectCode:       entry.Project.Code,
				Task:              entry.Task.Name,
				Billable:          entry.Billable,
				Locked:            entry.IsLocked,
				Hours:             entry.Hours,
				TargetUtilization: roles.TargetPercent(person.Role),
				CostRate:          decimalOrZero(entry.CostRate),
				HourlyRate:        decimalOrZero(entry.UserAssignment.HourlyRate),
			})
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	logging.Info().Str("system", systemName).Int("count", len(entries)).Msg("Fetched time entries")
	return entries, nil
}

// CreateEntryRequest is the body of a time-entry creation.
type CreateEntryRequest struct {
	UserID    int64   `json:"user_id"`
	ProjectID int64   `json:"project_id"`
	TaskID    int64   `json:"task_id"`
	SpentDate string  `json:"spent_date"`
	Hours     float64 `json:"hours"`
}

// CreateTimeEntry creates one time entry and returns its id.
func (c *Client) CreateTimeEntry(ctx context.Context, req CreateEntryRequest) (int64, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, err
	}

	resp, err := c.transport.Post(ctx, "/time_entries", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := transport.DecodeResponse(systemName, resp, &created); err != nil {
		return 0, err
	}

	logging.Info().
		Str("system", systemName).
		Int64("id", created.ID).
		Str("date", req.SpentDate).
		Msg("Created time entry")
	return created.ID, nil
}

