package floatapp

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/agentstation/timesync/pkg/logging"
	"github.com/agentstation/timesync/pkg/planner"
)

type personRecord struct {
	PeopleID          int64   `json:"people_id"`
	Name              string  `json:"name"`
	JobTitle          *string `json:"job_title"`
	DefaultHourlyRate *string `json:"default_hourly_rate"`
	Active            int     `json:"active"`
}

// People fetches every person in sync-planning form. A missing rate
// normalizes to zero and a missing title to the empty string, matching
// how the sync comparison treats them.
func (c *Client) People(ctx context.Context) ([]planner.TargetPerson, error) {
	logging.Info().Str("system", systemName).Msg("Fetching people")

	var people []planner.TargetPerson
	err := collectPages(ctx, c, "/people", func(page []personRecord) {
		for _, person := range page {
			rate := decimal.Zero
			if person.DefaultHourlyRate != nil && *person.DefaultHourlyRate != "" {
				parsed, err := decimal.NewFromString(*person.DefaultHourlyRate)
				if err != nil {
					logging.Warn().
						Str("system", systemName).
						Str("person", person.Name).
						Str("rate", *person.DefaultHourlyRate).
						Msg("Unparseable hourly rate, treating as zero")
				} else {
					rate = parsed
				}
			}

			title := ""
			if person.JobTitle != nil {
				title = *person.JobTitle
			}

			people = append(people, planner.TargetPerson{
				ID:         person.PeopleID,
				Name:       person.Name,
				JobTitle:   title,
				HourlyRate: rate,
				Active:     person.Active == 1,
			})
		}
	})
	if err != nil {
		return nil, err
	}

	logging.Info().Str("system", systemName).Int("count", len(people)).Msg("Fetched people")
	return people, nil
}
