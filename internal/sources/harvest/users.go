package harvest

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/agentstation/timesync/pkg/logging"
	"github.com/agentstation/timesync/pkg/records"
)

type usersPage struct {
	Users      []userRecord `json:"users"`
	TotalPages int          `json:"total_pages"`
}

func (p *usersPage) totalPages() int { return p.TotalPages }

type userRecord struct {
	ID                int64    `json:"id"`
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	Roles             []string `json:"roles"`
	Timezone          string   `json:"timezone"`
	IsActive          bool     `json:"is_active"`
	DefaultHourlyRate *float64 `json:"default_hourly_rate"`
}

// Users fetches every user. The role is the user's first assigned role;
// users without roles carry an empty role and fall out of any
// role-filtered view downstream.
func (c *Client) Users(ctx context.Context) ([]records.Person, error) {
	logging.Info().Str("system", systemName).Msg("Fetching users")

	var people []records.Person
	err := collectPages(ctx, c, "/users", func() *usersPage { return &usersPage{} }, func(p *usersPage) bool {
		for _, user := range p.Users {
			role := ""
			if len(user.Roles) > 0 {
				role = user.Roles[0]
			}

			rate := decimal.Zero
			if user.DefaultHourlyRate != nil {
				rate = decimal.NewFromFloat(*user.DefaultHourlyRate)
			}

			people = append(people, records.Person{
				ID:                user.ID,
				FullName:          user.FirstName + " " + user.LastName,
				Role:              role,
				Geography:         records.GeographyFromTimezone(user.Timezone),
				DefaultHourlyRate: rate,
				Active:            user.IsActive,
			})
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	logging.Info().Str("system", systemName).Int("count", len(people)).Msg("Fetched users")
	return people, nil
}
