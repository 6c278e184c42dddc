package floatapp

import (
	"context"

	"github.com/agentstation/timesync/pkg/logging"
	"github.com/agentstation/timesync/pkg/planner"
)

type projectRecord struct {
	ProjectID   int64    `json:"project_id"`
	Name        string   `json:"name"`
	ClientID    int64    `json:"client_id"`
	Tags        []string `json:"tags"`
	NonBillable int      `json:"non_billable"`
	Active      int      `json:"active"`
}

// Projects fetches every project in sync-planning form. The project code
// is the first tag; untagged projects carry an empty code and fall back
// to a name-only cross-system match.
func (c *Client) Projects(ctx context.Context) ([]planner.TargetProject, error) {
	logging.Info().Str("system", systemName).Msg("Fetching projects")

	var projects []planner.TargetProject
	err := collectPages(ctx, c, "/projects", func(page []projectRecord) {
		for _, project := range page {
			code := ""
			if len(project.Tags) > 0 {
				code = project.Tags[0]
			}

			projects = append(projects, planner.TargetProject{
				ID:          project.ProjectID,
				Name:        project.Name,
				Code:        code,
				ClientID:    project.ClientID,
				NonBillable: project.NonBillable,
				Active:      project.Active,
			})
		}
	})
	if err != nil {
		return nil, err
	}

	logging.Info().Str("system", systemName).Int("count", len(projects)).Msg("Fetched projects")
	return projects, nil
}
