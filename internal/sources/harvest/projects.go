package harvest

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/agentstation/timesync/pkg/logging"
	"github.com/agentstation/timesync/pkg/records"
)

type projectsPage struct {
	Projects   []projectRecord `json:"projects"`
	TotalPages int             `json:"total_pages"`
}

func (p *projectsPage) totalPages() int { return p.TotalPages }

type projectRecord struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	IsActive   bool    `json:"is_active"`
	IsBillable bool    `json:"is_billable"`
	Notes      string  `json:"notes"`
	StartsOn   *string `json:"starts_on"`
	EndsOn     *string `json:"ends_on"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
	Client     struct {
		Name string `json:"name"`
	} `json:"client"`
}

type budgetsPage struct {
	Results    []budgetRecord `json:"results"`
	TotalPages int            `json:"total_pages"`
}

func (p *budgetsPage) totalPages() int { return p.TotalPages }

type budgetRecord struct {
	ProjectID       int64    `json:"project_id"`
	Budget          *float64 `json:"budget"`
	BudgetSpent     *float64 `json:"budget_spent"`
	BudgetRemaining *float64 `json:"budget_remaining"`
}

// Projects fetches every project with its budget report row merged on.
// Budgets are sparse; a project without one keeps the zero budget rather
// than being dropped.
func (c *Client) Projects(ctx context.Context) ([]records.Project, error) {
	budgets, err := c.budgets(ctx)
	if err != nil {
		return nil, err
	}

	logging.Info().Str("system", systemName).Msg("Fetching projects")

	var projects []records.Project
	err = collectPages(ctx, c, "/projects", func() *projectsPage { return &projectsPage{} }, func(p *projectsPage) bool {
		for _, project := range p.Projects {
			budget, ok := budgets[project.ID]
			if !ok {
				budget = records.ZeroBudget()
			}

			projects = append(projects, records.Project{
				ID:        project.ID,
				Name:      project.Name,
				Code:      project.Code,
				Active:    project.IsActive,
				Billable:  project.IsBillable,
				Client:    project.Client.Name,
				Notes:     project.Notes,
				StartDate: stringOrEmpty(project.StartsOn),
				EndDate:   stringOrEmpty(project.EndsOn),
				CreatedAt: datePart(project.CreatedAt),
				UpdatedAt: datePart(project.UpdatedAt),
				Budget:    budget,
			})
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	logging.Info().Str("system", systemName).Int("count", len(projects)).Msg("Fetched projects")
	return projects, nil
}

// budgets fetches the project budget report keyed by project id.
func (c *Client) budgets(ctx context.Context) (map[int64]records.Budget, error) {
	logging.Info().Str("system", systemName).Msg("Fetching project budgets")

	budgets := map[int64]records.Budget{}
	err := collectPages(ctx, c, "/reports/project_budget", func() *budgetsPage { return &budgetsPage{} }, func(p *budgetsPage) bool {
		for _, row := range p.Results {
			budgets[row.ProjectID] = records.Budget{
				Budget:    decimalOrZero(row.Budget),
				Spent:     decimalOrZero(row.BudgetSpent),
				Remaining: decimalOrZero(row.BudgetRemaining),
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	return budgets, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// datePart keeps the date portion of an RFC 3339 timestamp.
func datePart(timestamp string) string {
	if len(timestamp) < 10 {
		return timestamp
	}
	return timestamp[:10]
}

func decimalOrZero(f *float64) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*f)
}
