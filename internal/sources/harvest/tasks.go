package harvest

import (
	"context"
	"strings"

	"github.com/agentstation/timesync/pkg/logging"
)

type tasksPage struct {
	Tasks      []taskRecord `json:"tasks"`
	TotalPages int          `json:"total_pages"`
}

func (p *tasksPage) totalPages() int { return p.TotalPages }

type taskRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tasks fetches every task as an upper-cased name to id map, the form
// the weekly-entry creation resolves task names through.
func (c *Client) Tasks(ctx context.Context) (map[string]int64, error) {
	logging.Info().Str("system", systemName).Msg("Fetching tasks")

	tasks := map[string]int64{}
	err := collectPages(ctx, c, "/tasks", func() *tasksPage { return &tasksPage{} }, func(p *tasksPage) bool {
		for _, task := range p.Tasks {
			tasks[strings.ToUpper(task.Name)] = task.ID
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	return tasks, nil
}
