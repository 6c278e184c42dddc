package harvest

import (
	"context"

	"github.com/agentstation/timesync/pkg/logging"
	"github.com/agentstation/timesync/pkg/records"
)

type clientsPage struct {
	Clients    []clientRecord `json:"clients"`
	TotalPages int            `json:"total_pages"`
}

func (p *clientsPage) totalPages() int { return p.TotalPages }

type clientRecord struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Clients fetches every client.
func (c *Client) Clients(ctx context.Context) ([]records.Client, error) {
	logging.Info().Str("system", systemName).Msg("Fetching clients")

	var clients []records.Client
	err := collectPages(ctx, c, "/clients", func() *clientsPage { return &clientsPage{} }, func(p *clientsPage) bool {
		for _, client := range p.Clients {
			clients = append(clients, records.Client{
				ID:     client.ID,
				Name:   client.Name,
				Active: client.IsActive,
			})
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	return clients, nil
}
