package floatapp

import (
	"context"

	"github.com/agentstation/timesync/pkg/logging"
)

type clientRecord struct {
	ClientID int64  `json:"client_id"`
	Name     string `json:"name"`
}

// Clients fetches every client as a name to id map, the form the project
// sync translates client names through.
func (c *Client) Clients(ctx context.Context) (map[string]int64, error) {
	logging.Info().Str("system", systemName).Msg("Fetching clients")

	clients := map[string]int64{}
	err := collectPages(ctx, c, "/clients", func(page []clientRecord) {
		for _, client := range page {
			clients[client.Name] = client.ClientID
		}
	})
	if err != nil {
		return nil, err
	}

	return clients, nil
}
