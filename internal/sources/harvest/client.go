// Package harvest wraps the time-tracking system's v2 REST API: users,
// clients, tasks, projects with merged budgets, and time entries. All
// list endpoints paginate on the total_pages value carried in each
// response body.
package harvest

import (
	"time"

	"github.com/agentstation/timesync/internal/transport"
)

const (
	defaultBaseURL = "https://api.harvestapp.com/v2"
	accountHeader  = "Harvest-Account-ID"
	systemName     = "harvest"
)

// Client is the authenticated API wrapper.
type Client struct {
	transport    *transport.Client
	baseURL      string
	lookbackDays int
	scanCutoff   bool
	now          func() time.Time
}

// New creates a Client scoped to one account.
func New(accountID, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:      defaultBaseURL,
		lookbackDays: 15,
		scanCutoff:   true,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.transport = transport.New(systemName, c.baseURL, &transport.AccountAuth{
		Token:     token,
		Header:    accountHeader,
		AccountID: accountID,
	})

	return c
}
