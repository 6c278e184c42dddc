// Package floatapp wraps the scheduling system's v3 REST API: projects,
// people, clients, logged-time creation and field-level PATCH updates.
// List endpoints paginate on the X-Pagination-Page-Count response header,
// and every write is followed by the rate-limit cooldown the API's
// per-minute quota requires.
package floatapp

import (
	"net/http"
	"time"

	"github.com/agentstation/timesync/internal/transport"
	"github.com/agentstation/timesync/pkg/logging"
)

const (
	defaultBaseURL      = "https://api.float.com/v3"
	systemName          = "float"
	pageCountHeader     = "X-Pagination-Page-Count"
	rateRemainingHeader = "X-RateLimit-Remaining-Minute"

	// cooldownThreshold is the remaining-quota level under which writes
	// back off hard instead of pacing.
	cooldownThreshold = 15
	longCooldown      = 90 * time.Second
	shortCooldown     = 650 * time.Millisecond
)

// Client is the authenticated API wrapper.
type Client struct {
	transport *transport.Client
	baseURL   string
	sleep     func(time.Duration)
}

// New creates a Client.
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		sleep:   time.Sleep,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.transport = transport.New(systemName, c.baseURL, &transport.BearerAuth{Token: token})
	return c
}

// cooldown paces writes off the response's remaining-quota header: a low
// remaining count triggers the long backoff, anything else the short
// inter-write pause.
func (c *Client) cooldown(resp *http.Response) {
	if remaining, ok := transport.RateRemainingHeader(resp, rateRemainingHeader); ok && remaining <= cooldownThreshold {
		logging.Warn().
			Str("system", systemName).
			Int("remaining", remaining).
			Msg("Rate limit low, cooling down")
		c.sleep(longCooldown)
		return
	}
	c.sleep(shortCooldown)
}
