package harvest

import "time"

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, primarily for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithLookbackDays sets the trailing window for time-entry fetches.
func WithLookbackDays(days int) Option {
	return func(c *Client) {
		c.lookbackDays = days
	}
}

// WithScanCutoff toggles the early fetch termination that assumes the
// API returns entries in descending date order across pages. Disabling
// it forces a full scan of every page.
func WithScanCutoff(enabled bool) Option {
	return func(c *Client) {
		c.scanCutoff = enabled
	}
}

// WithClock overrides the time source used to anchor the date window.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}
