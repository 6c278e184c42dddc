package floatapp

import "time"

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, primarily for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithSleeper overrides the sleep function used by the write cooldown,
// so tests do not wait out real backoffs.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}
