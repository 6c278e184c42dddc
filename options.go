package timesync

import (
	"time"

	"github.com/agentstation/timesync/pkg/schedule"
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithTabs overrides the spreadsheet tab names.
func WithTabs(tabs Tabs) Option {
	return func(c *Client) {
		c.tabs = tabs
	}
}

// WithLookbackDays sets the trailing window for snapshot comparison.
func WithLookbackDays(days int) Option {
	return func(c *Client) {
		c.lookbackDays = days
	}
}

// WithDryRun plans every step but issues no writes to any system.
func WithDryRun(enabled bool) Option {
	return func(c *Client) {
		c.dryRun = enabled
	}
}

// WithDiffPolicy selects the snapshot comparison policy.
func WithDiffPolicy(policy DiffPolicy) Option {
	return func(c *Client) {
		c.diffPolicy = policy
	}
}

// WithInPlaceUpdates rewrites drifted snapshot rows at their original
// position. Only meaningful under the NewOrChanged policy; off by
// default, drifted rows are logged but left alone.
func WithInPlaceUpdates(enabled bool) Option {
	return func(c *Client) {
		c.inPlaceUpdates = enabled
	}
}

// WithSpentDatePolicy selects how weekly rules resolve to dates.
func WithSpentDatePolicy(policy schedule.Policy) Option {
	return func(c *Client) {
		c.spentDatePolicy = policy
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}
