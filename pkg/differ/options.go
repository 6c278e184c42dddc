package differ

import "time"

// Option is a functional option for configuring a Differ.
type Option func(*differ)

// WithClock overrides the time source used to anchor the lookback window.
func WithClock(now func() time.Time) Option {
	return func(d *differ) {
		d.now = now
	}
}
