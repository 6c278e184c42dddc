package sheets

import (
	"net/http"
	"time"
)

// Option is a functional option for configuring a Service.
type Option func(*Service)

// WithBaseURL overrides the API base URL, primarily for tests.
func WithBaseURL(url string) Option {
	return func(s *Service) {
		s.baseURL = url
	}
}

// WithHTTPClient injects an HTTP client, bypassing the service-account
// credential flow. Used by tests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.http = client
	}
}

// WithClock overrides the time source used for log rows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}
