package transport

import "net/http"

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// AccountAuth implements Bearer token authentication plus an account
// scoping header, the scheme the time-tracking API requires.
type AccountAuth struct {
	Token     string
	Header    string
	AccountID string
}

// Apply implements the Authenticator interface for AccountAuth.
func (a *AccountAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
	req.Header.Set(a.Header, a.AccountID)
}
