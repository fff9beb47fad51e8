// Package credentials resolves the API key used to authenticate against the
// hosted conversation API and applies it to outgoing requests.
package credentials

import (
	"context"
	"net/http"
)

// Defaults applied by NewAPIKeyCredential.
const (
	DefaultHeaderName = "Authorization"
	DefaultPrefix     = "Bearer "

	typeAPIKey = "api_key"

	// visibleKeyChars is how much of the key Redacted keeps.
	visibleKeyChars = 4
)

// Credential authenticates outgoing HTTP requests.
type Credential interface {
	Apply(ctx context.Context, req *http.Request) error
	Type() string
}

// APIKeyCredential sends the key as "Authorization: Bearer <key>".
type APIKeyCredential struct {
	apiKey     string
	headerName string
	prefix     string
}

// NewAPIKeyCredential binds apiKey to the Authorization header as a bearer token.
func NewAPIKeyCredential(apiKey string) *APIKeyCredential {
	return &APIKeyCredential{apiKey: apiKey, headerName: DefaultHeaderName, prefix: DefaultPrefix}
}

// Apply sets the auth header on req. An empty key leaves req untouched.
func (c *APIKeyCredential) Apply(_ context.Context, req *http.Request) error {
	if c.apiKey == "" {
		return nil
	}
	name, value := c.Header()
	req.Header.Set(name, value)
	return nil
}

// Type implements Credential.
func (c *APIKeyCredential) Type() string {
	return typeAPIKey
}

// APIKey returns the raw key.
func (c *APIKeyCredential) APIKey() string {
	return c.apiKey
}

// Header returns the header name and value Apply would set.
func (c *APIKeyCredential) Header() (name, value string) {
	return c.headerName, c.prefix + c.apiKey
}

// Redacted returns the key with everything after its first four characters
// masked. Keys of four characters or fewer are masked entirely.
func (c *APIKeyCredential) Redacted() string {
	if len(c.apiKey) <= visibleKeyChars {
		return "[REDACTED]"
	}
	return c.apiKey[:visibleKeyChars] + "...[REDACTED]"
}

// String implements fmt.Stringer without exposing the key.
func (c *APIKeyCredential) String() string {
	return typeAPIKey + "(" + c.headerName + ": " + c.prefix + c.Redacted() + ")"
}
