package providers

import (
	"encoding/json"
	"fmt"
)

// HTTPError is a non-200 reply from a provider API.
type HTTPError struct {
	Provider   string
	StatusCode int
	Message    string
	Body       []byte
}

// Error implements error.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s API error (HTTP %d): %s", e.Provider, e.StatusCode, e.Message)
}

// ParseHTTPError extracts a human-readable message from an error reply.
// Hosted APIs answer with {"message": "..."} or {"detail": ...}; anything
// else falls back to the raw body.
func ParseHTTPError(provider string, statusCode int, body []byte) *HTTPError {
	herr := &HTTPError{Provider: provider, StatusCode: statusCode, Body: body, Message: string(body)}

	var errResp struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return herr
	}
	switch {
	case errResp.Message != "":
		herr.Message = errResp.Message
	case len(errResp.Detail) > 0:
		var detail string
		if json.Unmarshal(errResp.Detail, &detail) == nil {
			herr.Message = detail
		} else {
			herr.Message = string(errResp.Detail)
		}
	}
	return herr
}
