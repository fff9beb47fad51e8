// Package providers holds the HTTP plumbing shared by hosted model API clients.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/CrimsonX77/Aurora/runtime/credentials"
	"github.com/CrimsonX77/Aurora/runtime/logger"
)

// HTTP constants
const (
	ContentTypeHeader   = "Content-Type"
	AcceptHeader        = "Accept"
	ApplicationJSON     = "application/json"
	AuthorizationHeader = "Authorization"
)

// BaseProvider provides common functionality shared across provider clients.
// It should be embedded in concrete client structs.
type BaseProvider struct {
	id         string
	client     *http.Client
	credential credentials.Credential
}

// NewBaseProvider creates a new BaseProvider with common fields.
func NewBaseProvider(id string, client *http.Client, cred credentials.Credential) BaseProvider {
	return BaseProvider{
		id:         id,
		client:     client,
		credential: cred,
	}
}

// ID returns the provider ID.
func (b *BaseProvider) ID() string {
	return b.id
}

// Close closes the HTTP client's idle connections.
func (b *BaseProvider) Close() error {
	if b.client != nil {
		b.client.CloseIdleConnections()
	}
	return nil
}

// RequestHeaders is a map of HTTP header key-value pairs.
type RequestHeaders map[string]string

// MakeJSONRequest marshals request and POSTs it to url, returning the response
// body of a 200 reply. Non-200 replies become an *HTTPError.
func (b *BaseProvider) MakeJSONRequest(
	ctx context.Context,
	url string,
	request any,
	headers RequestHeaders,
) ([]byte, error) {
	reqBytes, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return b.MakeRawRequest(ctx, url, reqBytes, headers)
}

// MakeRawRequest performs an HTTP POST request with a pre-marshaled body.
func (b *BaseProvider) MakeRawRequest(
	ctx context.Context,
	url string,
	body []byte,
	headers RequestHeaders,
) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(ContentTypeHeader, ApplicationJSON)
	req.Header.Set(AcceptHeader, ApplicationJSON)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if b.credential != nil {
		if err := b.credential.Apply(ctx, req); err != nil {
			return nil, fmt.Errorf("failed to apply credentials: %w", err)
		}
	}

	logHeaders := make(map[string]string, len(req.Header))
	for k := range req.Header {
		logHeaders[k] = req.Header.Get(k)
	}
	logger.APIRequest(b.id, http.MethodPost, url, logHeaders, json.RawMessage(body))

	resp, err := b.client.Do(req)
	if err != nil {
		logger.APIResponse(b.id, 0, "", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.APIResponse(b.id, resp.StatusCode, string(respBytes), nil)

	if resp.StatusCode != http.StatusOK {
		return nil, ParseHTTPError(b.id, resp.StatusCode, respBytes)
	}

	return respBytes, nil
}
