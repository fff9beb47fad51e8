// Package mistral provides a client for the Mistral conversations API.
package mistral

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/CrimsonX77/Aurora/pkg/errors"
	"github.com/CrimsonX77/Aurora/pkg/httputil"
	"github.com/CrimsonX77/Aurora/runtime/credentials"
	"github.com/CrimsonX77/Aurora/runtime/logger"
	"github.com/CrimsonX77/Aurora/runtime/providers"
)

const (
	// ProviderID identifies this client in logs, spans and metrics.
	ProviderID = "mistral"

	// DefaultBaseURL is the public API endpoint.
	DefaultBaseURL = "https://api.mistral.ai"

	conversationsPath = "/v1/conversations"
	component         = "mistral"
	installRemedy     = "install it with: go get github.com/CrimsonX77/Aurora/runtime/providers/mistral"
)

// Client starts conversations with hosted agents. It is built once from an
// API key and is safe for concurrent use.
type Client struct {
	providers.BaseProvider
	baseURL string
}

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*clientOptions)

// WithBaseURL overrides the API endpoint. Used by tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// NewClient builds a client bound to cred. A missing credential or HTTP
// client is reported as a dependency error, separate from a missing key.
func NewClient(cred *credentials.APIKeyCredential, opts ...Option) (*Client, error) {
	o := clientOptions{
		baseURL:    DefaultBaseURL,
		httpClient: httputil.NewHTTPClient(httputil.DefaultProviderTimeout),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if cred == nil {
		return nil, pkgerrors.Dependency(component, "NewClient",
			"mistral client requires an API key credential; "+installRemedy, nil)
	}
	if o.httpClient == nil {
		return nil, pkgerrors.Dependency(component, "NewClient",
			"mistral client requires an HTTP transport; "+installRemedy, nil)
	}

	return &Client{
		BaseProvider: providers.NewBaseProvider(ProviderID, o.httpClient, cred),
		baseURL:      strings.TrimRight(o.baseURL, "/"),
	}, nil
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ConversationRequest starts a conversation with an agent.
type ConversationRequest struct {
	AgentID string `json:"agent_id"`
	Inputs  string `json:"inputs"`
}

// StartConversation makes exactly one request starting a conversation with
// agentID and returns the decoded response. Errors are not retried.
func (c *Client) StartConversation(ctx context.Context, agentID, inputs string) (*ConversationResponse, error) {
	ctx = logger.WithAgentID(logger.WithProvider(ctx, ProviderID), agentID)
	logger.ConversationCall(ctx, ProviderID, agentID, len(inputs))

	start := time.Now()
	body, err := c.MakeJSONRequest(ctx, c.baseURL+conversationsPath, ConversationRequest{
		AgentID: agentID,
		Inputs:  inputs,
	}, nil)
	if err != nil {
		logger.ConversationError(ctx, ProviderID, err)
		return nil, err
	}

	resp, err := ParseConversationResponse(body)
	if err != nil {
		logger.ConversationError(ctx, ProviderID, err)
		return nil, err
	}

	logger.ConversationResponse(ctx, ProviderID, time.Since(start),
		resp.Usage.PromptTokens, resp.Usage.CompletionTokens,
		"conversation_id", resp.ConversationID)
	return resp, nil
}

// ParseConversationResponse decodes body, keeping the raw bytes so that fields
// without a struct counterpart survive Dump.
func ParseConversationResponse(body []byte) (*ConversationResponse, error) {
	var resp ConversationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation response: %w", err)
	}
	resp.raw = append(json.RawMessage(nil), body...)
	return &resp, nil
}
