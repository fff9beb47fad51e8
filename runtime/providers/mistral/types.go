package mistral

import (
	"encoding/json"
	"strings"
)

// Output entry types returned by the conversations API.
const (
	OutputTypeMessage = "message.output"
)

// ConversationResponse is the reply to a conversation start request.
type ConversationResponse struct {
	Object         string   `json:"object"`
	ConversationID string   `json:"conversation_id"`
	Outputs        []Output `json:"outputs"`
	Usage          Usage    `json:"usage"`

	raw json.RawMessage
}

// Output is one entry of a conversation response.
type Output struct {
	Type        string          `json:"type"`
	Object      string          `json:"object,omitempty"`
	ID          string          `json:"id,omitempty"`
	Role        string          `json:"role,omitempty"`
	AgentID     string          `json:"agent_id,omitempty"`
	Model       string          `json:"model,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
	CompletedAt string          `json:"completed_at,omitempty"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// contentChunk is one element of an array-valued message content.
type contentChunk struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Dump returns the response as a generic structure. The raw body is used
// when available so that no field returned by the service is lost.
func (r *ConversationResponse) Dump() (any, error) {
	if r == nil {
		return nil, nil
	}
	data := []byte(r.raw)
	if len(data) == 0 {
		var err error
		if data, err = json.Marshal(r); err != nil {
			return nil, err
		}
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Text concatenates the text of every message output.
func (r *ConversationResponse) Text() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for i := range r.Outputs {
		if r.Outputs[i].Type != OutputTypeMessage {
			continue
		}
		b.WriteString(r.Outputs[i].Text())
	}
	return b.String()
}

// Text returns the output content as plain text. Content is either a string
// or an array of chunks of which only text chunks are kept.
func (o *Output) Text() string {
	if len(o.Content) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(o.Content, &s) == nil {
		return s
	}
	var chunks []contentChunk
	if json.Unmarshal(o.Content, &chunks) != nil {
		return ""
	}
	var b strings.Builder
	for _, c := range chunks {
		if c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}
