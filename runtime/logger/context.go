package logger

import "context"

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

// Context keys whose string values are copied onto every log record.
const (
	ContextKeyRequestID      contextKey = "request_id"
	ContextKeyProvider       contextKey = "provider"
	ContextKeyAgentID        contextKey = "agent_id"
	ContextKeyConversationID contextKey = "conversation_id"
	ContextKeyMemberID       contextKey = "member_id"
	ContextKeySessionID      contextKey = "session_id"
)

var allContextKeys = []contextKey{
	ContextKeyRequestID,
	ContextKeyProvider,
	ContextKeyAgentID,
	ContextKeyConversationID,
	ContextKeyMemberID,
	ContextKeySessionID,
}

// WithRequestID returns a new context with the request ID set.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// WithProvider returns a new context with the provider name set.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ContextKeyProvider, provider)
}

// WithAgentID returns a new context with the agent identifier set.
func WithAgentID(ctx context.Context, agentID string) context.Context {
	return context.WithValue(ctx, ContextKeyAgentID, agentID)
}

// WithConversationID returns a new context with the conversation ID set.
func WithConversationID(ctx context.Context, conversationID string) context.Context {
	return context.WithValue(ctx, ContextKeyConversationID, conversationID)
}

// WithMemberID returns a new context with the member ID set.
func WithMemberID(ctx context.Context, memberID string) context.Context {
	return context.WithValue(ctx, ContextKeyMemberID, memberID)
}

// WithSessionID returns a new context with the dialog session ID set.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ContextKeySessionID, sessionID)
}

// LoggingFields holds all context logging fields.
type LoggingFields struct {
	RequestID      string
	Provider       string
	AgentID        string
	ConversationID string
	MemberID       string
	SessionID      string
}

// WithLoggingContext sets every non-empty field of fields on ctx.
func WithLoggingContext(ctx context.Context, fields *LoggingFields) context.Context {
	if fields == nil {
		return ctx
	}
	set := func(key contextKey, v string) {
		if v != "" {
			ctx = context.WithValue(ctx, key, v)
		}
	}
	set(ContextKeyRequestID, fields.RequestID)
	set(ContextKeyProvider, fields.Provider)
	set(ContextKeyAgentID, fields.AgentID)
	set(ContextKeyConversationID, fields.ConversationID)
	set(ContextKeyMemberID, fields.MemberID)
	set(ContextKeySessionID, fields.SessionID)
	return ctx
}

// ExtractLoggingFields reads all logging fields from ctx.
func ExtractLoggingFields(ctx context.Context) LoggingFields {
	get := func(key contextKey) string {
		s, _ := ctx.Value(key).(string)
		return s
	}
	return LoggingFields{
		RequestID:      get(ContextKeyRequestID),
		Provider:       get(ContextKeyProvider),
		AgentID:        get(ContextKeyAgentID),
		ConversationID: get(ContextKeyConversationID),
		MemberID:       get(ContextKeyMemberID),
		SessionID:      get(ContextKeySessionID),
	}
}
