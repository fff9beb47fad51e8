// Package logger provides structured logging with automatic secret redaction.
//
// This package wraps Go's standard log/slog with convenience functions for:
//   - hosted conversation API calls (requests, responses, errors)
//   - automatic API key and bearer token redaction
//   - contextual fields (request, agent, member) pulled from context.Context
//   - console plus optional log file output
//
// All exported functions use the global DefaultLogger which can be configured
// for different output formats, levels and destinations.
package logger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"regexp"
	"runtime"
	"strings"
	"time"
)

// LevelTrace is below slog.LevelDebug and used for "trace" in configuration.
const LevelTrace = slog.LevelDebug - 4

var (
	// DefaultLogger is the global structured logger instance.
	// It is initialized at slog.LevelInfo unless LOG_LEVEL says otherwise.
	DefaultLogger *slog.Logger

	// logOutput is the console destination. Tests swap it for a buffer.
	logOutput io.Writer = os.Stderr

	// customHandler is set by SetLogger and makes Configure a no-op.
	customHandler slog.Handler
)

func init() {
	level := slog.LevelInfo
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		level = ParseLevel(envLevel)
	}
	DefaultLogger = slog.New(NewContextHandler(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: level,
	})))
}

// ParseLevel converts a level name to a slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel replaces the global logger with a text logger at the given level.
func SetLevel(level slog.Level) {
	if customHandler != nil {
		return
	}
	DefaultLogger = slog.New(NewContextHandler(slog.NewTextHandler(currentOutput(), &slog.HandlerOptions{
		Level: level,
	})))
}

// SetVerbose enables debug-level logging when verbose is true, otherwise sets info-level.
func SetVerbose(verbose bool) {
	if verbose {
		SetLevel(slog.LevelDebug)
	} else {
		SetLevel(slog.LevelInfo)
	}
}

// SetLogger installs a caller-provided logger. Later Configure and SetLevel
// calls leave it in place. Passing nil restores configurable behavior.
func SetLogger(l *slog.Logger) {
	if l == nil {
		customHandler = nil
		SetLevel(slog.LevelInfo)
		return
	}
	customHandler = l.Handler()
	DefaultLogger = l
}

// callerSkip skips runtime.Callers, logAt and the exported wrapper so that
// records carry the PC of the code that called the wrapper.
const callerSkip = 3

// logAt emits a record attributed to the caller skip frames up.
func logAt(ctx context.Context, skip int, level slog.Level, msg string, args ...any) {
	if !DefaultLogger.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(skip, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = DefaultLogger.Handler().Handle(ctx, r)
}

// Info logs an informational message with structured key-value attributes.
func Info(msg string, args ...any) {
	logAt(context.Background(), callerSkip, slog.LevelInfo, msg, args...)
}

// InfoContext logs an informational message with context fields.
func InfoContext(ctx context.Context, msg string, args ...any) {
	logAt(ctx, callerSkip, slog.LevelInfo, msg, args...)
}

// Debug logs a debug-level message with structured attributes.
func Debug(msg string, args ...any) {
	logAt(context.Background(), callerSkip, slog.LevelDebug, msg, args...)
}

// DebugContext logs a debug message with context fields.
func DebugContext(ctx context.Context, msg string, args ...any) {
	logAt(ctx, callerSkip, slog.LevelDebug, msg, args...)
}

// Warn logs a warning message with structured attributes.
func Warn(msg string, args ...any) {
	logAt(context.Background(), callerSkip, slog.LevelWarn, msg, args...)
}

// WarnContext logs a warning message with context fields.
func WarnContext(ctx context.Context, msg string, args ...any) {
	logAt(ctx, callerSkip, slog.LevelWarn, msg, args...)
}

// Error logs an error message with structured attributes.
func Error(msg string, args ...any) {
	logAt(context.Background(), callerSkip, slog.LevelError, msg, args...)
}

// ErrorContext logs an error message with context fields.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	logAt(ctx, callerSkip, slog.LevelError, msg, args...)
}

// ConversationCall logs the start of a hosted conversation request.
func ConversationCall(ctx context.Context, provider, agentID string, inputChars int, attrs ...any) {
	allAttrs := make([]any, 0, 6+len(attrs))
	allAttrs = append(allAttrs,
		"provider", provider,
		"agent_id", agentID,
		"input_chars", inputChars,
	)
	allAttrs = append(allAttrs, attrs...)
	logAt(ctx, callerSkip, slog.LevelInfo, "conversation request", allAttrs...)
}

// ConversationResponse logs a completed conversation request with token usage.
func ConversationResponse(
	ctx context.Context, provider string, latency time.Duration, tokensIn, tokensOut int, attrs ...any,
) {
	allAttrs := make([]any, 0, 8+len(attrs))
	allAttrs = append(allAttrs,
		"provider", provider,
		"latency", latency,
		"tokens_in", tokensIn,
		"tokens_out", tokensOut,
	)
	allAttrs = append(allAttrs, attrs...)
	logAt(ctx, callerSkip, slog.LevelInfo, "conversation response", allAttrs...)
}

// ConversationError logs a failed conversation request.
func ConversationError(ctx context.Context, provider string, err error, attrs ...any) {
	allAttrs := make([]any, 0, 4+len(attrs))
	allAttrs = append(allAttrs,
		"provider", provider,
		"error", err,
	)
	allAttrs = append(allAttrs, attrs...)
	logAt(ctx, callerSkip, slog.LevelError, "conversation request failed", allAttrs...)
}

var (
	// apiKeyPatterns match secrets that must never reach a log line.
	apiKeyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`sk-[a-zA-Z0-9]{32,}`),     // OpenAI-style keys
		regexp.MustCompile(`Bearer\s+[a-zA-Z0-9_-]+`), // Bearer tokens
	}
)

// RedactSensitiveData removes API keys and bearer tokens from strings.
// Keys keep their first four characters for debugging; bearer tokens are
// replaced entirely.
func RedactSensitiveData(input string) string {
	result := input

	for _, pattern := range apiKeyPatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			if strings.HasPrefix(match, "Bearer") {
				return "Bearer [REDACTED]"
			}
			if len(match) > 8 {
				return match[:4] + "...[REDACTED]"
			}
			return "[REDACTED]"
		})
	}

	return result
}

// APIRequest logs HTTP request details at debug level with redaction.
// It is a no-op when debug logging is disabled.
func APIRequest(provider, method, url string, headers map[string]string, body any) {
	if !DefaultLogger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := make([]any, 0, 8)
	attrs = append(attrs,
		"provider", provider,
		"method", method,
		"url", RedactSensitiveData(url),
	)

	if len(headers) > 0 {
		redactedHeaders := make(map[string]string, len(headers))
		for key, value := range headers {
			redactedHeaders[key] = RedactSensitiveData(value)
		}
		attrs = append(attrs, "headers", redactedHeaders)
	}

	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			attrs = append(attrs, "body_error", err.Error())
		} else {
			attrs = append(attrs, "body", RedactSensitiveData(string(bodyJSON)))
		}
	}

	Debug("API request", attrs...)
}

// APIResponse logs HTTP response details at debug level with redaction.
// Transport errors are logged at error level regardless of the debug setting.
func APIResponse(provider string, statusCode int, body string, err error) {
	if err != nil {
		Error("API response error", "provider", provider, "status_code", statusCode, "error", err.Error())
		return
	}
	if !DefaultLogger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := []any{"provider", provider, "status_code", statusCode}
	if body != "" {
		var jsonObj any
		if json.Unmarshal([]byte(body), &jsonObj) == nil {
			// NOSONAR: indenting a value that just decoded cannot fail
			pretty, _ := json.MarshalIndent(jsonObj, "", "  ")
			attrs = append(attrs, "body", RedactSensitiveData(string(pretty)))
		} else {
			attrs = append(attrs, "body", RedactSensitiveData(body))
		}
	}

	msg := "API response"
	if statusCode >= 400 {
		msg = "API response (error status)"
	}
	Debug(msg, attrs...)
}
