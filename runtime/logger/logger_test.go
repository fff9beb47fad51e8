package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// captureOutput points the global logger at a buffer for the duration of the test.
func captureOutput(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	originalLogger := DefaultLogger
	originalOutput := logOutput
	t.Cleanup(func() {
		DefaultLogger = originalLogger
		logOutput = originalOutput
	})

	var buf bytes.Buffer
	logOutput = &buf
	SetLevel(level)
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"DEBUG":   slog.LevelDebug,
		" info ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetVerbose(t *testing.T) {
	buf := captureOutput(t, slog.LevelInfo)

	Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be suppressed at info level, got: %s", buf.String())
	}

	SetVerbose(true)
	Debug("shown", "key", "value")
	if !strings.Contains(buf.String(), "shown") || !strings.Contains(buf.String(), "key=value") {
		t.Errorf("expected debug line, got: %s", buf.String())
	}
}

func TestLevelsWriteMessages(t *testing.T) {
	buf := captureOutput(t, slog.LevelDebug)
	ctx := context.Background()

	Info("info message")
	InfoContext(ctx, "info ctx message")
	Debug("debug message")
	DebugContext(ctx, "debug ctx message")
	Warn("warn message")
	WarnContext(ctx, "warn ctx message")
	Error("error message")
	ErrorContext(ctx, "error ctx message")

	for _, want := range []string{
		"level=INFO msg=\"info message\"",
		"level=DEBUG msg=\"debug ctx message\"",
		"level=WARN msg=\"warn message\"",
		"level=ERROR msg=\"error ctx message\"",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output, got: %s", want, buf.String())
		}
	}
}

func TestContextFieldsAreLogged(t *testing.T) {
	buf := captureOutput(t, slog.LevelInfo)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithMemberID(ctx, "m_test123")
	InfoContext(ctx, "payment dialog opened")

	out := buf.String()
	if !strings.Contains(out, "request_id=req-1") || !strings.Contains(out, "member_id=m_test123") {
		t.Errorf("expected context fields in output, got: %s", out)
	}
}

func TestConversationHelpers(t *testing.T) {
	buf := captureOutput(t, slog.LevelInfo)
	ctx := context.Background()

	ConversationCall(ctx, "mistral", "ag_1", 12)
	ConversationResponse(ctx, "mistral", 250*time.Millisecond, 10, 20, "conversation_id", "conv_1")
	ConversationError(ctx, "mistral", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{
		"msg=\"conversation request\"", "agent_id=ag_1", "input_chars=12",
		"msg=\"conversation response\"", "tokens_out=20", "conversation_id=conv_1",
		"msg=\"conversation request failed\"", "error=boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got: %s", want, out)
		}
	}
}

func TestRedactSensitiveData(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bearer", "Authorization: Bearer abcDEF123_-xyz", "Authorization: Bearer [REDACTED]"},
		{"sk key", "key sk-abcdefghijklmnopqrstuvwxyz0123456789 end", "key sk-a...[REDACTED] end"},
		{"clean", "nothing secret here", "nothing secret here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedactSensitiveData(tt.input); got != tt.want {
				t.Errorf("RedactSensitiveData() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIRequest_RedactsAndRespectsLevel(t *testing.T) {
	buf := captureOutput(t, slog.LevelInfo)

	APIRequest("mistral", "POST", "https://api.mistral.ai/v1/conversations",
		map[string]string{"Authorization": "Bearer secret-token"}, map[string]string{"inputs": "Hello there!"})
	if buf.Len() != 0 {
		t.Fatalf("APIRequest must be silent at info level, got: %s", buf.String())
	}

	SetLevel(slog.LevelDebug)
	APIRequest("mistral", "POST", "https://api.mistral.ai/v1/conversations",
		map[string]string{"Authorization": "Bearer secret-token"}, map[string]string{"inputs": "Hello there!"})

	out := buf.String()
	if strings.Contains(out, "secret-token") {
		t.Errorf("token leaked into log: %s", out)
	}
	if !strings.Contains(out, "Hello there!") {
		t.Errorf("expected body in log, got: %s", out)
	}
}

func TestAPIResponse(t *testing.T) {
	buf := captureOutput(t, slog.LevelDebug)

	APIResponse("mistral", 200, `{"object":"conversation.response"}`, nil)
	APIResponse("mistral", 401, "unauthorized", nil)
	APIResponse("mistral", 0, "", errors.New("dial tcp: refused"))

	out := buf.String()
	for _, want := range []string{"status_code=200", "API response (error status)", "dial tcp: refused"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got: %s", want, out)
		}
	}
}

func TestSetLogger_IsPreserved(t *testing.T) {
	originalLogger := DefaultLogger
	t.Cleanup(func() {
		SetLogger(nil)
		DefaultLogger = originalLogger
	})

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	SetLevel(slog.LevelError)
	if err := Configure(&LoggingConfigSpec{Format: FormatText}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	Info("kept")
	if !strings.Contains(buf.String(), `"msg":"kept"`) {
		t.Errorf("custom logger was replaced, got: %s", buf.String())
	}
}
