package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestModuleConfig_LevelFor(t *testing.T) {
	mc := NewModuleConfig(slog.LevelInfo)
	mc.SetModuleLevel("runtime", slog.LevelWarn)
	mc.SetModuleLevel("runtime.billing", slog.LevelDebug)

	tests := map[string]slog.Level{
		"runtime.billing":          slog.LevelDebug,
		"runtime.billing.internal": slog.LevelDebug,
		"runtime.bounded":          slog.LevelWarn,
		"tools.aurora":             slog.LevelInfo,
		"":                         slog.LevelInfo,
	}
	for module, want := range tests {
		if got := mc.LevelFor(module); got != want {
			t.Errorf("LevelFor(%q) = %v, want %v", module, got, want)
		}
	}
	if got := mc.minLevel(); got != slog.LevelDebug {
		t.Errorf("minLevel() = %v, want debug", got)
	}
}

func TestConfigure_Nil(t *testing.T) {
	if err := Configure(nil); err != nil {
		t.Errorf("Configure(nil) should not error, got: %v", err)
	}
}

func TestConfigure_JSONFormat(t *testing.T) {
	buf := captureOutput(t, slog.LevelInfo)

	if err := Configure(&LoggingConfigSpec{DefaultLevel: "info", Format: FormatJSON}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	Info("test message", "key", "value")

	out := buf.String()
	if !strings.Contains(out, `"msg":"test message"`) || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("expected JSON output, got: %s", out)
	}
}

func TestConfigure_CommonFields(t *testing.T) {
	buf := captureOutput(t, slog.LevelInfo)

	err := Configure(&LoggingConfigSpec{CommonFields: map[string]string{"service": "aurora"}})
	if err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	Info("hello")

	if !strings.Contains(buf.String(), "service=aurora") {
		t.Errorf("expected common field, got: %s", buf.String())
	}
}

func TestConfigure_FileAndConsole(t *testing.T) {
	buf := captureOutput(t, slog.LevelInfo)
	path := filepath.Join(t.TempDir(), "logs", "payment_module.log")
	t.Cleanup(func() { _ = Close() })

	if err := Configure(&LoggingConfigSpec{File: path}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	Info("Payment processed: TXN_20261019120000")
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	for name, out := range map[string]string{"file": string(data), "console": buf.String()} {
		if !strings.Contains(out, "Payment processed: TXN_20261019120000") {
			t.Errorf("expected line in %s output, got: %s", name, out)
		}
	}
}

func TestConfigure_ModuleLevels(t *testing.T) {
	buf := captureOutput(t, slog.LevelInfo)

	err := Configure(&LoggingConfigSpec{
		DefaultLevel: "warn",
		Modules:      []ModuleLoggingSpec{{Name: "runtime.logger", Level: "debug"}},
	})
	if err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	// Calls from this test file are attributed to runtime.logger.
	Debug("module debug line")
	if !strings.Contains(buf.String(), "module debug line") || !strings.Contains(buf.String(), "logger=runtime.logger") {
		t.Errorf("expected module-level debug line, got: %s", buf.String())
	}
}

func TestConfigure_UnwritableFile(t *testing.T) {
	captureOutput(t, slog.LevelInfo)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	err := Configure(&LoggingConfigSpec{File: filepath.Join(blocker, "nested", "x.log")})
	if err == nil {
		t.Fatal("expected error when log directory cannot be created")
	}
}

func TestCurrentOutput_WithoutFile(t *testing.T) {
	captureOutput(t, slog.LevelInfo)
	_ = Close()

	var buf bytes.Buffer
	logOutput = &buf
	if currentOutput() != &buf {
		t.Error("expected console writer when no log file is open")
	}
}
