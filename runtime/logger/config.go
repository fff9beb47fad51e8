package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ModuleConfig manages per-module log levels. Module names are dotted package
// paths relative to the module root (e.g. "runtime.billing"); the most
// specific configured prefix wins.
type ModuleConfig struct {
	mu           sync.RWMutex
	defaultLevel slog.Level
	modules      map[string]slog.Level
}

// NewModuleConfig creates a new ModuleConfig with the given default level.
func NewModuleConfig(defaultLevel slog.Level) *ModuleConfig {
	return &ModuleConfig{
		defaultLevel: defaultLevel,
		modules:      make(map[string]slog.Level),
	}
}

// SetModuleLevel sets the log level for a module and its children.
func (m *ModuleConfig) SetModuleLevel(module string, level slog.Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modules[module] = level
}

// LevelFor returns the level for module, walking up the dotted hierarchy.
func (m *ModuleConfig) LevelFor(module string) slog.Level {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for module != "" {
		if level, ok := m.modules[module]; ok {
			return level
		}
		lastDot := strings.LastIndex(module, ".")
		if lastDot == -1 {
			break
		}
		module = module[:lastDot]
	}
	return m.defaultLevel
}

// minLevel is the lowest level any module may log at.
func (m *ModuleConfig) minLevel() slog.Level {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lowest := m.defaultLevel
	for _, l := range m.modules {
		if l < lowest {
			lowest = l
		}
	}
	return lowest
}

// LoggingConfigSpec mirrors config.LoggingConfigSpec to avoid an import cycle.
type LoggingConfigSpec struct {
	DefaultLevel string
	Format       string // "json" or "text"
	File         string
	CommonFields map[string]string
	Modules      []ModuleLoggingSpec
}

// ModuleLoggingSpec configures logging for a specific module.
type ModuleLoggingSpec struct {
	Name   string
	Level  string
	Fields map[string]string
}

// Log format constants
const (
	FormatJSON = "json"
	FormatText = "text"
)

const (
	logDirPerm  = 0o750
	logFilePerm = 0o640
)

var (
	fileMu  sync.Mutex
	logFile *os.File
)

// Configure applies cfg to the global logger. When cfg.File is set every line
// is written to both the console and that file; its directory is created.
func Configure(cfg *LoggingConfigSpec) error {
	if cfg == nil || customHandler != nil {
		return nil
	}

	if err := openLogFile(cfg.File); err != nil {
		return err
	}

	defaultLevel := slog.LevelInfo
	if cfg.DefaultLevel != "" {
		defaultLevel = ParseLevel(cfg.DefaultLevel)
	}

	commonFields := make([]slog.Attr, 0, len(cfg.CommonFields))
	for k, v := range cfg.CommonFields {
		commonFields = append(commonFields, slog.String(k, v))
	}

	var moduleConfig *ModuleConfig
	if len(cfg.Modules) > 0 {
		moduleConfig = NewModuleConfig(defaultLevel)
		for _, mod := range cfg.Modules {
			moduleConfig.SetModuleLevel(mod.Name, ParseLevel(mod.Level))
		}
	}

	initLogger(defaultLevel, commonFields, moduleConfig, cfg.Format == FormatJSON)
	return nil
}

// Close flushes and closes the log file opened by Configure, if any.
func Close() error {
	fileMu.Lock()
	defer fileMu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func openLogFile(path string) error {
	fileMu.Lock()
	defer fileMu.Unlock()

	if logFile != nil {
		if logFile.Name() == path {
			return nil
		}
		_ = logFile.Close()
		logFile = nil
	}
	if path == "" {
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, logDirPerm); err != nil {
			return fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}
	//nolint:gosec // G304: log path comes from configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logFile = f
	return nil
}

// currentOutput is the console writer, fanned out to the log file when open.
func currentOutput() io.Writer {
	fileMu.Lock()
	defer fileMu.Unlock()
	if logFile == nil {
		return logOutput
	}
	return io.MultiWriter(logOutput, logFile)
}

func initLogger(level slog.Level, commonFields []slog.Attr, moduleConfig *ModuleConfig, useJSON bool) {
	handlerLevel := level
	if moduleConfig != nil {
		handlerLevel = moduleConfig.minLevel()
	}
	opts := &slog.HandlerOptions{Level: handlerLevel}

	var base slog.Handler
	if useJSON {
		base = slog.NewJSONHandler(currentOutput(), opts)
	} else {
		base = slog.NewTextHandler(currentOutput(), opts)
	}

	var handler slog.Handler
	if moduleConfig != nil {
		handler = NewModuleHandler(base, moduleConfig, commonFields...)
	} else {
		handler = NewContextHandler(base, commonFields...)
	}

	DefaultLogger = slog.New(handler)
	slog.SetDefault(DefaultLogger)
}
