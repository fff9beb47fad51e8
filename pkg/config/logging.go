package config

import (
	"fmt"

	pkgerrors "github.com/CrimsonX77/Aurora/pkg/errors"
)

// LoggingConfigSpec defines the logging configuration parameters.
type LoggingConfigSpec struct {
	// DefaultLevel is the default log level for all modules.
	// Supported values: trace, debug, info, warn, error.
	DefaultLevel string `mapstructure:"level" yaml:"level,omitempty"`

	// Format specifies the output format, "json" or "text".
	Format string `mapstructure:"format" yaml:"format,omitempty"`

	// File, when set, receives a copy of every log line in addition to the console.
	File string `mapstructure:"file" yaml:"file,omitempty"`

	// CommonFields are key-value pairs added to every log entry.
	CommonFields map[string]string `mapstructure:"common_fields" yaml:"common_fields,omitempty"`

	// Modules configures logging for specific modules.
	// Module names use dot notation (e.g., runtime.billing).
	Modules []ModuleLoggingConfig `mapstructure:"modules" yaml:"modules,omitempty"`
}

// ModuleLoggingConfig configures logging for a specific module.
type ModuleLoggingConfig struct {
	Name   string            `mapstructure:"name" yaml:"name"`
	Level  string            `mapstructure:"level" yaml:"level"`
	Fields map[string]string `mapstructure:"fields" yaml:"fields,omitempty"`
}

// LogLevel constants for programmatic use.
const (
	LogLevelTrace = "trace"
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// LogFormat constants for programmatic use.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// DefaultLoggingConfig returns a LoggingConfigSpec with sensible defaults.
func DefaultLoggingConfig() LoggingConfigSpec {
	return LoggingConfigSpec{
		DefaultLevel: LogLevelInfo,
		Format:       LogFormatText,
	}
}

// Validate validates the LoggingConfigSpec.
func (c *LoggingConfigSpec) Validate() error {
	if c.DefaultLevel != "" && !isValidLogLevel(c.DefaultLevel) {
		return invalidSetting("logging.level", "must be one of: trace, debug, info, warn, error", c.DefaultLevel)
	}

	if c.Format != "" && c.Format != LogFormatJSON && c.Format != LogFormatText {
		return invalidSetting("logging.format", "must be one of: json, text", c.Format)
	}

	for i, mod := range c.Modules {
		if mod.Name == "" {
			return invalidSetting(fmt.Sprintf("logging.modules[%d].name", i), "module name is required", "")
		}
		if mod.Level != "" && !isValidLogLevel(mod.Level) {
			return invalidSetting(
				"logging.modules["+mod.Name+"].level",
				"must be one of: trace, debug, info, warn, error",
				mod.Level,
			)
		}
	}

	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// invalidSetting builds a configuration error for a single settings field.
func invalidSetting(field, message, value string) error {
	msg := field + ": " + message
	if value != "" {
		msg += " (got: " + value + ")"
	}
	return pkgerrors.Configuration("config", "Validate", msg).
		WithDetails(map[string]any{"field": field, "value": value})
}
