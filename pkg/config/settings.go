package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults for the agent command.
const (
	DefaultAgentID        = "API-<API_KEY>"
	DefaultPrompt         = "Hello there!"
	DefaultCeiling        = 15 * time.Second
	DefaultMistralBaseURL = "https://api.mistral.ai"
	DefaultSettingsFile   = "aurora.yaml"
	DefaultPaymentLogFile = "logs/payment_module.log"

	// EnvPrefix is prepended to settings read from the environment (AURORA_AGENT_TIMEOUT, ...).
	EnvPrefix = "AURORA"
)

// Output formats for rendered responses.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputText = "text"
)

// Settings holds the CLI settings. They are read, in increasing precedence,
// from defaults, an optional YAML file, AURORA_* environment variables and flags.
type Settings struct {
	EnvFile      string            `mapstructure:"env_file" yaml:"env_file,omitempty"`
	MetricsFile  string            `mapstructure:"metrics_file" yaml:"metrics_file,omitempty"`
	OTLPEndpoint string            `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint,omitempty"`
	Agent        AgentSettings     `mapstructure:"agent" yaml:"agent"`
	Payment      PaymentSettings   `mapstructure:"payment" yaml:"payment"`
	Logging      LoggingConfigSpec `mapstructure:"logging" yaml:"logging"`
}

// AgentSettings configures the single conversation request.
type AgentSettings struct {
	ID      string        `mapstructure:"id" yaml:"id,omitempty"`
	Prompt  string        `mapstructure:"prompt" yaml:"prompt,omitempty"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
	BaseURL string        `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Output  string        `mapstructure:"output" yaml:"output,omitempty"`
}

// PaymentSettings configures the tier upgrade form.
type PaymentSettings struct {
	LogFile string `mapstructure:"log_file" yaml:"log_file,omitempty"`
}

// SetDefaults registers every settings key on v so that environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("env_file", DefaultDotEnvFile)
	v.SetDefault("metrics_file", "")
	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("agent.id", DefaultAgentID)
	v.SetDefault("agent.prompt", DefaultPrompt)
	v.SetDefault("agent.timeout", DefaultCeiling)
	v.SetDefault("agent.base_url", DefaultMistralBaseURL)
	v.SetDefault("agent.output", OutputJSON)
	v.SetDefault("payment.log_file", DefaultPaymentLogFile)
	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("logging.format", LogFormatText)
	v.SetDefault("logging.file", "")
}

// LoadSettings reads settings through v. A missing file is tolerated when
// path is the default settings file; an explicitly named file must exist.
func LoadSettings(v *viper.Viper, path string) (*Settings, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultSettingsFile
	}
	if err := readSettingsFile(v, path); err != nil {
		return nil, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func readSettingsFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultSettingsFile {
			return nil
		}
		return fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings for values the commands cannot run with.
func (s *Settings) Validate() error {
	if s.Agent.Timeout <= 0 {
		return invalidSetting("agent.timeout", "must be positive", s.Agent.Timeout.String())
	}
	switch s.Agent.Output {
	case OutputJSON, OutputYAML, OutputText:
	default:
		return invalidSetting("agent.output", "must be one of: json, yaml, text", s.Agent.Output)
	}
	if s.Agent.BaseURL == "" {
		return invalidSetting("agent.base_url", "is required", "")
	}
	return s.Logging.Validate()
}
