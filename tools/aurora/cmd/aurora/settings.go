package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CrimsonX77/Aurora/pkg/config"
	"github.com/CrimsonX77/Aurora/runtime/logger"
)

// Flag names shared by the subcommands.
const (
	flagConfig      = "config"
	flagMetricsFile = "metrics-file"
)

// loadSettings reads settings with the command's flags bound to their
// settings keys. bindings maps settings key to flag name.
func loadSettings(cmd *cobra.Command, bindings map[string]string) (*config.Settings, error) {
	v := viper.New()
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag --%s: %w", flag, err)
		}
	}

	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, err
	}
	return config.LoadSettings(v, path)
}

// configureLogging applies the logging settings. Verbose forces debug level
// and file, when set, replaces the configured log file.
func configureLogging(cmd *cobra.Command, spec config.LoggingConfigSpec, file string) error {
	out := &logger.LoggingConfigSpec{
		DefaultLevel: spec.DefaultLevel,
		Format:       spec.Format,
		File:         spec.File,
		CommonFields: spec.CommonFields,
	}
	for _, mod := range spec.Modules {
		out.Modules = append(out.Modules, logger.ModuleLoggingSpec{
			Name:   mod.Name,
			Level:  mod.Level,
			Fields: mod.Fields,
		})
	}
	if verbose, _ := cmd.Flags().GetBool(flagVerbose); verbose {
		out.DefaultLevel = config.LogLevelDebug
	}
	if file != "" {
		out.File = file
	}
	return logger.Configure(out)
}

func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(flagConfig, "c", config.DefaultSettingsFile, "Settings file path")
}
