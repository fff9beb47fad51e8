// Package version reports the Aurora build version.
// Version variables can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/CrimsonX77/Aurora/runtime/version.version=1.0.0"
package version

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/CrimsonX77/Aurora/runtime/logger"
)

const (
	devVersion     = "dev"
	shortCommitLen = 7
	vcsRevisionKey = "vcs.revision"
	vcsModifiedKey = "vcs.modified"
)

// Build-time variables, overridden with -ldflags.
var (
	version   = devVersion
	gitCommit = ""
	buildDate = ""
)

// GetVersion returns the current version string, falling back to the module
// version from build info when not set at build time.
func GetVersion() string {
	if version != devVersion {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return devVersion
}

func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

func commit() string {
	if gitCommit != "" {
		return gitCommit
	}
	rev := buildSetting(vcsRevisionKey)
	return rev[:min(shortCommitLen, len(rev))]
}

// GetVersionInfo returns the multi-line version banner printed by "aurora version".
func GetVersionInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "aurora version %s", GetVersion())
	if c := commit(); c != "" {
		fmt.Fprintf(&b, "\ncommit: %s", c)
	}
	if buildDate != "" {
		fmt.Fprintf(&b, "\nbuilt: %s", buildDate)
	}
	return b.String()
}

// GetBuildInfo returns version details as structured log attributes.
func GetBuildInfo() []any {
	attrs := []any{"version", GetVersion()}
	if c := commit(); c != "" {
		attrs = append(attrs, "commit", c)
	}
	if gitCommit == "" && buildSetting(vcsModifiedKey) == "true" {
		attrs = append(attrs, "dirty", true)
	}
	if buildDate != "" {
		attrs = append(attrs, "built", buildDate)
	}
	return attrs
}

// LogStartup logs version information at debug level.
func LogStartup() {
	logger.Debug("aurora starting", GetBuildInfo()...)
}
