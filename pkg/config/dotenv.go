package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// DefaultDotEnvFile is the conventional env file read from the working directory.
const DefaultDotEnvFile = ".env"

// APIKeyVar is the variable a bare-token env file is bound to.
const APIKeyVar = "MISTRAL_API_KEY"

// LoadDotEnv reads an env file and returns its variables.
//
// A missing or blank file yields an empty map. When the content contains at
// least one '=' it is parsed as KEY=VALUE lines; otherwise the whole trimmed
// content is taken as the value of APIKeyVar.
func LoadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		path = DefaultDotEnvFile
	}

	//nolint:gosec // G304: path comes from the CLI or its default
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	return ParseDotEnv(string(data)), nil
}

// ParseDotEnv parses env file content using the same rules as LoadDotEnv.
func ParseDotEnv(content string) map[string]string {
	text := strings.TrimSpace(content)
	result := make(map[string]string)
	if text == "" {
		return result
	}

	if !strings.Contains(text, "=") {
		result[APIKeyVar] = text
		return result
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		result[strings.TrimSpace(key)] = unquote(value)
	}
	return result
}

// unquote trims whitespace, then any run of double quotes, then any run of
// single quotes from both ends.
func unquote(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, `"`)
	return strings.Trim(v, "'")
}
