package config

import (
	"os"
	"strings"
)

// Environment is an immutable view of configuration variables assembled once
// at startup. Values already present in the process environment always win
// over values read from an env file; the process environment itself is never
// modified.
type Environment struct {
	vars map[string]string
}

// NewEnvironment merges file variables into a copy of process using
// set-if-absent semantics.
func NewEnvironment(process, file map[string]string) *Environment {
	vars := make(map[string]string, len(process)+len(file))
	for k, v := range process {
		vars[k] = v
	}
	for k, v := range file {
		if _, exists := vars[k]; !exists {
			vars[k] = v
		}
	}
	return &Environment{vars: vars}
}

// LoadEnvironment builds an Environment from os.Environ and the env file at path.
func LoadEnvironment(path string) (*Environment, error) {
	file, err := LoadDotEnv(path)
	if err != nil {
		return nil, err
	}
	return NewEnvironment(ProcessEnv(), file), nil
}

// ProcessEnv returns the current process environment as a map.
func ProcessEnv() map[string]string {
	env := os.Environ()
	vars := make(map[string]string, len(env))
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars
}

// Lookup returns the value of name and whether it is set.
func (e *Environment) Lookup(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.vars[name]
	return v, ok
}

// Len returns the number of variables.
func (e *Environment) Len() int {
	if e == nil {
		return 0
	}
	return len(e.vars)
}
