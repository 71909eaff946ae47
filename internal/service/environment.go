package service

import (
	"os"
	"strings"
)

// Environ is an immutable snapshot of environment variables.
type Environ map[string]string

// EnvironFromOS snapshots the process environment.
func EnvironFromOS() Environ {
	return EnvironFromList(os.Environ())
}

// EnvironFromList builds a snapshot from KEY=VALUE entries.
func EnvironFromList(entries []string) Environ {
	env := make(Environ, len(entries))
	for _, e := range entries {
		if k, v, ok := strings.Cut(e, "="); ok && k != "" {
			env[k] = v
		}
	}
	return env
}

// Get returns the value of key, or "".
func (e Environ) Get(key string) string {
	return e[key]
}

// Has reports whether key is set to a non-empty value.
func (e Environ) Has(key string) bool {
	return strings.TrimSpace(e[key]) != ""
}
