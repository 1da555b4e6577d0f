// Package config loads and validates the application settings.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ and $VAR references in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath is where the SQLite file lives unless configured.
func DefaultDatabasePath() string {
	return ExpandPath("~/.local/share/contas/contas.db")
}

// DefaultConfigDir is searched for config.yaml.
func DefaultConfigDir() string {
	return ExpandPath("~/.config/contas")
}
