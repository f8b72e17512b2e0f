// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "keytrainer"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "state")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultLayoutDir returns the directory searched for named layouts.
func DefaultLayoutDir() string {
	return filepath.Join(XDGConfigHome(), appName, "layouts")
}

// DefaultLogPath returns where debug logs are written.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appName, appName+".log")
}

// ResolveLayoutPath maps a bare layout name to a file in DefaultLayoutDir.
// Paths containing a separator or a .toml suffix are returned unchanged.
func ResolveLayoutPath(name string) string {
	if name == "" {
		return ""
	}
	if filepath.Ext(name) == ".toml" || filepath.Base(name) != name {
		return name
	}
	return filepath.Join(DefaultLayoutDir(), name+".toml")
}
