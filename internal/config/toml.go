// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Keyboard KeyboardConfig `toml:"keyboard"`
	Game     GameConfig     `toml:"game"`
	Practice PracticeConfig `toml:"practice"`
}

// KeyboardConfig maps keyboard settings.
type KeyboardConfig struct {
	Layout    *string `toml:"layout"`
	ReleaseMs *int    `toml:"release-ms"`
}

// GameConfig maps game settings.
type GameConfig struct {
	Delay    *float64 `toml:"delay"`
	Capacity *int     `toml:"capacity"`
	Charset  *string  `toml:"charset"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Length     *int     `toml:"length"`
	WordList   *string  `toml:"wordlist"`
	Delay      *float64 `toml:"delay"`
	WeakTop    *int     `toml:"weak-top"`
	WeakFactor *float64 `toml:"weak-factor"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
