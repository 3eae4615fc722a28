// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Cipher  CipherConfig  `toml:"cipher"`
	Brute   BruteConfig   `toml:"brute"`
	Output  OutputConfig  `toml:"output"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// CipherConfig maps encrypt/decrypt settings.
type CipherConfig struct {
	Key *int `toml:"key"`
}

// BruteConfig maps brute-force display settings.
type BruteConfig struct {
	Preview *int `toml:"preview"`
}

// OutputConfig maps default file names for saved results.
type OutputConfig struct {
	File       *string `toml:"file"`
	ExportFile *string `toml:"export-file"`
}

// HistoryConfig maps run history settings.
type HistoryConfig struct {
	Enabled *bool `toml:"enabled"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
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
