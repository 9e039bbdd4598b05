package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const (
	configDirName  = "rskill"
	configFileName = "config.json"
)

// ConfigPath returns the directory holding the user's config file.
func ConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return "."
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, configDirName)
}

// Load reads the config from the default location.
func Load() (*Config, error) {
	return LoadFrom(filepath.Join(ConfigPath(), configFileName))
}

// LoadFrom reads the config at path, merged over defaults. A missing file
// is not an error: the defaults are returned.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the default location, creating the config
// directory if needed.
func Save(cfg *Config) error {
	return SaveTo(filepath.Join(ConfigPath(), configFileName), cfg)
}

// SaveTo writes the config to path, creating parent directories if
// needed. What SaveTo writes, LoadFrom reads back unchanged.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
