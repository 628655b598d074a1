package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonConfig is the on-disk form. Empty fields keep earlier values.
type jsonConfig struct {
	DBPath      string `json:"db_path"`
	Backend     string `json:"backend"`
	LogLevel    string `json:"log_level"`
	HashProfile string `json:"hash_profile"`
}

func parseJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.Backend != "" {
		cfg.Backend = jc.Backend
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.HashProfile != "" {
		cfg.HashProfile = jc.HashProfile
	}

	return nil
}
