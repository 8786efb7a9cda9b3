// internal/appconfig/appconfig.go
package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds every tunable of the tool. Values come from the JSON
// config file and are overridden by flags; zero values fall back to
// the accessor defaults below.
type Config struct {
	Input       string `json:"input" mapstructure:"input"`
	StorageInfo string `json:"storageInfo" mapstructure:"storageInfo"`
	Output      string `json:"output" mapstructure:"output"`
	Template    string `json:"template" mapstructure:"template"`
	Header      string `json:"header" mapstructure:"header"`
	Analysis    string `json:"analysis" mapstructure:"analysis"`
	StoreDir    string `json:"storeDir" mapstructure:"storeDir"`
	StoreMode   string `json:"storeMode" mapstructure:"storeMode"`
	Debug       bool   `json:"debug" mapstructure:"debug"`
	LogFile     string `json:"logFile" mapstructure:"logFile"`
}

// Load reads a JSON config file into a Config. An empty path returns
// an all-defaults Config.
func Load(path string) (*Config, error) {
	config := &Config{}
	if path == "" {
		return config, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return config, nil
}

// AnalysisName returns the configured fitting strategy, defaulting to
// median-slopes.
func (c *Config) AnalysisName() string {
	if c.Analysis == "" {
		return "median-slopes"
	}
	return c.Analysis
}

// LogFilePath returns the log destination, defaulting to
// weightgen.log in the working directory.
func (c *Config) LogFilePath() string {
	if c.LogFile == "" {
		return "weightgen.log"
	}
	return c.LogFile
}

// StoreModeName returns the result store layout mode, defaulting to
// full.
func (c *Config) StoreModeName() string {
	if c.StoreMode == "" {
		return "full"
	}
	return c.StoreMode
}
