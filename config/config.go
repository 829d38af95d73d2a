package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// EndpointMetricConfig defines one configurable HTTP endpoint metric
type EndpointMetricConfig struct {
	Component   string `toml:"Component"`
	Name        string `toml:"Name"`
	Description string `toml:"Description"`
	URL         string `toml:"URL"`
	JSONPath    string `toml:"JSONPath"`
}

// Config maps to the config.toml file for the metrics registry service
type Config struct {
	ListenAddress         string                 `toml:"ListenAddress"`
	DatabasePath          string                 `toml:"DatabasePath"`
	SyncOnStartup         bool                   `toml:"SyncOnStartup"`
	DeleteOrphansOnSync   bool                   `toml:"DeleteOrphansOnSync"`
	SyncIntervalInSeconds uint32                 `toml:"SyncIntervalInSeconds"`
	EndpointMetrics       []EndpointMetricConfig `toml:"EndpointMetrics"`
}

// LoadConfig parses a TOML file into the Config struct
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &cfg, nil
}
