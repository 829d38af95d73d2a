package metrics

import (
	"encoding/json"
	"fmt"
)

// Config holds the metric-specific configuration as an opaque structured object.
// It is persisted in serialized JSON form alongside the registry record.
type Config map[string]interface{}

// ConfigField describes one editable configuration field. Configurable definitions
// declare these explicitly so the form layer never needs to introspect anything.
type ConfigField struct {
	Name    string
	Type    string
	Default interface{}
	Label   string
}

// Serialize encodes the config as JSON. A nil config serializes to the empty string
func (c Config) Serialize() (string, error) {
	if c == nil {
		return "", nil
	}

	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to serialize config: %w", err)
	}

	return string(data), nil
}

// DeserializeConfig decodes a serialized config string. The empty string decodes to nil
func DeserializeConfig(data string) (Config, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var cfg Config
	err := json.Unmarshal([]byte(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}

	return cfg, nil
}

// GetString reads a string field from the config, falling back to the provided default
func (c Config) GetString(field string, defaultValue string) string {
	val, ok := c[field].(string)
	if !ok {
		return defaultValue
	}

	return val
}

// GetFloat reads a numeric field from the config, falling back to the provided default
func (c Config) GetFloat(field string, defaultValue float64) float64 {
	val, ok := c[field].(float64)
	if !ok {
		return defaultValue
	}

	return val
}
