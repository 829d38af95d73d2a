package collectors

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/iulianpascalau/metrics-registry/metrics"
	"github.com/tidwall/gjson"
)

const (
	configFieldURL     = "url"
	configFieldPath    = "jsonPath"
	configFieldTimeout = "timeoutSeconds"

	defaultEndpointTimeoutSeconds = 10.0
)

// ArgsEndpointMetric holds the arguments needed to create an endpoint metric
type ArgsEndpointMetric struct {
	Component   string
	Name        string
	Description string
	URL         string
	JSONPath    string
}

// endpointMetric is a configurable gauge that performs an HTTP GET against the configured
// URL and extracts a numeric value from the JSON response at the configured path
type endpointMetric struct {
	component     string
	name          string
	description   string
	defaultConfig metrics.Config
}

// NewEndpointMetric creates a new endpoint metric definition
func NewEndpointMetric(args ArgsEndpointMetric) (*endpointMetric, error) {
	if len(args.Component) == 0 {
		return nil, metrics.ErrEmptyComponent
	}
	if len(args.Name) == 0 {
		return nil, metrics.ErrEmptyName
	}

	return &endpointMetric{
		component:   args.Component,
		name:        args.Name,
		description: args.Description,
		defaultConfig: metrics.Config{
			configFieldURL:     args.URL,
			configFieldPath:    args.JSONPath,
			configFieldTimeout: defaultEndpointTimeoutSeconds,
		},
	}, nil
}

// Component returns the stable namespace identifier of the owning component
func (em *endpointMetric) Component() string {
	return em.component
}

// Name returns the metric name, unique within the component
func (em *endpointMetric) Name() string {
	return em.name
}

// Type returns the metric type
func (em *endpointMetric) Type() metrics.MetricType {
	return metrics.GaugeType
}

// Description returns the human-readable description of the metric
func (em *endpointMetric) Description() string {
	return em.description
}

// DefaultConfig returns the configuration used on first registration
func (em *endpointMetric) DefaultConfig() metrics.Config {
	return em.defaultConfig
}

// Calculate fetches the configured URL and extracts the value at the configured JSON path
func (em *endpointMetric) Calculate(ctx context.Context, cfg metrics.Config) ([]metrics.MetricValue, error) {
	url := cfg.GetString(configFieldURL, "")
	if len(url) == 0 {
		return nil, errEmptyURL
	}
	jsonPath := cfg.GetString(configFieldPath, "")
	timeout := time.Duration(cfg.GetFloat(configFieldTimeout, defaultEndpointTimeoutSeconds)) * time.Second

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errStatusNotOK(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	result := gjson.GetBytes(body, jsonPath)
	if !result.Exists() {
		return nil, errPathNotFound(jsonPath)
	}

	return []metrics.MetricValue{metrics.NewValue(result.Float())}, nil
}

// ValidateValue accepts any label shape, endpoint metrics produce unlabeled values
func (em *endpointMetric) ValidateValue(_ metrics.MetricValue) error {
	return nil
}

// ConfigSchema declares the editable fields consumed by the form layer
func (em *endpointMetric) ConfigSchema() []metrics.ConfigField {
	return []metrics.ConfigField{
		{
			Name:    configFieldURL,
			Type:    "string",
			Default: em.defaultConfig[configFieldURL],
			Label:   "Endpoint URL",
		},
		{
			Name:    configFieldPath,
			Type:    "string",
			Default: em.defaultConfig[configFieldPath],
			Label:   "JSON path of the value",
		},
		{
			Name:    configFieldTimeout,
			Type:    "number",
			Default: em.defaultConfig[configFieldTimeout],
			Label:   "Request timeout in seconds",
		},
	}
}

// Tags marks endpoint metrics so external callers can filter on them
func (em *endpointMetric) Tags() []string {
	return []string{"external", "http"}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (em *endpointMetric) IsInterfaceNil() bool {
	return em == nil
}
