package metrics

import "context"

// Definition defines a single metric as declared by its owning component. A definition
// carries identity and behavior only; the enabled flag, the active configuration and the
// audit trail live in the persisted registry record.
type Definition interface {
	// Component returns the stable namespace identifier of the owning component
	Component() string

	// Name returns the metric name, unique within the component
	Name() string

	// Type returns the metric type (gauge or counter)
	Type() MetricType

	// Description returns the human-readable description of the metric
	Description() string

	// Calculate computes the current value(s) of the metric from the provided configuration
	Calculate(ctx context.Context, cfg Config) ([]MetricValue, error)

	// DefaultConfig returns the configuration to persist the first time the metric is registered
	DefaultConfig() Config

	// ValidateValue rejects produced values whose label shape is not allowed
	ValidateValue(value MetricValue) error

	IsInterfaceNil() bool
}

// LabelValidator decides whether a produced value's label shape is acceptable
type LabelValidator interface {
	Validate(value MetricValue) error
	IsInterfaceNil() bool
}

// ConfigSchemaHandler is optionally implemented by definitions that expose editable
// configuration fields to the form layer
type ConfigSchemaHandler interface {
	ConfigSchema() []ConfigField
}

// TagsHandler is optionally implemented by definitions that carry tags for filtering
type TagsHandler interface {
	Tags() []string
}
