package metrics

import (
	"context"

	"github.com/multiversx/mx-chain-core-go/core/check"
)

// CalculateHandler computes the current value(s) of a metric from its configuration
type CalculateHandler func(ctx context.Context, cfg Config) ([]MetricValue, error)

// ArgsBaseDefinition holds the arguments needed to create a base definition
type ArgsBaseDefinition struct {
	Component     string
	Name          string
	Type          MetricType
	Description   string
	DefaultConfig Config
	Validator     LabelValidator
	Handler       CalculateHandler
}

// baseDefinition is a reusable Definition implementation driven by a calculate handler
type baseDefinition struct {
	component     string
	name          string
	metricType    MetricType
	description   string
	defaultConfig Config
	validator     LabelValidator
	handler       CalculateHandler
}

// NewBaseDefinition creates a new definition from the provided arguments
func NewBaseDefinition(args ArgsBaseDefinition) (*baseDefinition, error) {
	if len(args.Component) == 0 {
		return nil, ErrEmptyComponent
	}
	if len(args.Name) == 0 {
		return nil, ErrEmptyName
	}
	if !args.Type.IsValid() {
		return nil, ErrInvalidMetricType
	}
	if args.Handler == nil {
		return nil, ErrNilCalculateHandler
	}

	return &baseDefinition{
		component:     args.Component,
		name:          args.Name,
		metricType:    args.Type,
		description:   args.Description,
		defaultConfig: args.DefaultConfig,
		validator:     args.Validator,
		handler:       args.Handler,
	}, nil
}

// Component returns the stable namespace identifier of the owning component
func (def *baseDefinition) Component() string {
	return def.component
}

// Name returns the metric name, unique within the component
func (def *baseDefinition) Name() string {
	return def.name
}

// Type returns the metric type
func (def *baseDefinition) Type() MetricType {
	return def.metricType
}

// Description returns the human-readable description of the metric
func (def *baseDefinition) Description() string {
	return def.description
}

// Calculate computes the current value(s) by invoking the wrapped handler
func (def *baseDefinition) Calculate(ctx context.Context, cfg Config) ([]MetricValue, error) {
	return def.handler(ctx, cfg)
}

// DefaultConfig returns the configuration used on first registration
func (def *baseDefinition) DefaultConfig() Config {
	return def.defaultConfig
}

// ValidateValue delegates to the optional label validator; a definition without
// a validator accepts any label shape
func (def *baseDefinition) ValidateValue(value MetricValue) error {
	if check.IfNil(def.validator) {
		return nil
	}

	return def.validator.Validate(value)
}

// IsInterfaceNil returns true if the value under the interface is nil
func (def *baseDefinition) IsInterfaceNil() bool {
	return def == nil
}

// QualifiedName computes the global identity key of a definition
func QualifiedName(def Definition) string {
	return def.Component() + "_" + def.Name()
}
