package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/iulianpascalau/metrics-registry/common"
	"github.com/iulianpascalau/metrics-registry/metrics"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

// ArgsRegisteredMetric holds the arguments needed to create a registered metric
type ArgsRegisteredMetric struct {
	Definition metrics.Definition
	Record     common.RegistryRecord
	Storage    Storage
	Notifier   Notifier
}

// RegisteredMetric composes a metric definition with its persisted registry record.
// It is transient: valid only for the lifetime of one sync/fetch pass, it must not be
// cached across requests because the definition set can change between deployments.
type RegisteredMetric struct {
	definition metrics.Definition
	record     common.RegistryRecord
	storage    Storage
	notifier   Notifier
}

// NewRegisteredMetric creates a new registered metric instance
func NewRegisteredMetric(args ArgsRegisteredMetric) (*RegisteredMetric, error) {
	if check.IfNil(args.Definition) {
		return nil, ErrNilDefinition
	}
	if check.IfNil(args.Storage) {
		return nil, ErrNilStorage
	}
	if check.IfNil(args.Notifier) {
		return nil, ErrNilNotifier
	}
	err := args.Record.Validate()
	if err != nil {
		return nil, err
	}

	return &RegisteredMetric{
		definition: args.Definition,
		record:     args.Record,
		storage:    args.Storage,
		notifier:   args.Notifier,
	}, nil
}

// QualifiedName returns the global identity key of the metric
func (rm *RegisteredMetric) QualifiedName() string {
	return rm.record.QualifiedName()
}

// Description returns the wrapped definition's description
func (rm *RegisteredMetric) Description() string {
	return rm.definition.Description()
}

// Type returns the wrapped definition's metric type
func (rm *RegisteredMetric) Type() metrics.MetricType {
	return rm.definition.Type()
}

// Definition returns the wrapped definition
func (rm *RegisteredMetric) Definition() metrics.Definition {
	return rm.definition
}

// Record returns a copy of the persisted state
func (rm *RegisteredMetric) Record() common.RegistryRecord {
	return rm.record
}

// IsEnabled returns the persisted enabled flag
func (rm *RegisteredMetric) IsEnabled() bool {
	return rm.record.Enabled
}

// Config deserializes the persisted configuration, falling back to the definition's
// default config when nothing was persisted yet
func (rm *RegisteredMetric) Config() (metrics.Config, error) {
	if len(rm.record.Config) == 0 {
		return rm.definition.DefaultConfig(), nil
	}

	cfg, err := metrics.DeserializeConfig(rm.record.Config)
	if err != nil {
		return nil, fmt.Errorf("%w for metric %s", err, rm.QualifiedName())
	}

	return cfg, nil
}

// Enable flips the metric to enabled. Calling it on an already-enabled metric performs
// zero writes and emits zero notifications
func (rm *RegisteredMetric) Enable(ctx context.Context, actor string) error {
	if rm.record.Enabled {
		return nil
	}

	err := rm.persistEnabled(ctx, true, actor)
	if err != nil {
		return err
	}

	rm.notifier.MetricEnabled(rm.QualifiedName())

	return nil
}

// Disable flips the metric to disabled. Calling it on an already-disabled metric performs
// zero writes and emits zero notifications
func (rm *RegisteredMetric) Disable(ctx context.Context, actor string) error {
	if !rm.record.Enabled {
		return nil
	}

	err := rm.persistEnabled(ctx, false, actor)
	if err != nil {
		return err
	}

	rm.notifier.MetricDisabled(rm.QualifiedName())

	return nil
}

func (rm *RegisteredMetric) persistEnabled(ctx context.Context, enabled bool, actor string) error {
	now := time.Now().Unix()
	err := rm.storage.SetEnabled(ctx, rm.record.ID, enabled, now, actor)
	if err != nil {
		return err
	}

	rm.record.Enabled = enabled
	rm.record.TimeModified = now
	rm.record.UserModified = actor

	return nil
}

// UpdateConfig persists a new configuration plus the audit fields, leaving the enabled
// flag untouched, and emits a "config updated" notification
func (rm *RegisteredMetric) UpdateConfig(ctx context.Context, cfg metrics.Config, actor string) error {
	serialized, err := cfg.Serialize()
	if err != nil {
		return fmt.Errorf("%w for metric %s", err, rm.QualifiedName())
	}

	now := time.Now().Unix()
	err = rm.storage.UpdateConfig(ctx, rm.record.ID, serialized, now, actor)
	if err != nil {
		return err
	}

	rm.record.Config = serialized
	rm.record.TimeModified = now
	rm.record.UserModified = actor

	rm.notifier.MetricConfigUpdated(rm.QualifiedName())

	return nil
}

// Values invokes the definition's calculation with the current configuration and passes
// every produced value through the definition's validation, failing fast on the first
// label-shape violation
func (rm *RegisteredMetric) Values(ctx context.Context) ([]metrics.MetricValue, error) {
	cfg, err := rm.Config()
	if err != nil {
		return nil, err
	}

	values, err := rm.definition.Calculate(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate metric %s: %w", rm.QualifiedName(), err)
	}

	for _, value := range values {
		err = rm.definition.ValidateValue(value)
		if err != nil {
			return nil, fmt.Errorf("%w for metric %s", err, rm.QualifiedName())
		}
	}

	return values, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (rm *RegisteredMetric) IsInterfaceNil() bool {
	return rm == nil
}
