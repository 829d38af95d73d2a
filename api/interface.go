package api

import (
	"context"

	"github.com/iulianpascalau/metrics-registry/common"
	"github.com/iulianpascalau/metrics-registry/metrics"
)

// RegistryHandler defines the registry operations exposed over HTTP
type RegistryHandler interface {
	// Registry returns the current registry state, optionally filtered by the enabled
	// flag and by required tags, without mutating anything
	Registry(ctx context.Context, enabled *bool, requiredTags []string) ([]common.RegistryState, error)

	// Export returns the text snapshot of all enabled metrics
	Export(ctx context.Context, requiredTags []string) (string, error)

	// SetEnabled enables or disables the metric with the given qualified name
	SetEnabled(ctx context.Context, qualifiedName string, enabled bool, actor string) error

	// UpdateConfig replaces the configuration of the metric with the given qualified name
	UpdateConfig(ctx context.Context, qualifiedName string, cfg metrics.Config, actor string) error

	IsInterfaceNil() bool
}
