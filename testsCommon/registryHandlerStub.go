package testsCommon

import (
	"context"

	"github.com/iulianpascalau/metrics-registry/common"
	"github.com/iulianpascalau/metrics-registry/metrics"
)

// RegistryHandlerStub -
type RegistryHandlerStub struct {
	RegistryHandler     func(ctx context.Context, enabled *bool, requiredTags []string) ([]common.RegistryState, error)
	ExportHandler       func(ctx context.Context, requiredTags []string) (string, error)
	SetEnabledHandler   func(ctx context.Context, qualifiedName string, enabled bool, actor string) error
	UpdateConfigHandler func(ctx context.Context, qualifiedName string, cfg metrics.Config, actor string) error
}

// Registry -
func (stub *RegistryHandlerStub) Registry(ctx context.Context, enabled *bool, requiredTags []string) ([]common.RegistryState, error) {
	if stub.RegistryHandler != nil {
		return stub.RegistryHandler(ctx, enabled, requiredTags)
	}

	return make([]common.RegistryState, 0), nil
}

// Export -
func (stub *RegistryHandlerStub) Export(ctx context.Context, requiredTags []string) (string, error) {
	if stub.ExportHandler != nil {
		return stub.ExportHandler(ctx, requiredTags)
	}

	return "", nil
}

// SetEnabled -
func (stub *RegistryHandlerStub) SetEnabled(ctx context.Context, qualifiedName string, enabled bool, actor string) error {
	if stub.SetEnabledHandler != nil {
		return stub.SetEnabledHandler(ctx, qualifiedName, enabled, actor)
	}

	return nil
}

// UpdateConfig -
func (stub *RegistryHandlerStub) UpdateConfig(ctx context.Context, qualifiedName string, cfg metrics.Config, actor string) error {
	if stub.UpdateConfigHandler != nil {
		return stub.UpdateConfigHandler(ctx, qualifiedName, cfg, actor)
	}

	return nil
}

// IsInterfaceNil -
func (stub *RegistryHandlerStub) IsInterfaceNil() bool {
	return stub == nil
}
