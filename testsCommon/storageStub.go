package testsCommon

import (
	"context"

	"github.com/iulianpascalau/metrics-registry/common"
)

// StorageStub -
type StorageStub struct {
	GetRecordsHandler   func(ctx context.Context, keys []common.MetricKey, enabled *bool) ([]common.RegistryRecord, error)
	SyncRecordsHandler  func(ctx context.Context, wanted []common.RegistryRecord, deleteOrphans bool) (*common.SyncResult, error)
	SetEnabledHandler   func(ctx context.Context, id int64, enabled bool, timeModified int64, actor string) error
	UpdateConfigHandler func(ctx context.Context, id int64, config string, timeModified int64, actor string) error
	CountRecordsHandler func(ctx context.Context) (int64, error)
	CloseHandler        func() error
}

// GetRecords -
func (stub *StorageStub) GetRecords(ctx context.Context, keys []common.MetricKey, enabled *bool) ([]common.RegistryRecord, error) {
	if stub.GetRecordsHandler != nil {
		return stub.GetRecordsHandler(ctx, keys, enabled)
	}

	return make([]common.RegistryRecord, 0), nil
}

// SyncRecords -
func (stub *StorageStub) SyncRecords(ctx context.Context, wanted []common.RegistryRecord, deleteOrphans bool) (*common.SyncResult, error) {
	if stub.SyncRecordsHandler != nil {
		return stub.SyncRecordsHandler(ctx, wanted, deleteOrphans)
	}

	return &common.SyncResult{}, nil
}

// SetEnabled -
func (stub *StorageStub) SetEnabled(ctx context.Context, id int64, enabled bool, timeModified int64, actor string) error {
	if stub.SetEnabledHandler != nil {
		return stub.SetEnabledHandler(ctx, id, enabled, timeModified, actor)
	}

	return nil
}

// UpdateConfig -
func (stub *StorageStub) UpdateConfig(ctx context.Context, id int64, config string, timeModified int64, actor string) error {
	if stub.UpdateConfigHandler != nil {
		return stub.UpdateConfigHandler(ctx, id, config, timeModified, actor)
	}

	return nil
}

// CountRecords -
func (stub *StorageStub) CountRecords(ctx context.Context) (int64, error) {
	if stub.CountRecordsHandler != nil {
		return stub.CountRecordsHandler(ctx)
	}

	return 0, nil
}

// Close -
func (stub *StorageStub) Close() error {
	if stub.CloseHandler != nil {
		return stub.CloseHandler()
	}

	return nil
}

// IsInterfaceNil -
func (stub *StorageStub) IsInterfaceNil() bool {
	return stub == nil
}
