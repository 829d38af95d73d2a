package registry

import (
	"context"

	"github.com/iulianpascalau/metrics-registry/common"
	"github.com/iulianpascalau/metrics-registry/export"
	"github.com/iulianpascalau/metrics-registry/metrics"
)

// Storage defines the persistence operations needed by the registry
type Storage interface {
	// GetRecords returns, in one query, the records matching the provided composite keys,
	// optionally restricted by the enabled flag
	GetRecords(ctx context.Context, keys []common.MetricKey, enabled *bool) ([]common.RegistryRecord, error)

	// SyncRecords makes the stored records match the wanted set inside one transaction,
	// returning the untouched matches and the newly created records with assigned ids
	SyncRecords(ctx context.Context, wanted []common.RegistryRecord, deleteOrphans bool) (*common.SyncResult, error)

	// SetEnabled persists a new enabled flag plus the audit fields for one record
	SetEnabled(ctx context.Context, id int64, enabled bool, timeModified int64, actor string) error

	// UpdateConfig persists a new serialized config plus the audit fields for one record
	UpdateConfig(ctx context.Context, id int64, config string, timeModified int64, actor string) error

	IsInterfaceNil() bool
}

// Notifier defines the collaborator informed about registered metric state changes
type Notifier interface {
	MetricEnabled(qualifiedName string)
	MetricDisabled(qualifiedName string)
	MetricConfigUpdated(qualifiedName string)
	IsInterfaceNil() bool
}

// TagsResolver decides whether a definition carries all required tags
type TagsResolver interface {
	HasTags(definition metrics.Definition, required []string) bool
	IsInterfaceNil() bool
}

// CollectionProvider assembles a fresh metric collection by invoking every registered collector
type CollectionProvider interface {
	Assemble() *metrics.Collection
	IsInterfaceNil() bool
}

// Exporter serializes value producers into the exposition text format
type Exporter interface {
	Export(ctx context.Context, producers []export.ValueProducer) (string, error)
	IsInterfaceNil() bool
}
