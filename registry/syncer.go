package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/iulianpascalau/metrics-registry/common"
	"github.com/iulianpascalau/metrics-registry/metrics"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("registry")

// ArgsSyncer holds the arguments needed to create a syncer
type ArgsSyncer struct {
	Storage  Storage
	Notifier Notifier
}

// syncer reconciles the persisted registry against the current metric collection
type syncer struct {
	storage  Storage
	notifier Notifier
}

// NewSyncer creates a new registry syncer
func NewSyncer(args ArgsSyncer) (*syncer, error) {
	if check.IfNil(args.Storage) {
		return nil, ErrNilStorage
	}
	if check.IfNil(args.Notifier) {
		return nil, ErrNilNotifier
	}

	return &syncer{
		storage:  args.Storage,
		notifier: args.Notifier,
	}, nil
}

// Sync makes the registry rows mirror the collection's distinct qualified names while
// preserving the existing enabled/config/audit state of matched rows. Duplicated
// qualified names inside the collection produce a diagnostic and are skipped, the first
// occurrence wins. When deleteOrphans is set, rows no longer produced by any definition
// are removed in the same transaction. Returns the registered metrics for every
// non-duplicate definition, matched and newly created alike
func (s *syncer) Sync(
	ctx context.Context,
	collection *metrics.Collection,
	deleteOrphans bool,
	actor string,
) (map[string]*RegisteredMetric, error) {
	if collection == nil {
		return nil, ErrNilCollection
	}

	now := time.Now().Unix()
	definitionsByKey := make(map[common.MetricKey]metrics.Definition)
	wanted := make([]common.RegistryRecord, 0, collection.Len())

	for _, definition := range collection.Definitions() {
		key := common.MetricKey{
			Component: definition.Component(),
			Name:      definition.Name(),
		}
		_, alreadySeen := definitionsByKey[key]
		if alreadySeen {
			log.Warn("duplicated metric in collection, skipping", "qualifiedName", key.QualifiedName())
			continue
		}
		definitionsByKey[key] = definition

		serializedConfig, err := definition.DefaultConfig().Serialize()
		if err != nil {
			return nil, fmt.Errorf("%w for metric %s", err, key.QualifiedName())
		}

		wanted = append(wanted, common.RegistryRecord{
			Component:    key.Component,
			Name:         key.Name,
			Enabled:      false,
			Config:       serializedConfig,
			TimeCreated:  now,
			TimeModified: now,
			UserModified: actor,
		})
	}

	result, err := s.storage.SyncRecords(ctx, wanted, deleteOrphans)
	if err != nil {
		return nil, err
	}

	if result.NumDeletedOrphans > 0 {
		log.Debug("removed orphaned registry records", "count", result.NumDeletedOrphans)
	}

	registered := make(map[string]*RegisteredMetric, len(result.Matched)+len(result.Created))
	err = s.appendRegistered(registered, result.Matched, definitionsByKey)
	if err != nil {
		return nil, err
	}
	err = s.appendRegistered(registered, result.Created, definitionsByKey)
	if err != nil {
		return nil, err
	}

	return registered, nil
}

func (s *syncer) appendRegistered(
	dest map[string]*RegisteredMetric,
	records []common.RegistryRecord,
	definitionsByKey map[common.MetricKey]metrics.Definition,
) error {
	for _, record := range records {
		definition, found := definitionsByKey[record.Key()]
		if !found {
			return fmt.Errorf("%w: %s returned by storage sync", ErrMetricNotFound, record.QualifiedName())
		}

		registeredMetric, err := NewRegisteredMetric(ArgsRegisteredMetric{
			Definition: definition,
			Record:     record,
			Storage:    s.storage,
			Notifier:   s.notifier,
		})
		if err != nil {
			return err
		}

		dest[record.QualifiedName()] = registeredMetric
	}

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *syncer) IsInterfaceNil() bool {
	return s == nil
}
