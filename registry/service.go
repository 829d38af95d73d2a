package registry

import (
	"context"
	"fmt"

	"github.com/iulianpascalau/metrics-registry/common"
	"github.com/iulianpascalau/metrics-registry/export"
	"github.com/iulianpascalau/metrics-registry/metrics"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

const schedulerActor = "scheduler"

// ArgsService holds the arguments needed to create the registry service
type ArgsService struct {
	Provider            CollectionProvider
	Storage             Storage
	Notifier            Notifier
	TagsResolver        TagsResolver
	Exporter            Exporter
	DeleteOrphansOnSync bool
}

// service is the facade consumed by the transport layer: every operation assembles a
// fresh collection and works on a transient sync/fetch result, keeping passes independent
type service struct {
	provider            CollectionProvider
	storage             Storage
	syncer              *syncer
	fetcher             *fetcher
	exporter            Exporter
	deleteOrphansOnSync bool
}

// NewService creates a new registry service
func NewService(args ArgsService) (*service, error) {
	if check.IfNil(args.Provider) {
		return nil, ErrNilCollectionProvider
	}
	if check.IfNil(args.Exporter) {
		return nil, ErrNilExporter
	}

	registrySyncer, err := NewSyncer(ArgsSyncer{
		Storage:  args.Storage,
		Notifier: args.Notifier,
	})
	if err != nil {
		return nil, err
	}

	registryFetcher, err := NewFetcher(ArgsFetcher{
		Storage:      args.Storage,
		Notifier:     args.Notifier,
		TagsResolver: args.TagsResolver,
	})
	if err != nil {
		return nil, err
	}

	return &service{
		provider:            args.Provider,
		storage:             args.Storage,
		syncer:              registrySyncer,
		fetcher:             registryFetcher,
		exporter:            args.Exporter,
		deleteOrphansOnSync: args.DeleteOrphansOnSync,
	}, nil
}

// SyncRegistry reconciles the persisted registry against a freshly assembled collection
func (s *service) SyncRegistry(ctx context.Context, actor string) error {
	collection := s.provider.Assemble()
	_, err := s.syncer.Sync(ctx, collection, s.deleteOrphansOnSync, actor)

	return err
}

// Registry returns the current registry state in collection order, without side effects
func (s *service) Registry(ctx context.Context, enabled *bool, requiredTags []string) ([]common.RegistryState, error) {
	collection := s.provider.Assemble()
	registered, err := s.fetcher.Fetch(ctx, collection, FetchOptions{
		Enabled:      enabled,
		RequiredTags: requiredTags,
	})
	if err != nil {
		return nil, err
	}

	states := make([]common.RegistryState, 0, len(registered))
	for _, registeredMetric := range s.orderedMetrics(collection, registered) {
		record := registeredMetric.Record()
		states = append(states, common.RegistryState{
			QualifiedName: registeredMetric.QualifiedName(),
			Component:     record.Component,
			Name:          record.Name,
			Type:          registeredMetric.Type().String(),
			Description:   registeredMetric.Description(),
			Enabled:       record.Enabled,
			Config:        record.Config,
			TimeCreated:   record.TimeCreated,
			TimeModified:  record.TimeModified,
			UserModified:  record.UserModified,
		})
	}

	return states, nil
}

// Export returns the text snapshot of all enabled metrics, in collection order
func (s *service) Export(ctx context.Context, requiredTags []string) (string, error) {
	enabled := true
	collection := s.provider.Assemble()
	registered, err := s.fetcher.Fetch(ctx, collection, FetchOptions{
		Enabled:      &enabled,
		RequiredTags: requiredTags,
	})
	if err != nil {
		return "", err
	}

	ordered := s.orderedMetrics(collection, registered)
	producers := make([]export.ValueProducer, 0, len(ordered))
	for _, registeredMetric := range ordered {
		producers = append(producers, registeredMetric)
	}

	return s.exporter.Export(ctx, producers)
}

// SetEnabled enables or disables the metric with the given qualified name
func (s *service) SetEnabled(ctx context.Context, qualifiedName string, enabled bool, actor string) error {
	registeredMetric, err := s.getRegisteredMetric(ctx, qualifiedName)
	if err != nil {
		return err
	}

	if enabled {
		return registeredMetric.Enable(ctx, actor)
	}

	return registeredMetric.Disable(ctx, actor)
}

// UpdateConfig replaces the configuration of the metric with the given qualified name
func (s *service) UpdateConfig(ctx context.Context, qualifiedName string, cfg metrics.Config, actor string) error {
	registeredMetric, err := s.getRegisteredMetric(ctx, qualifiedName)
	if err != nil {
		return err
	}

	return registeredMetric.UpdateConfig(ctx, cfg, actor)
}

func (s *service) getRegisteredMetric(ctx context.Context, qualifiedName string) (*RegisteredMetric, error) {
	collection := s.provider.Assemble()
	registered, err := s.fetcher.Fetch(ctx, collection, FetchOptions{})
	if err != nil {
		return nil, err
	}

	registeredMetric, found := registered[qualifiedName]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrMetricNotFound, qualifiedName)
	}

	return registeredMetric, nil
}

// orderedMetrics projects the fetched map back onto the collection's insertion order
func (s *service) orderedMetrics(
	collection *metrics.Collection,
	registered map[string]*RegisteredMetric,
) []*RegisteredMetric {
	seen := make(map[string]struct{}, len(registered))
	ordered := make([]*RegisteredMetric, 0, len(registered))
	for _, definition := range collection.Definitions() {
		qualifiedName := metrics.QualifiedName(definition)
		_, alreadySeen := seen[qualifiedName]
		if alreadySeen {
			continue
		}
		seen[qualifiedName] = struct{}{}

		registeredMetric, found := registered[qualifiedName]
		if !found {
			continue
		}

		ordered = append(ordered, registeredMetric)
	}

	return ordered
}

// Process runs one scheduled reconciliation pass, logging failures instead of propagating
// them so the cron loop keeps running
func (s *service) Process(ctx context.Context) {
	err := s.SyncRegistry(ctx, schedulerActor)
	if err != nil {
		log.Warn("scheduled registry sync failed", "error", err)
	}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *service) IsInterfaceNil() bool {
	return s == nil
}
