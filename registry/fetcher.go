package registry

import (
	"context"

	"github.com/iulianpascalau/metrics-registry/common"
	"github.com/iulianpascalau/metrics-registry/metrics"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

// FetchOptions restricts which registered metrics a fetch pass returns
type FetchOptions struct {
	// Enabled filters by the persisted enabled flag; nil applies no filter
	Enabled *bool

	// RequiredTags keeps only definitions carrying all of these tags; empty applies no filter
	RequiredTags []string
}

// ArgsFetcher holds the arguments needed to create a fetcher
type ArgsFetcher struct {
	Storage      Storage
	Notifier     Notifier
	TagsResolver TagsResolver
}

// fetcher is the read-only projection of the registry: it never writes and issues
// exactly one storage query per pass
type fetcher struct {
	storage      Storage
	notifier     Notifier
	tagsResolver TagsResolver
}

// NewFetcher creates a new registry fetcher
func NewFetcher(args ArgsFetcher) (*fetcher, error) {
	if check.IfNil(args.Storage) {
		return nil, ErrNilStorage
	}
	if check.IfNil(args.Notifier) {
		return nil, ErrNilNotifier
	}
	if check.IfNil(args.TagsResolver) {
		return nil, ErrNilTagsResolver
	}

	return &fetcher{
		storage:      args.Storage,
		notifier:     args.Notifier,
		tagsResolver: args.TagsResolver,
	}, nil
}

// Fetch returns the currently registered metrics for the collection's definitions,
// without side effects. Duplicated qualified names produce a diagnostic and are skipped,
// the first occurrence wins. Rows present in storage but absent from the collection are
// silently excluded: a metric removed from code may remain historically registered
func (f *fetcher) Fetch(
	ctx context.Context,
	collection *metrics.Collection,
	options FetchOptions,
) (map[string]*RegisteredMetric, error) {
	if collection == nil {
		return nil, ErrNilCollection
	}

	definitionsByKey := make(map[common.MetricKey]metrics.Definition)
	keys := make([]common.MetricKey, 0, collection.Len())
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
		if !f.tagsResolver.HasTags(definition, options.RequiredTags) {
			continue
		}

		definitionsByKey[key] = definition
		keys = append(keys, key)
	}

	records, err := f.storage.GetRecords(ctx, keys, options.Enabled)
	if err != nil {
		return nil, err
	}

	registered := make(map[string]*RegisteredMetric, len(records))
	for _, record := range records {
		definition, found := definitionsByKey[record.Key()]
		if !found {
			continue
		}

		registeredMetric, errCreate := NewRegisteredMetric(ArgsRegisteredMetric{
			Definition: definition,
			Record:     record,
			Storage:    f.storage,
			Notifier:   f.notifier,
		})
		if errCreate != nil {
			return nil, errCreate
		}

		registered[record.QualifiedName()] = registeredMetric
	}

	return registered, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (f *fetcher) IsInterfaceNil() bool {
	return f == nil
}
