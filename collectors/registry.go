package collectors

import (
	"github.com/iulianpascalau/metrics-registry/metrics"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("collectors")

// Collector contributes zero or more metric definitions to a collection pass.
// Each registered collector is invoked exactly once per assembly, definitions keep
// their order within one collector
type Collector func(collection *metrics.Collection)

// registry is the statically composed list of collectors, assembled once at wiring time
type registry struct {
	collectorFuncs []Collector
}

// NewRegistry creates a collector registry from an explicit list of collectors
func NewRegistry(collectorFuncs ...Collector) *registry {
	return &registry{
		collectorFuncs: collectorFuncs,
	}
}

// Assemble builds a fresh collection by invoking every registered collector once
func (r *registry) Assemble() *metrics.Collection {
	collection := metrics.NewCollection()
	for _, collectorFunc := range r.collectorFuncs {
		if collectorFunc == nil {
			continue
		}

		collectorFunc(collection)
	}

	log.Trace("assembled metric collection", "num definitions", collection.Len())

	return collection
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *registry) IsInterfaceNil() bool {
	return r == nil
}

// FromDefinitions wraps ready-made definitions into a collector
func FromDefinitions(definitions ...metrics.Definition) Collector {
	return func(collection *metrics.Collection) {
		for _, definition := range definitions {
			collection.Add(definition)
		}
	}
}
