package collectors

import (
	"context"

	"github.com/iulianpascalau/metrics-registry/metrics"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

// RecordCounter defines the narrow storage view needed by the registry-size metric
type RecordCounter interface {
	CountRecords(ctx context.Context) (int64, error)
	IsInterfaceNil() bool
}

// NewStorageCollector returns a collector contributing a gauge with the number of
// persisted registry records
func NewStorageCollector(counter RecordCounter) (Collector, error) {
	if check.IfNil(counter) {
		return nil, errNilRecordCounter
	}

	records, err := metrics.NewBaseDefinition(metrics.ArgsBaseDefinition{
		Component:   "registry",
		Name:        "records",
		Type:        metrics.GaugeType,
		Description: "Number of rows currently persisted in the metrics registry",
		Handler: func(ctx context.Context, _ metrics.Config) ([]metrics.MetricValue, error) {
			count, errCount := counter.CountRecords(ctx)
			if errCount != nil {
				return nil, errCount
			}

			return []metrics.MetricValue{metrics.NewValue(float64(count))}, nil
		},
	})
	if err != nil {
		return nil, err
	}

	return FromDefinitions(records), nil
}
