package export

import (
	"context"

	"github.com/iulianpascalau/metrics-registry/metrics"
)

// ValueProducer defines one exportable metric: its identity lines plus the current values
type ValueProducer interface {
	QualifiedName() string
	Description() string
	Type() metrics.MetricType
	Values(ctx context.Context) ([]metrics.MetricValue, error)
	IsInterfaceNil() bool
}
