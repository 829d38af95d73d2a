package metrics

// MetricType defines the behavior class of a metric
type MetricType string

const (
	// GaugeType represents a value that can go up and down between snapshots
	GaugeType MetricType = "gauge"

	// CounterType represents a gauge that is expected to be monotonically non-decreasing.
	// Monotonicity is a contract for the definition's author, it is not enforced at runtime
	// because no history is retained between snapshots.
	CounterType MetricType = "counter"
)

// String returns the lowercase wire representation of the type
func (mt MetricType) String() string {
	return string(mt)
}

// IsValid returns true for the known metric types
func (mt MetricType) IsValid() bool {
	return mt == GaugeType || mt == CounterType
}
