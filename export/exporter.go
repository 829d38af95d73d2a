package export

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/iulianpascalau/metrics-registry/metrics"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

// textExporter serializes metrics into the line-oriented exposition format:
//
//	# HELP <qualifiedName> <description>
//	# TYPE <qualifiedName> <gauge|counter>
//	<qualifiedName> <value>
//	<qualifiedName>{name1="value1", name2="value2"} <value>
type textExporter struct {
}

// NewTextExporter creates a new text exporter
func NewTextExporter() *textExporter {
	return &textExporter{}
}

// Export serializes the producers in the supplied order. A label-shape violation or a
// calculation failure aborts the whole pass and propagates, no value is silently dropped
func (exporter *textExporter) Export(ctx context.Context, producers []ValueProducer) (string, error) {
	sb := &strings.Builder{}
	for _, producer := range producers {
		if check.IfNil(producer) {
			continue
		}

		values, err := producer.Values(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to export metric %s: %w", producer.QualifiedName(), err)
		}

		writeMetricBlock(sb, producer, values)
	}

	return sb.String(), nil
}

func writeMetricBlock(sb *strings.Builder, producer ValueProducer, values []metrics.MetricValue) {
	qualifiedName := producer.QualifiedName()

	sb.WriteString("# HELP " + qualifiedName + " " + producer.Description() + "\n")
	sb.WriteString("# TYPE " + qualifiedName + " " + producer.Type().String() + "\n")
	for _, value := range values {
		sb.WriteString(qualifiedName + formatLabels(value.Labels) + " " + formatValue(value.Value) + "\n")
	}
}

func formatLabels(labels []metrics.Label) string {
	if len(labels) == 0 {
		return ""
	}

	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, label.Name+`="`+label.Value+`"`)
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// IsInterfaceNil returns true if the value under the interface is nil
func (exporter *textExporter) IsInterfaceNil() bool {
	return exporter == nil
}
