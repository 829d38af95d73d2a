package metrics

import (
	"sort"
	"strings"
)

// Label is a single name/value pair attached to a metric value
type Label struct {
	Name  string
	Value string
}

// MetricValue represents a single computed sample together with its labels.
// The label order is preserved as provided by the producing definition.
type MetricValue struct {
	Value  float64
	Labels []Label
}

// NewValue creates a metric value with the provided labels
func NewValue(value float64, labels ...Label) MetricValue {
	return MetricValue{
		Value:  value,
		Labels: labels,
	}
}

// LabelMap returns the labels as a map, losing the declared order
func (mv MetricValue) LabelMap() map[string]string {
	m := make(map[string]string, len(mv.Labels))
	for _, label := range mv.Labels {
		m[label.Name] = label.Value
	}

	return m
}

// FormatLabels renders a label map in a stable, human-readable form, used in diagnostics
func FormatLabels(labels map[string]string) string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+`="`+labels[name]+`"`)
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
