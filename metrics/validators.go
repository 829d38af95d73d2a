package metrics

import (
	"fmt"
)

// labelSetValidator accepts only values whose label map equals one of the allowed
// label maps, regardless of label order
type labelSetValidator struct {
	allowed []map[string]string
}

// NewLabelSetValidator creates a validator for a finite set of allowed label maps
func NewLabelSetValidator(allowed ...map[string]string) (*labelSetValidator, error) {
	if len(allowed) == 0 {
		return nil, ErrEmptyAllowedLabelSets
	}

	copied := make([]map[string]string, 0, len(allowed))
	for _, set := range allowed {
		m := make(map[string]string, len(set))
		for name, value := range set {
			m[name] = value
		}
		copied = append(copied, m)
	}

	return &labelSetValidator{
		allowed: copied,
	}, nil
}

// Validate checks the value's labels against the allowed label maps
func (validator *labelSetValidator) Validate(value MetricValue) error {
	labels := value.LabelMap()
	for _, set := range validator.allowed {
		if labelMapsEqual(labels, set) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrUnexpectedLabelSet, FormatLabels(labels))
}

// IsInterfaceNil returns true if the value under the interface is nil
func (validator *labelSetValidator) IsInterfaceNil() bool {
	return validator == nil
}

// labelNameValidator accepts only values whose label names are exactly the declared
// ones, with arbitrary label values
type labelNameValidator struct {
	names map[string]struct{}
}

// NewLabelNameValidator creates a validator for an exact set of label names
func NewLabelNameValidator(names ...string) *labelNameValidator {
	nameSet := make(map[string]struct{}, len(names))
	for _, name := range names {
		nameSet[name] = struct{}{}
	}

	return &labelNameValidator{
		names: nameSet,
	}
}

// Validate checks that the value carries exactly the declared label names
func (validator *labelNameValidator) Validate(value MetricValue) error {
	labels := value.LabelMap()
	if len(labels) != len(validator.names) {
		return fmt.Errorf("%w: %s", ErrUnexpectedLabelNames, FormatLabels(labels))
	}
	for name := range labels {
		_, found := validator.names[name]
		if !found {
			return fmt.Errorf("%w: %s", ErrUnexpectedLabelNames, FormatLabels(labels))
		}
	}

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (validator *labelNameValidator) IsInterfaceNil() bool {
	return validator == nil
}

func labelMapsEqual(a map[string]string, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for name, value := range a {
		otherValue, found := b[name]
		if !found || otherValue != value {
			return false
		}
	}

	return true
}
