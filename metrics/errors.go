package metrics

import "errors"

// ErrInvalidConfig signals that a serialized config string could not be decoded
var ErrInvalidConfig = errors.New("invalid serialized config")

// ErrEmptyComponent signals that a definition was created without a component identifier
var ErrEmptyComponent = errors.New("empty component identifier")

// ErrEmptyName signals that a definition was created without a name
var ErrEmptyName = errors.New("empty metric name")

// ErrInvalidMetricType signals an unknown metric type
var ErrInvalidMetricType = errors.New("invalid metric type")

// ErrNilCalculateHandler signals that a definition was created without a calculate handler
var ErrNilCalculateHandler = errors.New("nil calculate handler")

// ErrUnexpectedLabelSet signals that a produced value's labels match none of the allowed label sets
var ErrUnexpectedLabelSet = errors.New("unexpected label set")

// ErrUnexpectedLabelNames signals that a produced value's label names differ from the declared ones
var ErrUnexpectedLabelNames = errors.New("unexpected label names")

// ErrEmptyAllowedLabelSets signals that a label-set validator was created without allowed sets
var ErrEmptyAllowedLabelSets = errors.New("empty allowed label sets")
