package registry

import "errors"

// ErrMetricNotFound signals that no registered metric exists for the requested qualified name
var ErrMetricNotFound = errors.New("metric not found")

// ErrNilStorage signals that a nil storage was provided
var ErrNilStorage = errors.New("nil storage")

// ErrNilNotifier signals that a nil notifier was provided
var ErrNilNotifier = errors.New("nil notifier")

// ErrNilDefinition signals that a nil metric definition was provided
var ErrNilDefinition = errors.New("nil metric definition")

// ErrNilCollection signals that a nil metric collection was provided
var ErrNilCollection = errors.New("nil metric collection")

// ErrNilTagsResolver signals that a nil tags resolver was provided
var ErrNilTagsResolver = errors.New("nil tags resolver")

// ErrNilCollectionProvider signals that a nil collection provider was provided
var ErrNilCollectionProvider = errors.New("nil collection provider")

// ErrNilExporter signals that a nil exporter was provided
var ErrNilExporter = errors.New("nil exporter")
