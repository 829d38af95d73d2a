package registry

// logNotifier is the default Notifier implementation, it only logs the state changes
type logNotifier struct {
}

// NewLogNotifier creates a notifier that logs registered metric state changes
func NewLogNotifier() *logNotifier {
	return &logNotifier{}
}

// MetricEnabled logs that a metric was enabled
func (notifier *logNotifier) MetricEnabled(qualifiedName string) {
	log.Info("metric enabled", "qualifiedName", qualifiedName)
}

// MetricDisabled logs that a metric was disabled
func (notifier *logNotifier) MetricDisabled(qualifiedName string) {
	log.Info("metric disabled", "qualifiedName", qualifiedName)
}

// MetricConfigUpdated logs that a metric's configuration changed
func (notifier *logNotifier) MetricConfigUpdated(qualifiedName string) {
	log.Info("metric config updated", "qualifiedName", qualifiedName)
}

// IsInterfaceNil returns true if the value under the interface is nil
func (notifier *logNotifier) IsInterfaceNil() bool {
	return notifier == nil
}
