package testsCommon

// NotifierStub -
type NotifierStub struct {
	MetricEnabledHandler       func(qualifiedName string)
	MetricDisabledHandler      func(qualifiedName string)
	MetricConfigUpdatedHandler func(qualifiedName string)
}

// MetricEnabled -
func (stub *NotifierStub) MetricEnabled(qualifiedName string) {
	if stub.MetricEnabledHandler != nil {
		stub.MetricEnabledHandler(qualifiedName)
	}
}

// MetricDisabled -
func (stub *NotifierStub) MetricDisabled(qualifiedName string) {
	if stub.MetricDisabledHandler != nil {
		stub.MetricDisabledHandler(qualifiedName)
	}
}

// MetricConfigUpdated -
func (stub *NotifierStub) MetricConfigUpdated(qualifiedName string) {
	if stub.MetricConfigUpdatedHandler != nil {
		stub.MetricConfigUpdatedHandler(qualifiedName)
	}
}

// IsInterfaceNil -
func (stub *NotifierStub) IsInterfaceNil() bool {
	return stub == nil
}
