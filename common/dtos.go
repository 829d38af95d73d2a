package common

import "errors"

// ErrMissingIdentity signals that a registry record misses a required identity field
var ErrMissingIdentity = errors.New("registry record misses a required identity field")

// MetricKey is the composite identity of a registered metric
type MetricKey struct {
	Component string
	Name      string
}

// QualifiedName returns the global identity key derived from the composite identity
func (k MetricKey) QualifiedName() string {
	return k.Component + "_" + k.Name
}

// RegistryRecord mirrors one row of the persisted metrics registry
type RegistryRecord struct {
	ID           int64
	Component    string
	Name         string
	Enabled      bool
	Config       string
	TimeCreated  int64
	TimeModified int64
	UserModified string
}

// Key returns the composite identity of the record
func (r *RegistryRecord) Key() MetricKey {
	return MetricKey{
		Component: r.Component,
		Name:      r.Name,
	}
}

// QualifiedName returns the global identity key of the record
func (r *RegistryRecord) QualifiedName() string {
	return r.Key().QualifiedName()
}

// Validate fails fast when identity fields are missing, the record can not be
// reconstructed into a registered metric without them
func (r *RegistryRecord) Validate() error {
	if len(r.Component) == 0 || len(r.Name) == 0 {
		return ErrMissingIdentity
	}

	return nil
}

// SyncResult carries the outcome of one reconciliation transaction
type SyncResult struct {
	Matched           []RegistryRecord
	Created           []RegistryRecord
	NumDeletedOrphans int
}

// RegistryState is the read-only projection of one registered metric exposed over the API
type RegistryState struct {
	QualifiedName string `json:"qualifiedName"`
	Component     string `json:"component"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Description   string `json:"description"`
	Enabled       bool   `json:"enabled"`
	Config        string `json:"config,omitempty"`
	TimeCreated   int64  `json:"timeCreated"`
	TimeModified  int64  `json:"timeModified"`
	UserModified  string `json:"userModified,omitempty"`
}
