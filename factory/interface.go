package factory

import "context"

// Server defines the operation of an entity able to serve requests
type Server interface {
	Start()
	Address() string
	Close() error
}

// RegistrySyncHandler defines the reconciliation operations driven by the factory
type RegistrySyncHandler interface {
	SyncRegistry(ctx context.Context, actor string) error
	Process(ctx context.Context)
	IsInterfaceNil() bool
}
