package factory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iulianpascalau/metrics-registry/api"
	"github.com/iulianpascalau/metrics-registry/collectors"
	"github.com/iulianpascalau/metrics-registry/common"
	"github.com/iulianpascalau/metrics-registry/config"
	"github.com/iulianpascalau/metrics-registry/export"
	"github.com/iulianpascalau/metrics-registry/registry"
	"github.com/iulianpascalau/metrics-registry/storage"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("factory")

const startupActor = "startup"

type componentsHandler struct {
	store        closableStorage
	service      RegistrySyncHandler
	server       Server
	cfg          config.Config
	mutCancel    sync.Mutex
	cancel       func()
	syncInterval time.Duration
}

type closableStorage interface {
	registry.Storage
	collectors.RecordCounter
	Close() error
}

// NewComponentsHandler creates a new components handler
func NewComponentsHandler(
	serviceKeyApi string,
	cfg config.Config,
) (*componentsHandler, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	collectorFuncs, err := createCollectors(store, cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	service, err := registry.NewService(registry.ArgsService{
		Provider:            collectors.NewRegistry(collectorFuncs...),
		Storage:             store,
		Notifier:            registry.NewLogNotifier(),
		TagsResolver:        registry.NewTagsResolver(),
		Exporter:            export.NewTextExporter(),
		DeleteOrphansOnSync: cfg.DeleteOrphansOnSync,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	server, err := api.NewServer(api.ArgsWebServer{
		ServiceKeyApi:  serviceKeyApi,
		ListenAddress:  cfg.ListenAddress,
		Registry:       service,
		GeneralHandler: api.CORSMiddleware,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &componentsHandler{
		store:        store,
		service:      service,
		server:       server,
		cfg:          cfg,
		syncInterval: time.Duration(cfg.SyncIntervalInSeconds) * time.Second,
	}, nil
}

func createCollectors(store collectors.RecordCounter, cfg config.Config) ([]collectors.Collector, error) {
	storageCollector, err := collectors.NewStorageCollector(store)
	if err != nil {
		return nil, err
	}

	collectorFuncs := []collectors.Collector{
		collectors.NewRuntimeCollector(),
		storageCollector,
	}

	for _, endpointCfg := range cfg.EndpointMetrics {
		endpointMetric, errCreate := collectors.NewEndpointMetric(collectors.ArgsEndpointMetric{
			Component:   endpointCfg.Component,
			Name:        endpointCfg.Name,
			Description: endpointCfg.Description,
			URL:         endpointCfg.URL,
			JSONPath:    endpointCfg.JSONPath,
		})
		if errCreate != nil {
			return nil, fmt.Errorf("failed to create endpoint metric %s_%s: %w",
				endpointCfg.Component, endpointCfg.Name, errCreate)
		}

		collectorFuncs = append(collectorFuncs, collectors.FromDefinitions(endpointMetric))
	}

	return collectorFuncs, nil
}

// GetService returns the registry service component
func (ch *componentsHandler) GetService() RegistrySyncHandler {
	return ch.service
}

// GetServer returns the server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the inner components, runs the startup reconciliation and, if configured,
// the periodic one
func (ch *componentsHandler) Start() error {
	if ch.cfg.SyncOnStartup {
		err := ch.service.SyncRegistry(context.Background(), startupActor)
		if err != nil {
			return err
		}
	}

	ch.server.Start()
	ch.startPeriodicSync()

	return nil
}

func (ch *componentsHandler) startPeriodicSync() {
	if ch.syncInterval <= 0 {
		return
	}

	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel != nil {
		return
	}

	var ctx context.Context
	ctx, ch.cancel = context.WithCancel(context.Background())

	log.Debug("starting periodic registry sync", "interval", ch.syncInterval)
	common.CronJobStarter(ctx, ch.service.Process, ch.syncInterval)
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	ch.mutCancel.Lock()
	if ch.cancel != nil {
		ch.cancel()
		ch.cancel = nil
	}
	ch.mutCancel.Unlock()

	_ = ch.server.Close()
	_ = ch.store.Close()
}
