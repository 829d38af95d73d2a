package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/iulianpascalau/metrics-registry/common"
	"github.com/iulianpascalau/metrics-registry/metrics"
	"github.com/iulianpascalau/metrics-registry/storage"
	"github.com/iulianpascalau/metrics-registry/testsCommon"
	"github.com/stretchr/testify/require"
)

func createDefinition(t *testing.T, component string, name string, cfg metrics.Config) metrics.Definition {
	def, err := metrics.NewBaseDefinition(metrics.ArgsBaseDefinition{
		Component:     component,
		Name:          name,
		Type:          metrics.GaugeType,
		Description:   "test metric " + name,
		DefaultConfig: cfg,
		Handler: func(_ context.Context, _ metrics.Config) ([]metrics.MetricValue, error) {
			return []metrics.MetricValue{metrics.NewValue(1)}, nil
		},
	})
	require.NoError(t, err)

	return def
}

func TestNewSyncer(t *testing.T) {
	t.Parallel()

	t.Run("nil storage should error", func(t *testing.T) {
		t.Parallel()

		instance, err := NewSyncer(ArgsSyncer{
			Notifier: &testsCommon.NotifierStub{},
		})
		require.Nil(t, instance)
		require.Equal(t, ErrNilStorage, err)
	})
	t.Run("nil notifier should error", func(t *testing.T) {
		t.Parallel()

		instance, err := NewSyncer(ArgsSyncer{
			Storage: &testsCommon.StorageStub{},
		})
		require.Nil(t, instance)
		require.Equal(t, ErrNilNotifier, err)
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		instance, err := NewSyncer(ArgsSyncer{
			Storage:  &testsCommon.StorageStub{},
			Notifier: &testsCommon.NotifierStub{},
		})
		require.NoError(t, err)
		require.False(t, instance.IsInterfaceNil())
	})
}

func TestSyncer_SyncSkipsDuplicates(t *testing.T) {
	t.Parallel()

	var capturedWanted []common.RegistryRecord
	stub := &testsCommon.StorageStub{
		SyncRecordsHandler: func(_ context.Context, wanted []common.RegistryRecord, _ bool) (*common.SyncResult, error) {
			capturedWanted = wanted
			return &common.SyncResult{
				Created: wanted,
			}, nil
		},
	}

	instance, _ := NewSyncer(ArgsSyncer{
		Storage:  stub,
		Notifier: &testsCommon.NotifierStub{},
	})

	collection := metrics.NewCollection()
	collection.Add(createDefinition(t, "tool_x", "foo", metrics.Config{"first": true}))
	collection.Add(createDefinition(t, "tool_x", "foo", metrics.Config{"second": true}))
	collection.Add(createDefinition(t, "tool_x", "foo", metrics.Config{"third": true}))

	registered, err := instance.Sync(context.Background(), collection, true, "test")
	require.NoError(t, err)

	// exactly one record reaches storage, carrying the first occurrence's default config
	require.Equal(t, 1, len(capturedWanted))
	require.Equal(t, "tool_x_foo", capturedWanted[0].QualifiedName())
	require.Contains(t, capturedWanted[0].Config, "first")

	require.Equal(t, 1, len(registered))
	require.NotNil(t, registered["tool_x_foo"])
}

func TestSyncer_SyncPropagatesStorageErrors(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("expected error")
	stub := &testsCommon.StorageStub{
		SyncRecordsHandler: func(_ context.Context, _ []common.RegistryRecord, _ bool) (*common.SyncResult, error) {
			return nil, expectedErr
		},
	}

	instance, _ := NewSyncer(ArgsSyncer{
		Storage:  stub,
		Notifier: &testsCommon.NotifierStub{},
	})

	collection := metrics.NewCollection()
	collection.Add(createDefinition(t, "tool_x", "foo", nil))

	registered, err := instance.Sync(context.Background(), collection, true, "test")
	require.Nil(t, registered)
	require.Equal(t, expectedErr, err)
}

func TestSyncer_SyncNilCollection(t *testing.T) {
	t.Parallel()

	instance, _ := NewSyncer(ArgsSyncer{
		Storage:  &testsCommon.StorageStub{},
		Notifier: &testsCommon.NotifierStub{},
	})

	registered, err := instance.Sync(context.Background(), nil, true, "test")
	require.Nil(t, registered)
	require.Equal(t, ErrNilCollection, err)
}

func TestSyncer_SyncAgainstRealStorage(t *testing.T) {
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() {
		_ = store.Close()
	}()

	ctx := context.Background()
	instance, err := NewSyncer(ArgsSyncer{
		Storage:  store,
		Notifier: &testsCommon.NotifierStub{},
	})
	require.NoError(t, err)

	// pre-populate foo (later reconciled) and qux (the orphan)
	seedCollection := metrics.NewCollection()
	seedCollection.Add(createDefinition(t, "tool_monitoring", "foo", metrics.Config{"a": 1.0}))
	seedCollection.Add(createDefinition(t, "tool_monitoring", "qux", nil))

	_, err = instance.Sync(ctx, seedCollection, false, "seed")
	require.NoError(t, err)

	collection := metrics.NewCollection()
	collection.Add(createDefinition(t, "tool_monitoring", "foo", nil))
	collection.Add(createDefinition(t, "tool_monitoring", "bar", nil))
	collection.Add(createDefinition(t, "tool_monitoring", "baz", nil))

	registered, err := instance.Sync(ctx, collection, true, "test")
	require.NoError(t, err)
	require.Equal(t, 3, len(registered))

	// foo kept its original state, bar and baz start disabled with default config
	foo := registered["tool_monitoring_foo"]
	require.NotNil(t, foo)
	require.False(t, foo.IsEnabled())
	require.Equal(t, `{"a":1}`, foo.Record().Config)

	for _, name := range []string{"tool_monitoring_bar", "tool_monitoring_baz"} {
		created := registered[name]
		require.NotNil(t, created)
		require.False(t, created.IsEnabled())
		require.Equal(t, "test", created.Record().UserModified)
	}

	// qux is gone from storage
	count, err := store.CountRecords(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	records, err := store.GetRecords(ctx, []common.MetricKey{{Component: "tool_monitoring", Name: "qux"}}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, len(records))

	// a second identical pass changes nothing
	registeredAgain, err := instance.Sync(ctx, collection, true, "test")
	require.NoError(t, err)
	require.Equal(t, 3, len(registeredAgain))
	for name, registeredMetric := range registered {
		require.Equal(t, registeredMetric.Record().ID, registeredAgain[name].Record().ID)
		require.Equal(t, registeredMetric.Record().TimeCreated, registeredAgain[name].Record().TimeCreated)
	}
}
