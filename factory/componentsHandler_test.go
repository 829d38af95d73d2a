package factory

import (
	"fmt"
	"testing"

	"github.com/iulianpascalau/metrics-registry/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() config.Config {
	return config.Config{
		ListenAddress:       "0.0.0.0:0",
		DatabasePath:        ":memory:",
		SyncOnStartup:       true,
		DeleteOrphansOnSync: true,
		EndpointMetrics: []config.EndpointMetricConfig{
			{
				Component:   "tool_monitoring",
				Name:        "queue_size",
				Description: "Size of the processing queue",
				URL:         "http://127.0.0.1:8080/status",
				JSONPath:    "queue.size",
			},
		},
	}
}

func TestNewComponentsHandler(t *testing.T) {
	t.Parallel()

	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		handler, err := NewComponentsHandler("service-key", createTestConfig())
		assert.NotNil(t, handler)
		assert.Nil(t, err)

		handler.Close()
	})
	t.Run("invalid endpoint metric config should error", func(t *testing.T) {
		t.Parallel()

		cfg := createTestConfig()
		cfg.EndpointMetrics = []config.EndpointMetricConfig{
			{
				Component: "tool_monitoring",
			},
		}

		handler, err := NewComponentsHandler("service-key", cfg)
		assert.Nil(t, handler)
		assert.NotNil(t, err)
	})
}

func TestComponentsHandlerMethods(t *testing.T) {
	t.Parallel()

	handler, err := NewComponentsHandler("service-key", createTestConfig())
	require.Nil(t, err)

	err = handler.Start()
	assert.Nil(t, err)

	service := handler.GetService()
	assert.Equal(t, "*registry.service", fmt.Sprintf("%T", service))

	serv := handler.GetServer()
	assert.Equal(t, "*api.server", fmt.Sprintf("%T", serv))
	assert.NotEmpty(t, serv.Address())

	handler.Close()
}
