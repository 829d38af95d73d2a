package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryRecord(t *testing.T) {
	t.Parallel()

	record := RegistryRecord{
		ID:        1,
		Component: "tool_monitoring",
		Name:      "response_time_ms",
	}

	require.NoError(t, record.Validate())
	require.Equal(t, MetricKey{Component: "tool_monitoring", Name: "response_time_ms"}, record.Key())
	require.Equal(t, "tool_monitoring_response_time_ms", record.QualifiedName())

	t.Run("missing component should error", func(t *testing.T) {
		t.Parallel()

		invalid := RegistryRecord{Name: "response_time_ms"}
		require.Equal(t, ErrMissingIdentity, invalid.Validate())
	})
	t.Run("missing name should error", func(t *testing.T) {
		t.Parallel()

		invalid := RegistryRecord{Component: "tool_monitoring"}
		require.Equal(t, ErrMissingIdentity, invalid.Validate())
	})
}
