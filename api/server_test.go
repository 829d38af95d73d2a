package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iulianpascalau/metrics-registry/common"
	"github.com/iulianpascalau/metrics-registry/metrics"
	"github.com/iulianpascalau/metrics-registry/registry"
	"github.com/iulianpascalau/metrics-registry/testsCommon"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, handler *testsCommon.RegistryHandlerStub) *server {
	args := ArgsWebServer{
		ServiceKeyApi:  "test-secret",
		ListenAddress:  ":0",
		Registry:       handler,
		GeneralHandler: func(h http.Handler) http.Handler { return h },
	}

	serv, err := NewServer(args)
	require.NoError(t, err)

	return serv
}

func TestNewServer(t *testing.T) {
	t.Run("nil registry handler should error", func(t *testing.T) {
		serv, err := NewServer(ArgsWebServer{
			GeneralHandler: func(h http.Handler) http.Handler { return h },
		})
		require.Nil(t, serv)
		require.Error(t, err)
	})
	t.Run("nil general handler should error", func(t *testing.T) {
		serv, err := NewServer(ArgsWebServer{
			Registry: &testsCommon.RegistryHandlerStub{},
		})
		require.Nil(t, serv)
		require.Error(t, err)
	})
}

func TestAuthAPIKey(t *testing.T) {
	serv := setupTestServer(t, &testsCommon.RegistryHandlerStub{})

	// missing key
	req, _ := http.NewRequest("GET", "/api/registry", nil)
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// wrong key
	req, _ = http.NewRequest("GET", "/api/registry", nil)
	req.Header.Set("X-Api-Key", "wrong")
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// correct key
	req, _ = http.NewRequest("GET", "/api/registry", nil)
	req.Header.Set("X-Api-Key", "test-secret")
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGetRegistryEndpoint(t *testing.T) {
	var capturedEnabled *bool
	var capturedTags []string
	serv := setupTestServer(t, &testsCommon.RegistryHandlerStub{
		RegistryHandler: func(_ context.Context, enabled *bool, requiredTags []string) ([]common.RegistryState, error) {
			capturedEnabled = enabled
			capturedTags = requiredTags

			return []common.RegistryState{
				{
					QualifiedName: "tool_monitoring_foo",
					Component:     "tool_monitoring",
					Name:          "foo",
					Type:          "gauge",
					Enabled:       true,
				},
			}, nil
		},
	})

	req, _ := http.NewRequest("GET", "/api/registry?enabled=true&tags=external,http", nil)
	req.Header.Set("X-Api-Key", "test-secret")
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, capturedEnabled)
	require.True(t, *capturedEnabled)
	require.Equal(t, []string{"external", "http"}, capturedTags)

	var resp struct {
		Metrics []common.RegistryState `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Metrics, 1)
	require.Equal(t, "tool_monitoring_foo", resp.Metrics[0].QualifiedName)

	// invalid enabled filter
	req, _ = http.NewRequest("GET", "/api/registry?enabled=maybe", nil)
	req.Header.Set("X-Api-Key", "test-secret")
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	expectedText := "# HELP tool_monitoring_foo foo\n# TYPE tool_monitoring_foo gauge\ntool_monitoring_foo 1\n"
	serv := setupTestServer(t, &testsCommon.RegistryHandlerStub{
		ExportHandler: func(_ context.Context, _ []string) (string, error) {
			return expectedText, nil
		},
	})

	req, _ := http.NewRequest("GET", "/api/export", nil)
	req.Header.Set("X-Api-Key", "test-secret")
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, expectedText, w.Body.String())
}

func TestEnableDisableEndpoints(t *testing.T) {
	type call struct {
		qualifiedName string
		enabled       bool
		actor         string
	}
	calls := make([]call, 0)
	serv := setupTestServer(t, &testsCommon.RegistryHandlerStub{
		SetEnabledHandler: func(_ context.Context, qualifiedName string, enabled bool, actor string) error {
			calls = append(calls, call{qualifiedName, enabled, actor})
			if qualifiedName == "missing_metric" {
				return fmt.Errorf("%w: %s", registry.ErrMetricNotFound, qualifiedName)
			}

			return nil
		},
	})

	req, _ := http.NewRequest("PUT", "/api/registry/tool_monitoring_foo/enable", nil)
	req.Header.Set("X-Api-Key", "test-secret")
	req.Header.Set("X-Actor", "admin")
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("PUT", "/api/registry/tool_monitoring_foo/disable", nil)
	req.Header.Set("X-Api-Key", "test-secret")
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("PUT", "/api/registry/missing_metric/enable", nil)
	req.Header.Set("X-Api-Key", "test-secret")
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, []call{
		{"tool_monitoring_foo", true, "admin"},
		{"tool_monitoring_foo", false, "api"},
		{"missing_metric", true, "api"},
	}, calls)
}

func TestUpdateConfigEndpoint(t *testing.T) {
	var capturedName string
	var capturedCfg metrics.Config
	serv := setupTestServer(t, &testsCommon.RegistryHandlerStub{
		UpdateConfigHandler: func(_ context.Context, qualifiedName string, cfg metrics.Config, _ string) error {
			capturedName = qualifiedName
			capturedCfg = cfg

			return nil
		},
	})

	body := []byte(`{"url":"http://localhost/status","timeoutSeconds":5}`)
	req, _ := http.NewRequest("PUT", "/api/registry/tool_monitoring_foo/config", bytes.NewBuffer(body))
	req.Header.Set("X-Api-Key", "test-secret")
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "tool_monitoring_foo", capturedName)
	require.Equal(t, "http://localhost/status", capturedCfg.GetString("url", ""))
	require.Equal(t, 5.0, capturedCfg.GetFloat("timeoutSeconds", 0))

	// malformed payload
	req, _ = http.NewRequest("PUT", "/api/registry/tool_monitoring_foo/config", bytes.NewBuffer([]byte("not-json")))
	req.Header.Set("X-Api-Key", "test-secret")
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInternalErrorsAreReported(t *testing.T) {
	expectedErr := errors.New("expected error")
	serv := setupTestServer(t, &testsCommon.RegistryHandlerStub{
		RegistryHandler: func(_ context.Context, _ *bool, _ []string) ([]common.RegistryState, error) {
			return nil, expectedErr
		},
		ExportHandler: func(_ context.Context, _ []string) (string, error) {
			return "", expectedErr
		},
	})

	req, _ := http.NewRequest("GET", "/api/registry", nil)
	req.Header.Set("X-Api-Key", "test-secret")
	w := httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	req, _ = http.NewRequest("GET", "/api/export", nil)
	req.Header.Set("X-Api-Key", "test-secret")
	w = httptest.NewRecorder()
	serv.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
