package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobinsight/internal/services"
	"jobinsight/internal/shared/testutil"
)

type readinessFunc func(ctx context.Context) error

func (f readinessFunc) Ready(ctx context.Context) error { return f(ctx) }

func newHealthRouter(t *testing.T, ready services.ReadinessChecker) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	h := NewHealthHandler(services.NewHealthService("1.2.3", "2026-01-01", "abc", ready, logger), logger)

	r := chi.NewRouter()
	r.Mount("/api/health", h.Routes())
	r.Get("/api/version", h.Version)
	return r
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		ready      error
		wantStatus int
		wantBody   string
	}{
		{name: "health", path: "/api/health", wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "live", path: "/api/health/live", wantStatus: http.StatusOK, wantBody: "alive"},
		{name: "ready", path: "/api/health/ready", wantStatus: http.StatusOK, wantBody: "ready"},
		{
			name:       "not ready",
			path:       "/api/health/ready",
			ready:      errors.New("dataset missing"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newHealthRouter(t, readinessFunc(func(context.Context) error { return tt.ready }))

			rec := doRequest(router, http.MethodGet, tt.path)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var status services.HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
			assert.Equal(t, tt.wantBody, status.Status)
			assert.Equal(t, "1.2.3", status.Version)
		})
	}
}

func TestHealthHandler_Version(t *testing.T) {
	rec := doRequest(newHealthRouter(t, nil), http.MethodGet, "/api/version")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1.2.3", body["version"])
	assert.Equal(t, "abc", body["build_id"])
	assert.Equal(t, "2026-01-01", body["build_time"])
}
