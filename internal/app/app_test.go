package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobinsight/internal/config"
	apierrors "jobinsight/internal/errors"
	"jobinsight/internal/shared/testutil"
)

func newTestApplication(t *testing.T, datasetPath string) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = 2 * time.Second
	cfg.Dataset.Path = datasetPath
	cfg.Security.RateLimit.Enabled = false

	logger, _ := testutil.NewTestLogger(t)
	app, err := NewApplicationWithConfig(cfg, logger)
	require.NoError(t, err)
	return app
}

func serve(app *Application, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestApplication_Routes(t *testing.T) {
	app := newTestApplication(t, testutil.WriteSampleDataset(t))

	tests := []struct {
		name        string
		method      string
		target      string
		wantStatus  int
		contentType string
	}{
		{name: "dashboard", method: http.MethodGet, target: "/", wantStatus: http.StatusOK, contentType: "text/html; charset=utf-8"},
		{name: "filtered dashboard", method: http.MethodGet, target: "/?experience=Entry", wantStatus: http.StatusOK, contentType: "text/html; charset=utf-8"},
		{name: "summary", method: http.MethodGet, target: "/api/data/summary?experience=Senior", wantStatus: http.StatusOK, contentType: "application/json"},
		{name: "options", method: http.MethodGet, target: "/api/data/options", wantStatus: http.StatusOK, contentType: "application/json"},
		{name: "preview", method: http.MethodGet, target: "/api/data/preview?limit=2", wantStatus: http.StatusOK, contentType: "application/json"},
		{name: "csv export", method: http.MethodGet, target: "/api/data/export.csv?view=sentiment", wantStatus: http.StatusOK, contentType: "text/csv; charset=utf-8"},
		{name: "workbook export", method: http.MethodGet, target: "/api/data/export.xlsx", wantStatus: http.StatusOK, contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{name: "reload", method: http.MethodPost, target: "/api/data/reload", wantStatus: http.StatusOK, contentType: "application/json"},
		{name: "health", method: http.MethodGet, target: "/api/health", wantStatus: http.StatusOK, contentType: "application/json"},
		{name: "ready", method: http.MethodGet, target: "/api/health/ready", wantStatus: http.StatusOK, contentType: "application/json"},
		{name: "live", method: http.MethodGet, target: "/api/health/live", wantStatus: http.StatusOK, contentType: "application/json"},
		{name: "trailing slash", method: http.MethodGet, target: "/api/health/live/", wantStatus: http.StatusOK, contentType: "application/json"},
		{name: "version", method: http.MethodGet, target: "/api/version", wantStatus: http.StatusOK, contentType: "application/json"},
		{name: "unknown route", method: http.MethodGet, target: "/nope", wantStatus: http.StatusNotFound, contentType: "application/json"},
		{name: "invalid view", method: http.MethodGet, target: "/api/data/export.csv?view=pie", wantStatus: http.StatusBadRequest, contentType: "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(app, tt.method, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), tt.contentType)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestApplication_SummaryReflectsSelection(t *testing.T) {
	app := newTestApplication(t, testutil.WriteSampleDataset(t))

	rec := serve(app, http.MethodGet, "/api/data/summary?experience=Senior")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Dataset struct {
			Rows int `json:"rows"`
		} `json:"dataset"`
		Aggregates struct {
			Selection string `json:"selection"`
			RowCount  int    `json:"row_count"`
		} `json:"aggregates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Dataset.Rows)
	assert.Equal(t, "Senior", body.Aggregates.Selection)
	assert.Equal(t, 2, body.Aggregates.RowCount)
}

func TestApplication_MetricsEndpoint(t *testing.T) {
	app := newTestApplication(t, testutil.WriteSampleDataset(t))

	require.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/api/data/summary").Code)

	rec := serve(app, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "dataset_loads_total")
	assert.Contains(t, body, "go_goroutines")
}

func TestApplication_MissingDatasetIsNotReady(t *testing.T) {
	app := newTestApplication(t, filepath.Join(t.TempDir(), "missing.csv"))

	assert.Equal(t, http.StatusServiceUnavailable, serve(app, http.MethodGet, "/api/health/ready").Code)
	assert.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/api/health/live").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(app, http.MethodGet, "/api/data/summary").Code)
}

func TestNewApplication_BadConfigFile(t *testing.T) {
	t.Setenv(config.EnvPrefix+"_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	app, err := NewApplication()
	require.Error(t, err)
	assert.Nil(t, app)
	assert.True(t, apierrors.IsType(err, apierrors.ErrTypeConfig), "got %v", err)
}

func TestApplication_StartStop(t *testing.T) {
	app := newTestApplication(t, testutil.WriteSampleDataset(t))
	app.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, app.Start(ctx, cancel))
	require.NoError(t, app.Stop(ctx))
	assert.Equal(t, 0, app.Cache.Len())
}
