package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "jobinsight/internal/errors"
	"jobinsight/internal/exporter"
	mw "jobinsight/internal/middleware"
	"jobinsight/internal/services"
	"jobinsight/internal/shared/testutil"
	apiv1 "jobinsight/pkg/contracts/api/v1"
	"jobinsight/pkg/contracts/domain"
)

// MockDashboardService is a mock implementation of DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Dashboard(ctx context.Context, selection string) (*services.DashboardView, error) {
	args := m.Called(selection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DashboardView), args.Error(1)
}

func (m *MockDashboardService) Summary(ctx context.Context, selection string) (*services.Summary, error) {
	args := m.Called(selection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Summary), args.Error(1)
}

func (m *MockDashboardService) Options(ctx context.Context) ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDashboardService) Preview(ctx context.Context, limit int) (*services.Preview, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Preview), args.Error(1)
}

func (m *MockDashboardService) ExportCSV(ctx context.Context, w io.Writer, selection string, view exporter.View) error {
	args := m.Called(selection, view)
	if body := args.String(1); body != "" {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(0)
}

func (m *MockDashboardService) ExportWorkbook(ctx context.Context, w io.Writer, selection string) error {
	args := m.Called(selection)
	if body := args.String(1); body != "" {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(0)
}

func (m *MockDashboardService) Reload(ctx context.Context) (services.DatasetInfo, error) {
	args := m.Called()
	return args.Get(0).(services.DatasetInfo), args.Error(1)
}

func newDataRouter(t *testing.T, svc DashboardServiceInterface) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	h := NewDataHandler(svc, mw.NewQueryValidator(logger), logger, apierrors.NewErrorHandler(logger, false))
	r := chi.NewRouter()
	r.Mount("/api/data", h.Routes())
	return r
}

func doRequest(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDataHandler_GetSummary(t *testing.T) {
	loadErr := apierrors.NewDataLoadError("data/Team_1.csv", "dataset file is not accessible", errors.New("no such file"))

	tests := []struct {
		name       string
		query      string
		selection  string
		result     *services.Summary
		err        error
		wantStatus int
	}{
		{
			name:      "all levels",
			query:     "",
			selection: "",
			result: &services.Summary{
				Dataset:    services.DatasetInfo{Rows: 5, Columns: 6},
				Aggregates: &domain.Aggregates{Selection: "All", RowCount: 5},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:      "unknown level is still ok",
			query:     "?experience=Director",
			selection: "Director",
			result: &services.Summary{
				Aggregates: &domain.Aggregates{Selection: "Director"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "load failure",
			query:      "?experience=Entry",
			selection:  "Entry",
			err:        loadErr,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDashboardService)
			if tt.err != nil {
				svc.On("Summary", tt.selection).Return(nil, tt.err)
			} else {
				svc.On("Summary", tt.selection).Return(tt.result, nil)
			}

			rec := doRequest(newDataRouter(t, svc), http.MethodGet, "/api/data/summary"+tt.query)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				var got services.Summary
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, tt.result.Aggregates.Selection, got.Aggregates.Selection)
				assert.Equal(t, tt.result.Aggregates.RowCount, got.Aggregates.RowCount)
			} else {
				assert.Equal(t, float64(tt.wantStatus), decodeProblem(t, rec)["status"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestDataHandler_GetSummary_RejectsLongSelection(t *testing.T) {
	svc := new(MockDashboardService)
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}

	rec := doRequest(newDataRouter(t, svc), http.MethodGet, "/api/data/summary?experience="+string(long))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Summary", mock.Anything)
}

func TestDataHandler_GetOptions(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("Options").Return([]string{"All", "Entry", "Senior"}, nil)

	rec := doRequest(newDataRouter(t, svc), http.MethodGet, "/api/data/options")

	require.Equal(t, http.StatusOK, rec.Code)
	var body apiv1.OptionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"All", "Entry", "Senior"}, body.Options)
	assert.Equal(t, "All", body.Default)
}

func TestDataHandler_GetPreview(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		limit      int
		wantStatus int
		wantCall   bool
	}{
		{name: "default limit", query: "", limit: 0, wantStatus: http.StatusOK, wantCall: true},
		{name: "explicit limit", query: "?limit=3", limit: 3, wantStatus: http.StatusOK, wantCall: true},
		{name: "limit too large", query: "?limit=500", wantStatus: http.StatusBadRequest},
		{name: "limit not a number", query: "?limit=abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDashboardService)
			if tt.wantCall {
				svc.On("Preview", tt.limit).Return(&services.Preview{
					Columns: []string{"Job_Description"},
					Rows:    [][]string{{"Junior data analyst"}},
					Total:   5,
				}, nil)
			}

			rec := doRequest(newDataRouter(t, svc), http.MethodGet, "/api/data/preview"+tt.query)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCall {
				svc.AssertExpectations(t)
			} else {
				svc.AssertNotCalled(t, "Preview", mock.Anything)
			}
		})
	}
}

func TestDataHandler_ExportCSV(t *testing.T) {
	t.Run("defaults to words view", func(t *testing.T) {
		svc := new(MockDashboardService)
		svc.On("ExportCSV", "", exporter.ViewWords).Return(nil, "rank,word,count\n")

		rec := doRequest(newDataRouter(t, svc), http.MethodGet, "/api/data/export.csv")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, contentTypeCSV, rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="job_market_words_all.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "rank,word,count\n", rec.Body.String())
	})

	t.Run("view and selection", func(t *testing.T) {
		svc := new(MockDashboardService)
		svc.On("ExportCSV", "Senior", exporter.ViewSkills).Return(nil, "rank,skill,count\n")

		rec := doRequest(newDataRouter(t, svc), http.MethodGet, "/api/data/export.csv?view=skills&experience=Senior")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="job_market_skills_senior.csv"`, rec.Header().Get("Content-Disposition"))
	})

	t.Run("unknown view", func(t *testing.T) {
		svc := new(MockDashboardService)

		rec := doRequest(newDataRouter(t, svc), http.MethodGet, "/api/data/export.csv?view=pie")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
		svc.AssertNotCalled(t, "ExportCSV", mock.Anything, mock.Anything)
	})

	t.Run("export failure gets a problem response", func(t *testing.T) {
		svc := new(MockDashboardService)
		svc.On("ExportCSV", "", exporter.ViewSalary).
			Return(apierrors.NewExportError("failed to write csv export", errors.New("disk full")), "partial")

		rec := doRequest(newDataRouter(t, svc), http.MethodGet, "/api/data/export.csv?view=salary")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
		assert.NotContains(t, rec.Body.String(), "partial")
	})
}

func TestDataHandler_ExportWorkbook(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("ExportWorkbook", "Entry").Return(nil, "PK")

	rec := doRequest(newDataRouter(t, svc), http.MethodGet, "/api/data/export.xlsx?experience=Entry")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="job_market_entry.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", rec.Header().Get("Content-Length"))
}

func TestDataHandler_Reload(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("Reload").Return(services.DatasetInfo{Path: "data/Team_1.csv", Rows: 5}, nil)
	router := newDataRouter(t, svc)

	rec := doRequest(router, http.MethodPost, "/api/data/reload")
	require.Equal(t, http.StatusOK, rec.Code)

	var info services.DatasetInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, 5, info.Rows)

	rec = doRequest(router, http.MethodGet, "/api/data/reload")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDataHandler_ReloadLogsRequestID(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("Reload").Return(services.DatasetInfo{Rows: 5}, nil)

	logger, logs := testutil.NewTestLogger(t)
	h := NewDataHandler(svc, mw.NewQueryValidator(logger), logger, apierrors.NewErrorHandler(logger, false))
	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Mount("/api/data", h.Routes())

	req := httptest.NewRequest(http.MethodPost, "/api/data/reload", nil)
	req.Header.Set(mw.RequestIDHeader, "reload-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, logs.ContainsAttr("request_id", "reload-42"))
	assert.True(t, logs.ContainsAttr("component", "data_handler"))
}
