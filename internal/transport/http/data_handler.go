package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"jobinsight/internal/analytics"
	apierrors "jobinsight/internal/errors"
	"jobinsight/internal/exporter"
	"jobinsight/internal/infrastructure"
	mw "jobinsight/internal/middleware"
	apiv1 "jobinsight/pkg/contracts/api/v1"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DataHandler serves the dataset aggregates as JSON and file exports
type DataHandler struct {
	service      DashboardServiceInterface
	validator    *mw.QueryValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler with RFC 7807 error handling
func NewDataHandler(service DashboardServiceInterface, validator *mw.QueryValidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		validator:    validator,
		logger:       infrastructure.WithComponent(logger, "data_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/summary", h.GetSummary)
		r.Get("/options", h.GetOptions)
		r.Get("/preview", h.GetPreview)
		r.Post("/reload", h.Reload)
	})

	// Downloads set their own content type
	r.Get("/export.csv", h.ExportCSV)
	r.Get("/export.xlsx", h.ExportWorkbook)

	return r
}

// GetSummary handles GET /api/data/summary?experience=
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	q, err := h.validator.Dashboard(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), q.Experience)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, summary)
}

// GetOptions handles GET /api/data/options
func (h *DataHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.Options(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, apiv1.OptionsResponse{
		Options: options,
		Default: analytics.AllLevels,
	})
}

// GetPreview handles GET /api/data/preview?limit=
func (h *DataHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	q, err := h.validator.Preview(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	preview, err := h.service.Preview(r.Context(), q.Limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, preview)
}

// Reload handles POST /api/data/reload
func (h *DataHandler) Reload(w http.ResponseWriter, r *http.Request) {
	reqID := mw.GetRequestID(r.Context())

	info, err := h.service.Reload(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "dataset reloaded",
		slog.String("request_id", reqID),
		slog.Int("rows", info.Rows),
		slog.Int("issues", info.Issues))

	render.JSON(w, r, info)
}

// ExportCSV handles GET /api/data/export.csv?view=&experience=
func (h *DataHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	q, err := h.validator.Export(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view := exporter.ViewWords
	if q.View != "" {
		if view, err = exporter.ParseView(q.View); err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), &buf, q.Experience, view); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	writeAttachment(w, contentTypeCSV, view.FileName(q.Experience, "csv"), buf.Bytes())
}

// ExportWorkbook handles GET /api/data/export.xlsx?experience=
func (h *DataHandler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	q, err := h.validator.Dashboard(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportWorkbook(r.Context(), &buf, q.Experience); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	writeAttachment(w, contentTypeXLSX, exporter.WorkbookFileName(q.Experience), buf.Bytes())
}

// writeAttachment sends body as a download. The body is fully built before
// any header is written so that a failed export still gets a problem response.
func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
