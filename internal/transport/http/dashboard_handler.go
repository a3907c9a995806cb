package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"jobinsight/internal/analytics"
	"jobinsight/internal/charts"
	"jobinsight/internal/config"
	apierrors "jobinsight/internal/errors"
	"jobinsight/internal/infrastructure"
	mw "jobinsight/internal/middleware"
	"jobinsight/internal/services"
	"jobinsight/pkg/contracts/domain"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

// maxListedWarnings caps the issues listed in the page banner
const maxListedWarnings = 5

var dashboardTemplate = template.Must(template.New("dashboard.html").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(templateFS, "templates/dashboard.html"))

// dashboardPage is the template model of GET /
type dashboardPage struct {
	Title        string
	View         *services.DashboardView
	Figures      charts.Figures
	Selected     string
	Options      []string
	Warnings     []domain.RowIssue
	WarningCount int
	Error        string
	Footer       string
}

// DashboardHandler renders the dashboard page
type DashboardHandler struct {
	service      DashboardServiceInterface
	validator    *mw.QueryValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	cloudWidth   int
	cloudHeight  int
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, validator *mw.QueryValidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		validator:    validator,
		logger:       infrastructure.WithComponent(logger, "dashboard_handler"),
		errorHandler: errorHandler,
		cloudWidth:   config.WordCloudWidth,
		cloudHeight:  config.WordCloudHeight,
	}
}

// ServeDashboard handles GET /?experience=
func (h *DashboardHandler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	page := dashboardPage{
		Title:    config.AppTitle,
		Selected: analytics.AllLevels,
		Footer:   config.AppFooter,
	}

	q, err := h.validator.Dashboard(r)
	if err != nil {
		h.renderError(w, r, page, err)
		return
	}

	view, err := h.service.Dashboard(r.Context(), q.Experience)
	if err != nil {
		h.renderError(w, r, page, err)
		return
	}

	page.View = view
	page.Selected = view.Selected
	page.Options = view.Options
	page.Figures = charts.Render(view.Aggregates, h.cloudWidth, h.cloudHeight)
	page.WarningCount = len(view.Aggregates.Warnings)
	page.Warnings = view.Aggregates.Warnings
	if len(page.Warnings) > maxListedWarnings {
		page.Warnings = page.Warnings[:maxListedWarnings]
	}

	h.render(w, r, http.StatusOK, page)
}

// renderError shows the failure inside the page instead of a blank screen
func (h *DashboardHandler) renderError(w http.ResponseWriter, r *http.Request, page dashboardPage, err error) {
	problem := h.errorHandler.ErrorToProblem(err, r)

	h.logger.ErrorContext(r.Context(), "dashboard unavailable",
		slog.String("request_id", mw.GetRequestID(r.Context())),
		slog.String("error", err.Error()),
		slog.Int("status", problem.Status))

	page.Error = problem.Detail
	h.render(w, r, problem.Status, page)
}

func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request, status int, page dashboardPage) {
	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
