package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"jobinsight/internal/analytics"
	"jobinsight/internal/config"
	"jobinsight/internal/dataset"
	apperrors "jobinsight/internal/errors"
	"jobinsight/internal/exporter"
	"jobinsight/internal/infrastructure"
	"jobinsight/pkg/contracts/domain"
)

// DatasetInfo describes the loaded dataset
type DatasetInfo struct {
	Path          string    `json:"path"`
	Rows          int       `json:"rows"`
	Columns       int       `json:"columns"`
	ColumnNames   []string  `json:"column_names"`
	ModifiedAt    time.Time `json:"modified_at"`
	Issues        int       `json:"issues"`
	MalformedRows int       `json:"malformed_rows"`
}

// Summary is the aggregate view of one experience selection
type Summary struct {
	Dataset    DatasetInfo        `json:"dataset"`
	Aggregates *domain.Aggregates `json:"aggregates"`
}

// Preview holds the leading rows of the dataset in column order
type Preview struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

// DashboardView is everything the dashboard page shows for one selection
type DashboardView struct {
	Dataset    DatasetInfo
	Preview    Preview
	Options    []string
	Selected   string
	Aggregates *domain.Aggregates
}

// DashboardService runs the load, filter and aggregate pipeline for the
// configured dataset
type DashboardService struct {
	path     string
	cfg      config.DatasetConfig
	cache    *dataset.Cache
	opts     analytics.Options
	csv      *exporter.CSVWriter
	workbook *exporter.WorkbookExporter
	metrics  *infrastructure.DashboardMetrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewDashboardService creates the service. path is the resolved dataset path.
func NewDashboardService(path string, cfg config.DatasetConfig, cache *dataset.Cache, metrics *infrastructure.DashboardMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("DashboardService initialized",
		slog.String("dataset_path", path),
		slog.Int("top_words", cfg.TopWords),
		slog.Int("top_skills", cfg.TopSkills))

	return &DashboardService{
		path:  path,
		cfg:   cfg,
		cache: cache,
		opts: analytics.Options{
			TopWords:       cfg.TopWords,
			TopSkills:      cfg.TopSkills,
			WordCloudWords: cfg.WordCloudWords,
		},
		csv:      exporter.NewCSVWriter(nil),
		workbook: exporter.NewWorkbookExporter(logger),
		metrics:  metrics,
		logger:   infrastructure.WithComponent(logger, "dashboard_service"),
		tracer:   otel.Tracer(infrastructure.InstrumentationName + "/services"),
	}
}

// DatasetPath returns the path the service reads
func (s *DashboardService) DatasetPath() string {
	return s.path
}

// Table returns the current dataset, reloading it when the file changed
func (s *DashboardService) Table(ctx context.Context) (*domain.JobTable, error) {
	return s.cache.Get(ctx, s.path)
}

// Info describes the current dataset
func (s *DashboardService) Info(ctx context.Context) (DatasetInfo, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return DatasetInfo{}, err
	}
	return describe(table), nil
}

// Summary computes the aggregates for selection. An unknown level yields
// empty aggregates.
func (s *DashboardService) Summary(ctx context.Context, selection string) (*Summary, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	agg, err := s.aggregate(ctx, table, selection)
	if err != nil {
		return nil, err
	}

	return &Summary{Dataset: describe(table), Aggregates: agg}, nil
}

// Options returns the experience level choices, "All" first
func (s *DashboardService) Options(ctx context.Context) ([]string, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ExperienceOptions(table), nil
}

// Preview returns the first limit rows. limit <= 0 uses the configured size.
func (s *DashboardService) Preview(ctx context.Context, limit int) (*Preview, error) {
	if limit > config.MaxPreviewRows {
		return nil, apperrors.NewAppValidationError(
			fmt.Sprintf("limit must be between 1 and %d", config.MaxPreviewRows)).
			WithContext("field", "limit")
	}
	if limit <= 0 {
		limit = s.cfg.PreviewRows
	}

	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	return preview(table, limit), nil
}

// Dashboard assembles the full page model for selection
func (s *DashboardService) Dashboard(ctx context.Context, selection string) (*DashboardView, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	agg, err := s.aggregate(ctx, table, selection)
	if err != nil {
		return nil, err
	}

	return &DashboardView{
		Dataset:    describe(table),
		Preview:    *preview(table, s.cfg.PreviewRows),
		Options:    analytics.ExperienceOptions(table),
		Selected:   agg.Selection,
		Aggregates: agg,
	}, nil
}

// ExportCSV writes one aggregate view of selection to w with a UTF-8 BOM
func (s *DashboardService) ExportCSV(ctx context.Context, w io.Writer, selection string, view exporter.View) error {
	summary, err := s.Summary(ctx, selection)
	if err != nil {
		return err
	}

	headers, rows, err := exporter.ViewTable(summary.Aggregates, view)
	if err != nil {
		return err
	}

	if err := s.csv.Write(w, exporter.WriteOptions{Headers: headers, Records: rows, BOMPrefix: true}); err != nil {
		return apperrors.NewExportError("failed to write csv export", err).WithContext("view", string(view))
	}

	s.metrics.RecordExport(ctx, "csv", string(view))
	s.logger.InfoContext(ctx, "csv export written",
		slog.String("selection", summary.Aggregates.Selection),
		slog.String("view", string(view)),
		slog.Int("rows", len(rows)))
	return nil
}

// ExportWorkbook writes every aggregate view of selection to w as an .xlsx workbook
func (s *DashboardService) ExportWorkbook(ctx context.Context, w io.Writer, selection string) error {
	summary, err := s.Summary(ctx, selection)
	if err != nil {
		return err
	}

	meta := exporter.WorkbookMeta{
		Source:     summary.Dataset.Path,
		Columns:    summary.Dataset.Columns,
		TotalRows:  summary.Dataset.Rows,
		ReportedBy: config.AppFooter,
	}
	if err := s.workbook.Write(w, summary.Aggregates, meta); err != nil {
		return apperrors.NewExportError("failed to write workbook export", err)
	}

	s.metrics.RecordExport(ctx, "xlsx", "all")
	s.logger.InfoContext(ctx, "workbook export written",
		slog.String("selection", summary.Aggregates.Selection))
	return nil
}

// Reload drops the cached table and reads the dataset again
func (s *DashboardService) Reload(ctx context.Context) (DatasetInfo, error) {
	dropped := s.cache.Invalidate(ctx, s.path)
	s.logger.InfoContext(ctx, "dataset reload requested", slog.Bool("was_cached", dropped))
	return s.Info(ctx)
}

// Ready reports whether the dataset file can be read
func (s *DashboardService) Ready(ctx context.Context) error {
	if _, err := dataset.Stat(s.path); err != nil {
		return err
	}
	_, err := s.Table(ctx)
	return err
}

func (s *DashboardService) aggregate(ctx context.Context, table *domain.JobTable, selection string) (*domain.Aggregates, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.aggregate", trace.WithAttributes(
		attribute.String("experience", selection),
	))
	defer span.End()

	start := time.Now()
	filtered := analytics.Filter(table, selection)
	agg, err := analytics.Aggregate(ctx, filtered, selection, s.opts)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	duration := time.Since(start)

	s.metrics.RecordAggregation(ctx, !analytics.IsAll(selection), duration)
	span.SetAttributes(attribute.Int("rows", agg.RowCount))

	if !analytics.HasLevel(table, selection) {
		s.logger.DebugContext(ctx, "unknown experience level selected",
			slog.String("experience", selection))
	}

	s.logger.DebugContext(ctx, "aggregates computed",
		slog.String("experience", agg.Selection),
		slog.Int("rows", agg.RowCount),
		slog.Int("warnings", len(agg.Warnings)),
		slog.Duration("duration", duration))

	return agg, nil
}

func describe(table *domain.JobTable) DatasetInfo {
	info := DatasetInfo{
		Path:        table.Source.Path,
		Rows:        table.Len(),
		Columns:     len(table.Columns),
		ColumnNames: table.Columns,
		ModifiedAt:  table.Source.ModTime,
		Issues:      len(table.Issues),
	}
	for _, issue := range table.Issues {
		if issue.Kind == domain.IssueMalformedTokens {
			info.MalformedRows++
		}
	}
	return info
}

func preview(table *domain.JobTable, limit int) *Preview {
	head := table.Head(limit)
	p := &Preview{
		Columns: table.Columns,
		Rows:    make([][]string, 0, len(head)),
		Total:   table.Len(),
	}
	for _, rec := range head {
		row := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			row[i] = rec.Value(col)
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}
