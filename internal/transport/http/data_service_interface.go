package http

import (
	"context"
	"io"

	"jobinsight/internal/exporter"
	"jobinsight/internal/services"
)

// DashboardServiceInterface defines the dataset operations the handlers need
type DashboardServiceInterface interface {
	Dashboard(ctx context.Context, selection string) (*services.DashboardView, error)
	Summary(ctx context.Context, selection string) (*services.Summary, error)
	Options(ctx context.Context) ([]string, error)
	Preview(ctx context.Context, limit int) (*services.Preview, error)
	ExportCSV(ctx context.Context, w io.Writer, selection string, view exporter.View) error
	ExportWorkbook(ctx context.Context, w io.Writer, selection string) error
	Reload(ctx context.Context) (services.DatasetInfo, error)
}
