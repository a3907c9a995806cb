package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	"jobinsight/internal/config"
	"jobinsight/internal/infrastructure"
	"jobinsight/pkg/contracts/domain"
)

const (
	summarySheet  = "Summary"
	warningsSheet = "Warnings"
	defaultSheet  = "Sheet1"
)

// WorkbookMeta describes where the aggregates came from
type WorkbookMeta struct {
	Source     string
	Columns    int
	TotalRows  int
	ReportedBy string
}

// WorkbookExporter writes every aggregate view of a selection to one workbook
type WorkbookExporter struct {
	logger *slog.Logger
}

// NewWorkbookExporter creates a workbook exporter
func NewWorkbookExporter(logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{logger: infrastructure.WithComponent(logger, "workbook_exporter")}
}

// Write builds the workbook and writes it to w. The first sheet summarises the
// selection, each view follows on its own sheet, and row issues are listed on
// a final sheet when there are any.
func (e *WorkbookExporter) Write(w io.Writer, agg *domain.Aggregates, meta WorkbookMeta) error {
	if agg == nil {
		agg = &domain.Aggregates{}
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName(defaultSheet, summarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeSummary(f, agg, meta, bold); err != nil {
		return err
	}

	for _, view := range Views {
		headers, rows, err := viewCells(agg, view)
		if err != nil {
			return err
		}
		if err := writeSheet(f, view.SheetName(), headers, rows, bold); err != nil {
			return err
		}
	}

	if len(agg.Warnings) > 0 {
		rows := make([][]interface{}, 0, len(agg.Warnings))
		for _, issue := range agg.Warnings {
			rows = append(rows, []interface{}{issue.Row, issue.Column, string(issue.Kind), issue.Detail})
		}
		if err := writeSheet(f, warningsSheet, []string{"row", "column", "kind", "detail"}, rows, bold); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Debug("workbook written",
		slog.String("selection", agg.Selection),
		slog.Int("sheets", len(f.GetSheetList())))
	return nil
}

// WriteFile writes the workbook to path, creating parent directories
func (e *WorkbookExporter) WriteFile(path string, agg *domain.Aggregates, meta WorkbookMeta) error {
	if err := config.EnsureParentDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create workbook file: %w", err)
	}
	if err := e.Write(file, agg, meta); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeSummary(f *excelize.File, agg *domain.Aggregates, meta WorkbookMeta, headerStyle int) error {
	rows := [][]interface{}{
		{"Experience Level", agg.Selection},
		{"Rows in Selection", agg.RowCount},
		{"Total Rows", meta.TotalRows},
		{"Total Columns", meta.Columns},
		{"Words Counted", agg.TopWords.Total},
		{"Skills Counted", agg.TopSkills.Total},
		{"Row Warnings", len(agg.Warnings)},
		{"Source", meta.Source},
	}
	if meta.ReportedBy != "" {
		rows = append(rows, []interface{}{"Created By", meta.ReportedBy})
	}
	return writeSheet(f, summarySheet, []string{"metric", "value"}, rows, headerStyle)
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 22)
}
