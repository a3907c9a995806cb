package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "jobinsight/internal/errors"
	"jobinsight/internal/infrastructure"
	"jobinsight/pkg/contracts/domain"
)

// Options controls how a dataset file is read
type Options struct {
	// PlaceholderPrefix marks columns to drop. Empty keeps every column.
	PlaceholderPrefix string
	// Sheet selects the worksheet of an .xlsx file. Empty means the first sheet.
	Sheet string
}

// DefaultOptions returns the options used by Load
func DefaultOptions() Options {
	return Options{PlaceholderPrefix: DefaultPlaceholderPrefix}
}

// Loader reads job postings files into domain tables
type Loader struct {
	opts    Options
	logger  *slog.Logger
	metrics *infrastructure.DashboardMetrics
	tracer  trace.Tracer
}

// NewLoader creates a loader. metrics may be nil.
func NewLoader(opts Options, logger *slog.Logger, metrics *infrastructure.DashboardMetrics) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		opts:    opts,
		logger:  infrastructure.WithComponent(logger, "dataset_loader"),
		metrics: metrics,
		tracer:  otel.Tracer(infrastructure.InstrumentationName + "/dataset"),
	}
}

// Load reads path with the default options
func Load(ctx context.Context, path string) (*domain.JobTable, error) {
	return NewLoader(DefaultOptions(), nil, nil).Load(ctx, path)
}

// Load reads a .csv or .xlsx file. Any failure to read the file or a missing
// required column is returned as a DATA_LOAD error. Malformed token cells are
// recorded on the table as row issues and do not fail the load.
func (l *Loader) Load(ctx context.Context, path string) (*domain.JobTable, error) {
	ctx, span := l.tracer.Start(ctx, "dataset.load", trace.WithAttributes(attribute.String("dataset.path", path)))
	defer span.End()

	start := time.Now()
	table, err := l.load(ctx, path)
	duration := time.Since(start)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		l.metrics.RecordDatasetLoad(ctx, 0, 0, duration, err)
		l.logger.ErrorContext(ctx, "dataset load failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	malformed := countIssues(table.Issues, domain.IssueMalformedTokens)
	l.metrics.RecordDatasetLoad(ctx, table.Len(), malformed, duration, nil)
	span.SetAttributes(
		attribute.Int("dataset.rows", table.Len()),
		attribute.Int("dataset.issues", len(table.Issues)),
	)

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", path),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)),
		slog.Int("malformed_rows", malformed),
		slog.Int("issues", len(table.Issues)),
		slog.Duration("duration", duration))

	for _, issue := range table.Issues {
		if issue.Kind == domain.IssueMalformedTokens {
			l.logger.WarnContext(ctx, "malformed token field",
				slog.Int("row", issue.Row),
				slog.String("detail", issue.Detail))
		}
	}

	return table, nil
}

func (l *Loader) load(ctx context.Context, path string) (*domain.JobTable, error) {
	sig, err := Stat(path)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = l.readWorkbook(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, apperrors.NewDataLoadError(path, "failed to read dataset", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return buildTable(ctx, path, rows, l.opts.PlaceholderPrefix, sig)
}

// Stat returns the on-disk signature of path
func Stat(path string) (domain.SourceSignature, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.SourceSignature{}, apperrors.NewDataLoadError(path, "dataset file is not accessible", err)
	}
	if info.IsDir() {
		return domain.SourceSignature{}, apperrors.NewDataLoadError(path, "dataset path is a directory", nil)
	}
	return domain.SourceSignature{Path: path, ModTime: info.ModTime(), Size: info.Size()}, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func (l *Loader) readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := l.opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	// GetRows drops trailing empty cells; restore them so a blank final
	// column is not mistaken for a short row.
	if len(rows) > 0 {
		width := len(rows[0])
		for i, row := range rows {
			for len(row) < width {
				row = append(row, "")
			}
			rows[i] = row
		}
	}
	return rows, nil
}

// buildTable turns raw rows (header first) into a JobTable
func buildTable(ctx context.Context, path string, rows [][]string, prefix string, sig domain.SourceSignature) (*domain.JobTable, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewDataLoadError(path, "dataset is empty", nil)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	columns, positions := keptColumns(header, prefix)

	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; !dup {
			index[name] = positions[i]
		}
	}

	var missing []string
	for _, required := range domain.RequiredColumns {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewDataLoadError(path,
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("missing_columns", missing)
	}

	table := &domain.JobTable{
		Columns: columns,
		Records: make([]domain.JobRecord, 0, len(rows)-1),
		Source:  sig,
	}

	for i, row := range rows[1:] {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if blankRow(row) {
			continue
		}

		rowNum := i + 1
		if len(row) < len(header) {
			table.Issues = append(table.Issues, domain.RowIssue{
				Row:    rowNum,
				Kind:   domain.IssueShortRow,
				Detail: fmt.Sprintf("row has %d of %d cells", len(row), len(header)),
			})
		}

		cell := func(pos int) string {
			if pos < len(row) {
				return row[pos]
			}
			return ""
		}

		rec := domain.JobRecord{
			Row:             rowNum,
			JobDescription:  cell(index[domain.ColumnJobDescription]),
			RawTokens:       cell(index[domain.ColumnTokenized]),
			SkillsRequired:  cell(index[domain.ColumnSkillsRequired]),
			SalaryRange:     strings.TrimSpace(cell(index[domain.ColumnSalaryRange])),
			ExperienceLevel: strings.TrimSpace(cell(index[domain.ColumnExperienceLevel])),
			SentimentLabel:  strings.TrimSpace(cell(index[domain.ColumnSentimentLabel])),
		}

		tokens, err := ParseTokenField(rec.RawTokens)
		if err != nil {
			malformed := apperrors.NewMalformedTokenFieldError(rowNum, rec.RawTokens, err)
			table.Issues = append(table.Issues, domain.RowIssue{
				Row:    rowNum,
				Column: domain.ColumnTokenized,
				Kind:   domain.IssueMalformedTokens,
				Detail: malformed.Error(),
			})
		} else {
			rec.Tokens = tokens
		}

		if strings.TrimSpace(rec.SkillsRequired) == "" {
			table.Issues = append(table.Issues, domain.RowIssue{
				Row:    rowNum,
				Column: domain.ColumnSkillsRequired,
				Kind:   domain.IssueEmptySkills,
				Detail: "no skills listed",
			})
		}

		for j, name := range columns {
			if isRequired(name) {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[name] = cell(positions[j])
		}

		table.Records = append(table.Records, rec)
	}

	return table, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isRequired(column string) bool {
	for _, c := range domain.RequiredColumns {
		if c == column {
			return true
		}
	}
	return false
}

func countIssues(issues []domain.RowIssue, kind domain.IssueKind) int {
	n := 0
	for _, issue := range issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}
