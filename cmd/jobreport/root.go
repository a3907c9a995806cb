package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jobinsight/internal/analytics"
	"jobinsight/internal/config"
	"jobinsight/internal/dataset"
	apperrors "jobinsight/internal/errors"
	"jobinsight/internal/exporter"
	"jobinsight/internal/report"
	"jobinsight/internal/services"
	"jobinsight/internal/validation"
)

var (
	configFile string
	dataPath   string
	experience string
	outPath    string
	format     string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "jobreport",
	Short: "Summarise a job postings dataset",
	Long: "jobreport loads a job postings CSV or workbook, filters it by experience level " +
		"and prints the top words, skills, salary distribution and sentiment counts. " +
		"With --out the aggregates are also written as CSV files or an .xlsx workbook.",
	SilenceUsage: true,
	RunE:         runReport,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "dataset file (default: JOBINSIGHT_DATASET_PATH or data/Team_1.csv)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: config.yaml lookup)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&experience, "experience", "e", analytics.AllLevels, "experience level to report on")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "write aggregates to a directory of CSV files or to an .xlsx file")
	rootCmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelWarn
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// newService builds the dashboard service for the resolved dataset path
func newService(logger *slog.Logger) (*services.DashboardService, error) {
	load := config.Load
	if configFile != "" {
		load = func() (*config.Config, error) { return config.LoadFile(configFile) }
	}
	cfg, err := load()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if dataPath != "" {
		cfg.Dataset.Path = dataPath
	}

	loader := dataset.NewLoader(dataset.Options{
		PlaceholderPrefix: cfg.Dataset.PlaceholderPrefix,
		Sheet:             cfg.Dataset.Sheet,
	}, logger, nil)

	cache, err := dataset.NewCache(1, loader.Load, logger, nil)
	if err != nil {
		return nil, err
	}
	return services.NewDashboardService(cfg.DatasetPath(), cfg.Dataset, cache, nil, logger), nil
}

func runReport(cmd *cobra.Command, args []string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format %q: use text or json", format)
	}

	logger := setupLogger(debug)
	svc, err := newService(logger)
	if err != nil {
		return err
	}

	paths := validation.NewPathValidator(logger)
	if err := paths.ValidateDataset(svc.DatasetPath()); err != nil {
		return err
	}
	if outPath != "" {
		if err := paths.ValidateExportTarget(outPath); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	summary, err := svc.Summary(ctx, experience)
	if apperrors.IsDataLoad(err) {
		return fmt.Errorf("dataset %s could not be analysed: %w", svc.DatasetPath(), err)
	}
	if err != nil {
		return err
	}

	if outPath != "" {
		written, err := writeOutputs(outPath, summary, logger)
		if err != nil {
			return err
		}
		for _, p := range written {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", p)
		}
	}

	return printSummary(cmd.OutOrStdout(), summary, format)
}

func printSummary(w io.Writer, summary *services.Summary, format string) error {
	if format == "json" {
		return report.WriteJSON(w, summary)
	}
	_, err := io.WriteString(w, report.RenderText(summary, 0))
	return err
}

// writeOutputs writes a workbook when out ends in .xlsx, otherwise one CSV
// per view into the out directory. It returns the written paths.
func writeOutputs(out string, summary *services.Summary, logger *slog.Logger) ([]string, error) {
	agg := summary.Aggregates

	if strings.EqualFold(filepath.Ext(out), ".xlsx") {
		meta := exporter.WorkbookMeta{
			Source:     summary.Dataset.Path,
			Columns:    summary.Dataset.Columns,
			TotalRows:  summary.Dataset.Rows,
			ReportedBy: config.AppFooter,
		}
		if err := exporter.NewWorkbookExporter(logger).WriteFile(out, agg, meta); err != nil {
			return nil, err
		}
		return []string{out}, nil
	}

	writer := exporter.NewCSVWriter(nil)
	written := make([]string, 0, len(exporter.Views))
	for _, view := range exporter.Views {
		headers, rows, err := exporter.ViewTable(agg, view)
		if err != nil {
			return written, err
		}
		path := filepath.Join(out, view.FileName(agg.Selection, "csv"))
		if err := writer.WriteFile(path, exporter.WriteOptions{Headers: headers, Records: rows, BOMPrefix: true}); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
