package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"jobinsight/internal/analytics"
	"jobinsight/internal/report"
	"jobinsight/internal/services"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the report interactively (TUI)",
	Long:  "Shows the experience level picker, then the scrollable report for the chosen level.",
	RunE:  runBrowseCmd,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	// Log output before the alt-screen starts corrupts the display.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := newService(logger)
	if err != nil {
		return err
	}

	var info services.DatasetInfo
	err = report.RunLoader(svc.DatasetPath(), func(ctx context.Context) error {
		var loadErr error
		info, loadErr = svc.Info(ctx)
		return loadErr
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return runBrowse(ctx, svc, info)
}

func runBrowse(ctx context.Context, svc *services.DashboardService, info services.DatasetInfo) error {
	levels, err := svc.Options(ctx)
	if err != nil {
		return err
	}
	counts, err := levelCounts(ctx, svc, levels, info)
	if err != nil {
		return err
	}

	current := analytics.AllLevels
	for {
		choice, ok, err := report.RunLevelPicker(levels, counts, current)
		if err != nil {
			return fmt.Errorf("picker: %w", err)
		}
		if !ok {
			return nil
		}
		current = choice

		summary, err := svc.Summary(ctx, choice)
		if err != nil {
			return err
		}

		wantQuit, err := report.RunBrowser(choice, func(width int) string {
			return report.RenderText(summary, width)
		})
		if err != nil {
			return fmt.Errorf("report view: %w", err)
		}
		if wantQuit {
			return nil
		}
	}
}

func levelCounts(ctx context.Context, svc *services.DashboardService, levels []string, info services.DatasetInfo) (map[string]int, error) {
	table, err := svc.Table(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{analytics.AllLevels: info.Rows}
	for _, level := range levels {
		if analytics.IsAll(level) {
			continue
		}
		counts[level] = analytics.Filter(table, level).Len()
	}
	return counts, nil
}
