package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"jobinsight/internal/config"
	"jobinsight/internal/dataset"
	apperrors "jobinsight/internal/errors"
	"jobinsight/internal/exporter"
	"jobinsight/internal/shared/testutil"
)

func newTestService(t *testing.T, path string) *DashboardService {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	loader := dataset.NewLoader(dataset.DefaultOptions(), logger, nil)
	cache, err := dataset.NewCache(2, loader.Load, logger, nil)
	require.NoError(t, err)

	return NewDashboardService(path, config.Default().Dataset, cache, nil, logger)
}

func TestDashboardService_Summary(t *testing.T) {
	svc := newTestService(t, testutil.WriteSampleDataset(t))
	ctx := context.Background()

	all, err := svc.Summary(ctx, "All")
	require.NoError(t, err)
	assert.Equal(t, 5, all.Dataset.Rows)
	assert.Equal(t, 6, all.Dataset.Columns)
	assert.NotContains(t, all.Dataset.ColumnNames, "Unnamed: 0")
	assert.Equal(t, 5, all.Aggregates.RowCount)
	assert.Equal(t, "data", all.Aggregates.TopWords.Items[0].Item)

	entry, err := svc.Summary(ctx, "Entry")
	require.NoError(t, err)
	assert.Equal(t, "Entry", entry.Aggregates.Selection)
	assert.Equal(t, 3, entry.Aggregates.RowCount)
	assert.Equal(t, 5, entry.Dataset.Rows)

	unknown, err := svc.Summary(ctx, "Director")
	require.NoError(t, err)
	assert.Equal(t, 0, unknown.Aggregates.RowCount)
	assert.Empty(t, unknown.Aggregates.TopSkills.Items)
}

func TestDashboardService_MissingDataset(t *testing.T) {
	svc := newTestService(t, filepath.Join(t.TempDir(), "missing.csv"))

	_, err := svc.Summary(context.Background(), "All")
	require.Error(t, err)
	assert.True(t, apperrors.IsDataLoad(err))

	assert.Error(t, svc.Ready(context.Background()))
}

func TestDashboardService_Options(t *testing.T) {
	svc := newTestService(t, testutil.WriteSampleDataset(t))

	opts, err := svc.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "Entry", "Senior"}, opts)
}

func TestDashboardService_Preview(t *testing.T) {
	svc := newTestService(t, testutil.WriteSampleDataset(t))
	ctx := context.Background()

	p, err := svc.Preview(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleHeader[1:], p.Columns)
	require.Len(t, p.Rows, 2)
	assert.Equal(t, testutil.SampleRows[0][1:], p.Rows[0])
	assert.Equal(t, 5, p.Total)

	def, err := svc.Preview(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, def.Rows, 5)

	_, err = svc.Preview(ctx, config.MaxPreviewRows+1)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestDashboardService_Dashboard(t *testing.T) {
	svc := newTestService(t, testutil.WriteSampleDataset(t))

	view, err := svc.Dashboard(context.Background(), "Senior")
	require.NoError(t, err)
	assert.Equal(t, "Senior", view.Selected)
	assert.Equal(t, []string{"All", "Entry", "Senior"}, view.Options)
	assert.Equal(t, 2, view.Aggregates.RowCount)
	assert.Len(t, view.Preview.Rows, 5)
}

func TestDashboardService_ExportCSV(t *testing.T) {
	svc := newTestService(t, testutil.WriteSampleDataset(t))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf, "Entry", exporter.ViewSkills))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"rank", "skill", "count"}, records[0])
	assert.Equal(t, []string{"1", "python", "2"}, records[1])
	assert.Equal(t, []string{"2", "sql", "2"}, records[2])
}

func TestDashboardService_ExportWorkbook(t *testing.T) {
	svc := newTestService(t, testutil.WriteSampleDataset(t))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportWorkbook(context.Background(), &buf, "All"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sentiment, err := f.GetRows("Sentiment")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "Positive", "3"}, sentiment[1])
}

func TestDashboardService_ReloadPicksUpChanges(t *testing.T) {
	path := testutil.WriteSampleDataset(t)
	svc := newTestService(t, path)
	ctx := context.Background()

	info, err := svc.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, info.Rows)

	testutil.WriteCSV(t, filepath.Dir(path), filepath.Base(path), testutil.SampleHeader, testutil.SampleRows[:2])
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	info, err = svc.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Rows)

	info, err = svc.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Rows)
}
