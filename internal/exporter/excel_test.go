package exporter

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"jobinsight/pkg/contracts/domain"
)

func TestWorkbookExporter_Write(t *testing.T) {
	agg := sampleAggregates()
	agg.Warnings = []domain.RowIssue{
		{Row: 2, Column: domain.ColumnTokenized, Kind: domain.IssueMalformedTokens, Detail: "row 2: malformed token field"},
	}

	var buf bytes.Buffer
	err := NewWorkbookExporter(nil).Write(&buf, agg, WorkbookMeta{Source: "Team_1.csv", Columns: 6, TotalRows: 5})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Top Words", "Experience by Salary", "Top Skills", "Sentiment", "Warnings"}, f.GetSheetList())

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"metric", "value"}, summary[0])
	assert.Equal(t, []string{"Experience Level", "Entry"}, summary[1])
	assert.Equal(t, []string{"Rows in Selection", "3"}, summary[2])

	skills, err := f.GetRows("Top Skills")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"rank", "skill", "count"}, {"1", "python", "2"}, {"2", "sql", "2"}}, skills)

	salary, err := f.GetRows("Experience by Salary")
	require.NoError(t, err)
	assert.Equal(t, []string{"Entry", "40k-60k", "2"}, salary[1])

	warnings, err := f.GetRows("Warnings")
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Equal(t, "malformed_token_field", warnings[1][2])
}

func TestWorkbookExporter_WriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWorkbookExporter(nil).Write(&buf, nil, WorkbookMeta{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.NotContains(t, f.GetSheetList(), "Warnings")
	rows, err := f.GetRows("Top Words")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"rank", "word", "count"}}, rows)
}

func TestWorkbookExporter_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.xlsx")
	require.NoError(t, NewWorkbookExporter(nil).WriteFile(path, sampleAggregates(), WorkbookMeta{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 5)
}
