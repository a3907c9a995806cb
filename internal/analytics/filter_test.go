package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobinsight/internal/shared/testutil"
	"jobinsight/pkg/contracts/domain"
)

func TestFilter(t *testing.T) {
	table := testutil.SampleTable()

	tests := []struct {
		name      string
		selection string
		wantRows  []int
	}{
		{name: "entry", selection: "Entry", wantRows: []int{1, 2, 3}},
		{name: "senior", selection: "Senior", wantRows: []int{4, 5}},
		{name: "unknown level", selection: "Director", wantRows: nil},
		{name: "case sensitive", selection: "entry", wantRows: nil},
		{name: "surrounding whitespace", selection: " Entry ", wantRows: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(table, tt.selection)
			require.NotNil(t, got)

			var rows []int
			for _, rec := range got.Records {
				assert.Equal(t, strings.TrimSpace(tt.selection), rec.ExperienceLevel)
				rows = append(rows, rec.Row)
			}
			assert.Equal(t, tt.wantRows, rows)
			assert.Equal(t, table.Columns, got.Columns)
		})
	}

	assert.Len(t, table.Records, 5, "source table must not change")
}

func TestFilterAllReturnsSameTable(t *testing.T) {
	table := testutil.SampleTable()

	assert.Same(t, table, Filter(table, AllLevels))
	assert.Same(t, table, Filter(table, ""))
	assert.Same(t, table, Filter(table, "  "))
}

func TestFilterKeepsIssuesOfKeptRows(t *testing.T) {
	table := testutil.SampleTable()
	table.Issues = []domain.RowIssue{
		{Row: 2, Kind: domain.IssueMalformedTokens},
		{Row: 4, Kind: domain.IssueEmptySkills},
	}

	entry := Filter(table, "Entry")
	require.Len(t, entry.Issues, 1)
	assert.Equal(t, 2, entry.Issues[0].Row)

	senior := Filter(table, "Senior")
	require.Len(t, senior.Issues, 1)
	assert.Equal(t, 4, senior.Issues[0].Row)
}

func TestFilterNilTable(t *testing.T) {
	got := Filter(nil, "Entry")
	require.NotNil(t, got)
	assert.Equal(t, 0, got.Len())
}

func TestExperienceOptions(t *testing.T) {
	table := testutil.SampleTable()
	table.Records = append(table.Records, domain.JobRecord{Row: 6, ExperienceLevel: ""})

	assert.Equal(t, []string{"All", "Entry", "Senior"}, ExperienceOptions(table))
	assert.Equal(t, []string{"All"}, ExperienceOptions(&domain.JobTable{}))
	assert.Equal(t, []string{"All"}, ExperienceOptions(nil))
}

func TestHasLevel(t *testing.T) {
	table := testutil.SampleTable()

	assert.True(t, HasLevel(table, "All"))
	assert.True(t, HasLevel(table, "Senior"))
	assert.True(t, HasLevel(table, "Senior "))
	assert.False(t, HasLevel(table, "Director"))
}
