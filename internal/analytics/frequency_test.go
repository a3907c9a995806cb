package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobinsight/internal/shared/testutil"
	"jobinsight/pkg/contracts/domain"
)

func TestTopN(t *testing.T) {
	tests := []struct {
		name      string
		items     []string
		n         int
		want      []domain.ItemCount
		wantTotal int
	}{
		{
			name:      "ranked by count",
			items:     []string{"a", "b", "b", "c", "c", "c"},
			n:         10,
			want:      []domain.ItemCount{{Item: "c", Count: 3}, {Item: "b", Count: 2}, {Item: "a", Count: 1}},
			wantTotal: 6,
		},
		{
			name:      "ties keep first appearance",
			items:     []string{"x", "y", "z", "y", "x", "z"},
			n:         3,
			want:      []domain.ItemCount{{Item: "x", Count: 2}, {Item: "y", Count: 2}, {Item: "z", Count: 2}},
			wantTotal: 6,
		},
		{
			name:      "truncated to n",
			items:     []string{"a", "b", "b", "c", "c", "c"},
			n:         2,
			want:      []domain.ItemCount{{Item: "c", Count: 3}, {Item: "b", Count: 2}},
			wantTotal: 6,
		},
		{
			name:      "non-positive n keeps everything",
			items:     []string{"a", "b"},
			n:         0,
			want:      []domain.ItemCount{{Item: "a", Count: 1}, {Item: "b", Count: 1}},
			wantTotal: 2,
		},
		{
			name:      "empty input",
			items:     nil,
			n:         5,
			want:      []domain.ItemCount{},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopN(tt.items, tt.n)
			assert.Equal(t, tt.want, got.Items)
			assert.Equal(t, tt.wantTotal, got.Total)
		})
	}
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"python", "sql", "python"}, SplitSkills("Python, SQL, python"))
	assert.Equal(t, []string{"go"}, SplitSkills(" , Go ,, "))
	assert.Nil(t, SplitSkills(""))
}

func TestSkillFrequencyNormalizes(t *testing.T) {
	table := &domain.JobTable{Records: []domain.JobRecord{
		{Row: 1, SkillsRequired: "Python, SQL, python"},
	}}

	got := SkillFrequency(table, 10)
	assert.Equal(t, []domain.ItemCount{{Item: "python", Count: 2}, {Item: "sql", Count: 1}}, got.Items)
	assert.Equal(t, 3, got.Total)
}

func TestSkillFrequencySample(t *testing.T) {
	got := SkillFrequency(testutil.SampleTable(), 3)

	assert.Equal(t, []domain.ItemCount{
		{Item: "python", Count: 3},
		{Item: "sql", Count: 3},
		{Item: "java", Count: 1},
	}, got.Items)
	assert.Equal(t, 11, got.Total)
}

func TestTokenFrequencyPreservesCase(t *testing.T) {
	table := &domain.JobTable{Records: []domain.JobRecord{
		{Row: 1, Tokens: []string{"Python", "python", "Python"}},
	}}

	got := TokenFrequency(table, 20)
	assert.Equal(t, []domain.ItemCount{{Item: "Python", Count: 2}, {Item: "python", Count: 1}}, got.Items)
}

func TestTokenFrequencyConservesTotal(t *testing.T) {
	table := testutil.SampleTable()

	full := TokenFrequency(table, 0)
	sum := 0
	for _, ic := range full.Items {
		sum += ic.Count
	}
	assert.Equal(t, full.Total, sum)
	assert.Equal(t, 12, full.Total)
	assert.Equal(t, domain.ItemCount{Item: "data", Count: 3}, full.Items[0])
	assert.Equal(t, domain.ItemCount{Item: "python", Count: 2}, full.Items[1])
}

func TestExperienceSalary(t *testing.T) {
	ct := ExperienceSalary(testutil.SampleTable())

	assert.Equal(t, []string{"Entry", "Senior"}, ct.Levels)
	assert.Equal(t, []string{"40k-60k", "60k-80k", "100k+"}, ct.Ranges)
	assert.Equal(t, []domain.CrossTabCell{
		{ExperienceLevel: "Entry", SalaryRange: "40k-60k", Count: 2},
		{ExperienceLevel: "Entry", SalaryRange: "60k-80k", Count: 1},
		{ExperienceLevel: "Senior", SalaryRange: "100k+", Count: 2},
	}, ct.Cells)
	assert.Equal(t, 0, ct.Count("Senior", "40k-60k"))

	total := 0
	for _, cell := range ct.Cells {
		total += cell.Count
	}
	assert.Equal(t, 5, total)
}

func TestExperienceSalarySkipsMissingValues(t *testing.T) {
	table := &domain.JobTable{Records: []domain.JobRecord{
		{Row: 1, ExperienceLevel: "Mid", SalaryRange: ""},
		{Row: 2, ExperienceLevel: "", SalaryRange: "50k"},
		{Row: 3, ExperienceLevel: "Mid", SalaryRange: "50k"},
	}}

	ct := ExperienceSalary(table)
	assert.Equal(t, []domain.CrossTabCell{{ExperienceLevel: "Mid", SalaryRange: "50k", Count: 1}}, ct.Cells)
}

func TestSentimentCounts(t *testing.T) {
	got := SentimentCounts(testutil.SampleTable())

	assert.Equal(t, []domain.ItemCount{
		{Item: "Positive", Count: 3},
		{Item: "Neutral", Count: 1},
		{Item: "Negative", Count: 1},
	}, got.Items)
	assert.Equal(t, 5, got.Total)
}

func TestEmptyTableAggregates(t *testing.T) {
	empty := &domain.JobTable{}

	assert.Empty(t, TokenFrequency(empty, 20).Items)
	assert.Empty(t, SkillFrequency(empty, 10).Items)
	assert.Empty(t, SentimentCounts(empty).Items)
	assert.Empty(t, ExperienceSalary(empty).Cells)
	assert.Empty(t, ExperienceSalary(nil).Cells)
}

func TestExperienceSalaryEmptyEncodesAsArrays(t *testing.T) {
	for name, table := range map[string]*domain.JobTable{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(ExperienceSalary(table))
			require.NoError(t, err)
			assert.JSONEq(t, `{"cells":[],"levels":[],"ranges":[]}`, string(data))
		})
	}
}
