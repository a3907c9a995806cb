package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"jobinsight/pkg/contracts/domain"
)

// SampleHeader is the header row of the job postings fixture, including the
// leftover index column a spreadsheet export leaves behind.
var SampleHeader = []string{
	"Unnamed: 0",
	"Job_Description",
	"Tokenized_Job_Description",
	"Skills_Required",
	"Salary_Range",
	"Experience_Level",
	"Sentiment_Label",
}

// SampleRows is a small job postings dataset with known aggregates:
// three Entry rows and two Senior rows.
var SampleRows = [][]string{
	{"0", "Junior data analyst", "['data', 'analyst', 'python']", "Python, SQL, python", "40k-60k", "Entry", "Positive"},
	{"1", "Entry level developer", "['developer', 'python']", "Java", "40k-60k", "Entry", "Neutral"},
	{"2", "Graduate engineer", "['engineer', 'data']", "SQL, Excel", "60k-80k", "Entry", "Positive"},
	{"3", "Lead data scientist", "['data', 'scientist', 'lead']", "Python, Spark, SQL", "100k+", "Senior", "Negative"},
	{"4", "Principal architect", "['architect', 'cloud']", "AWS, Kubernetes", "100k+", "Senior", "Positive"},
}

// WriteCSV writes header and rows to name inside dir and returns the path.
func WriteCSV(t *testing.T, dir, name string, header []string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write(header))
	require.NoError(t, w.WriteAll(rows))
	return path
}

// WriteSampleDataset writes the sample job postings CSV to a temp directory.
func WriteSampleDataset(t *testing.T) string {
	t.Helper()
	return WriteCSV(t, t.TempDir(), "Team_1.csv", SampleHeader, SampleRows)
}

// sampleTokens holds the parsed token lists of SampleRows
var sampleTokens = [][]string{
	{"data", "analyst", "python"},
	{"developer", "python"},
	{"engineer", "data"},
	{"data", "scientist", "lead"},
	{"architect", "cloud"},
}

// SampleTable returns SampleRows as an in-memory table, as the loader would
// build it, without touching the filesystem.
func SampleTable() *domain.JobTable {
	table := &domain.JobTable{
		Columns: SampleHeader[1:],
		Source:  domain.SourceSignature{Path: "memory://sample"},
	}
	for i, row := range SampleRows {
		table.Records = append(table.Records, domain.JobRecord{
			Row:             i + 1,
			JobDescription:  row[1],
			RawTokens:       row[2],
			Tokens:          append([]string(nil), sampleTokens[i]...),
			SkillsRequired:  row[3],
			SalaryRange:     row[4],
			ExperienceLevel: row[5],
			SentimentLabel:  row[6],
		})
	}
	return table
}
