package domain

import (
	"time"
)

// Column headers expected in the job postings dataset
const (
	ColumnJobDescription  = "Job_Description"
	ColumnTokenized       = "Tokenized_Job_Description"
	ColumnSkillsRequired  = "Skills_Required"
	ColumnSalaryRange     = "Salary_Range"
	ColumnExperienceLevel = "Experience_Level"
	ColumnSentimentLabel  = "Sentiment_Label"
)

// RequiredColumns lists the headers a dataset must carry to be loadable
var RequiredColumns = []string{
	ColumnJobDescription,
	ColumnTokenized,
	ColumnSkillsRequired,
	ColumnSalaryRange,
	ColumnExperienceLevel,
	ColumnSentimentLabel,
}

// JobRecord represents one job posting row of the dataset
type JobRecord struct {
	Row             int               `json:"row"`
	JobDescription  string            `json:"job_description"`
	Tokens          []string          `json:"tokens"`
	RawTokens       string            `json:"raw_tokens"`
	SkillsRequired  string            `json:"skills_required"`
	SalaryRange     string            `json:"salary_range"`
	ExperienceLevel string            `json:"experience_level"`
	SentimentLabel  string            `json:"sentiment_label"`
	Extra           map[string]string `json:"extra,omitempty"`
}

// Value returns the cell value of the record for a column header.
func (r JobRecord) Value(column string) string {
	switch column {
	case ColumnJobDescription:
		return r.JobDescription
	case ColumnTokenized:
		return r.RawTokens
	case ColumnSkillsRequired:
		return r.SkillsRequired
	case ColumnSalaryRange:
		return r.SalaryRange
	case ColumnExperienceLevel:
		return r.ExperienceLevel
	case ColumnSentimentLabel:
		return r.SentimentLabel
	}
	return r.Extra[column]
}

// IssueKind classifies a per-row ingestion problem
type IssueKind string

const (
	IssueMalformedTokens IssueKind = "malformed_token_field"
	IssueEmptySkills     IssueKind = "empty_skills"
	IssueShortRow        IssueKind = "short_row"
)

// RowIssue describes a problem found while ingesting a single row.
// Rows with issues are kept; the affected field is left empty.
type RowIssue struct {
	Row    int       `json:"row"`
	Column string    `json:"column"`
	Kind   IssueKind `json:"kind"`
	Detail string    `json:"detail"`
}

// SourceSignature identifies the version of a dataset file on disk
type SourceSignature struct {
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
	Size    int64     `json:"size"`
}

// Matches reports whether two signatures describe the same file version.
func (s SourceSignature) Matches(other SourceSignature) bool {
	return s.Path == other.Path && s.ModTime.Equal(other.ModTime) && s.Size == other.Size
}

// JobTable is the in-memory dataset. Records keep file order.
type JobTable struct {
	Columns []string        `json:"columns"`
	Records []JobRecord     `json:"records"`
	Issues  []RowIssue      `json:"issues,omitempty"`
	Source  SourceSignature `json:"source"`
}

// Len returns the number of records
func (t *JobTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Head returns up to n leading records.
func (t *JobTable) Head(n int) []JobRecord {
	if t == nil || n <= 0 {
		return nil
	}
	if n > len(t.Records) {
		n = len(t.Records)
	}
	return t.Records[:n]
}
