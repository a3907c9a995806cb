package domain

// ItemCount is a single entry of a frequency table
type ItemCount struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// FrequencyTable holds ranked item counts.
// Total is the number of counted occurrences before any top-N truncation.
type FrequencyTable struct {
	Items []ItemCount `json:"items"`
	Total int         `json:"total"`
}

// Len returns the number of ranked items
func (f FrequencyTable) Len() int {
	return len(f.Items)
}

// Labels returns the item names in rank order
func (f FrequencyTable) Labels() []string {
	labels := make([]string, len(f.Items))
	for i, ic := range f.Items {
		labels[i] = ic.Item
	}
	return labels
}

// Counts returns the counts in rank order
func (f FrequencyTable) Counts() []int {
	counts := make([]int, len(f.Items))
	for i, ic := range f.Items {
		counts[i] = ic.Count
	}
	return counts
}

// CrossTabCell counts rows for one (experience level, salary range) pair
type CrossTabCell struct {
	ExperienceLevel string `json:"experience_level"`
	SalaryRange     string `json:"salary_range"`
	Count           int    `json:"count"`
}

// CrossTab is the experience by salary row count table.
// Levels and Ranges are in first-seen order.
type CrossTab struct {
	Cells  []CrossTabCell `json:"cells"`
	Levels []string       `json:"levels"`
	Ranges []string       `json:"ranges"`
}

// Count returns the row count for a pair, zero when absent.
func (c CrossTab) Count(level, salary string) int {
	for _, cell := range c.Cells {
		if cell.ExperienceLevel == level && cell.SalaryRange == salary {
			return cell.Count
		}
	}
	return 0
}

// Aggregates bundles every summary computed over a filtered table
type Aggregates struct {
	Selection        string         `json:"selection"`
	RowCount         int            `json:"row_count"`
	TopWords         FrequencyTable `json:"top_words"`
	TopSkills        FrequencyTable `json:"top_skills"`
	ExperienceSalary CrossTab       `json:"experience_salary"`
	Sentiment        FrequencyTable `json:"sentiment"`
	WordCloud        FrequencyTable `json:"-"`
	Warnings         []RowIssue     `json:"warnings,omitempty"`
}
