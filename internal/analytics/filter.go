package analytics

import (
	"strings"

	"jobinsight/pkg/contracts/domain"
)

// AllLevels is the selection that disables experience filtering
const AllLevels = "All"

// Filter returns the records whose experience level equals selection, in
// their original order. AllLevels (or an empty selection) returns table
// itself. An unknown level yields an empty table.
func Filter(table *domain.JobTable, selection string) *domain.JobTable {
	if table == nil {
		return &domain.JobTable{}
	}
	selection = strings.TrimSpace(selection)
	if IsAll(selection) {
		return table
	}

	out := &domain.JobTable{
		Columns: table.Columns,
		Source:  table.Source,
	}

	kept := make(map[int]bool)
	for _, rec := range table.Records {
		if rec.ExperienceLevel == selection {
			out.Records = append(out.Records, rec)
			kept[rec.Row] = true
		}
	}

	for _, issue := range table.Issues {
		if kept[issue.Row] {
			out.Issues = append(out.Issues, issue)
		}
	}

	return out
}

// IsAll reports whether selection means "no filter"
func IsAll(selection string) bool {
	s := strings.TrimSpace(selection)
	return s == "" || s == AllLevels
}

// ExperienceOptions returns AllLevels followed by each distinct non-empty
// experience level in order of first appearance
func ExperienceOptions(table *domain.JobTable) []string {
	options := []string{AllLevels}
	if table == nil {
		return options
	}

	seen := make(map[string]bool)
	for _, rec := range table.Records {
		level := rec.ExperienceLevel
		if level == "" || seen[level] {
			continue
		}
		seen[level] = true
		options = append(options, level)
	}
	return options
}

// HasLevel reports whether selection is AllLevels or a level present in table
func HasLevel(table *domain.JobTable, selection string) bool {
	selection = strings.TrimSpace(selection)
	if IsAll(selection) {
		return true
	}
	for _, opt := range ExperienceOptions(table)[1:] {
		if opt == selection {
			return true
		}
	}
	return false
}
