package analytics

import (
	"sort"
	"strings"

	"jobinsight/pkg/contracts/domain"
)

// TopN counts items and returns the n most frequent, highest count first.
// Equal counts keep the order in which items first appeared. n <= 0 returns
// every item. Total is the number of items counted, before truncation.
func TopN(items []string, n int) domain.FrequencyTable {
	counts := make(map[string]int)
	var order []string
	for _, item := range items {
		if _, seen := counts[item]; !seen {
			order = append(order, item)
		}
		counts[item]++
	}

	ranked := make([]domain.ItemCount, len(order))
	for i, item := range order {
		ranked[i] = domain.ItemCount{Item: item, Count: counts[item]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	return domain.FrequencyTable{Items: ranked, Total: len(items)}
}

// Tokens flattens the parsed token lists of every record
func Tokens(table *domain.JobTable) []string {
	if table == nil {
		return nil
	}
	var tokens []string
	for _, rec := range table.Records {
		tokens = append(tokens, rec.Tokens...)
	}
	return tokens
}

// TokenFrequency ranks the description tokens of table. Case is preserved.
func TokenFrequency(table *domain.JobTable, n int) domain.FrequencyTable {
	return TopN(Tokens(table), n)
}

// SplitSkills splits a skills cell on commas, trims and lowercases each
// entry and drops empty entries
func SplitSkills(cell string) []string {
	var skills []string
	for _, part := range strings.Split(cell, ",") {
		skill := strings.ToLower(strings.TrimSpace(part))
		if skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

// SkillFrequency ranks the normalized skills of table
func SkillFrequency(table *domain.JobTable, n int) domain.FrequencyTable {
	var skills []string
	if table != nil {
		for _, rec := range table.Records {
			skills = append(skills, SplitSkills(rec.SkillsRequired)...)
		}
	}
	return TopN(skills, n)
}

// SentimentCounts counts every sentiment label, most frequent first.
// Records without a label are not counted.
func SentimentCounts(table *domain.JobTable) domain.FrequencyTable {
	var labels []string
	if table != nil {
		for _, rec := range table.Records {
			if rec.SentimentLabel != "" {
				labels = append(labels, rec.SentimentLabel)
			}
		}
	}
	return TopN(labels, 0)
}

// ExperienceSalary counts records per (experience level, salary range) pair.
// Cells, levels and ranges are in order of first appearance. Records missing
// either value are not counted.
func ExperienceSalary(table *domain.JobTable) domain.CrossTab {
	ct := domain.CrossTab{
		Cells:  []domain.CrossTabCell{},
		Levels: []string{},
		Ranges: []string{},
	}
	if table == nil {
		return ct
	}

	type key struct{ level, salary string }
	cellIndex := make(map[key]int)
	seenLevel := make(map[string]bool)
	seenRange := make(map[string]bool)

	for _, rec := range table.Records {
		if rec.ExperienceLevel == "" || rec.SalaryRange == "" {
			continue
		}
		k := key{rec.ExperienceLevel, rec.SalaryRange}
		if i, ok := cellIndex[k]; ok {
			ct.Cells[i].Count++
		} else {
			cellIndex[k] = len(ct.Cells)
			ct.Cells = append(ct.Cells, domain.CrossTabCell{
				ExperienceLevel: rec.ExperienceLevel,
				SalaryRange:     rec.SalaryRange,
				Count:           1,
			})
		}
		if !seenLevel[rec.ExperienceLevel] {
			seenLevel[rec.ExperienceLevel] = true
			ct.Levels = append(ct.Levels, rec.ExperienceLevel)
		}
		if !seenRange[rec.SalaryRange] {
			seenRange[rec.SalaryRange] = true
			ct.Ranges = append(ct.Ranges, rec.SalaryRange)
		}
	}
	return ct
}
