package exporter

import (
	"fmt"
	"strings"

	apperrors "jobinsight/internal/errors"
	"jobinsight/pkg/contracts/domain"
)

// View names one exportable aggregate
type View string

// Exportable views
const (
	ViewWords     View = "words"
	ViewSkills    View = "skills"
	ViewSalary    View = "salary"
	ViewSentiment View = "sentiment"
)

// Views lists every view in dashboard order
var Views = []View{ViewWords, ViewSalary, ViewSkills, ViewSentiment}

// ParseView validates a view name. Matching is case-insensitive.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Views {
		if v == known {
			return v, nil
		}
	}
	return "", apperrors.NewAppValidationError(
		fmt.Sprintf("unknown export view %q", s)).
		WithContext("field", "view")
}

// SheetName returns the worksheet title of a view
func (v View) SheetName() string {
	switch v {
	case ViewWords:
		return "Top Words"
	case ViewSkills:
		return "Top Skills"
	case ViewSalary:
		return "Experience by Salary"
	case ViewSentiment:
		return "Sentiment"
	default:
		return string(v)
	}
}

// FileName returns the download name of a view for a selection
func (v View) FileName(selection, ext string) string {
	return fmt.Sprintf("job_market_%s_%s.%s", v, slug(selection), ext)
}

// WorkbookFileName returns the download name of the full workbook for a selection
func WorkbookFileName(selection string) string {
	return fmt.Sprintf("job_market_%s.xlsx", slug(selection))
}

// ViewTable flattens one view of agg into a header and string rows
func ViewTable(agg *domain.Aggregates, view View) ([]string, [][]string, error) {
	headers, cells, err := viewCells(agg, view)
	if err != nil {
		return nil, nil, err
	}
	rows := make([][]string, len(cells))
	for i, row := range cells {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			rows[i][j] = fmt.Sprint(v)
		}
	}
	return headers, rows, nil
}

// viewCells returns the rows of a view with counts and ranks kept as ints
func viewCells(agg *domain.Aggregates, view View) ([]string, [][]interface{}, error) {
	if agg == nil {
		agg = &domain.Aggregates{}
	}

	switch view {
	case ViewWords:
		return frequencyHeaders("word"), frequencyRows(agg.TopWords), nil
	case ViewSkills:
		return frequencyHeaders("skill"), frequencyRows(agg.TopSkills), nil
	case ViewSentiment:
		return frequencyHeaders("sentiment"), frequencyRows(agg.Sentiment), nil
	case ViewSalary:
		headers := []string{"experience_level", "salary_range", "count"}
		rows := make([][]interface{}, 0, len(agg.ExperienceSalary.Cells))
		for _, cell := range agg.ExperienceSalary.Cells {
			rows = append(rows, []interface{}{cell.ExperienceLevel, cell.SalaryRange, cell.Count})
		}
		return headers, rows, nil
	default:
		return nil, nil, apperrors.NewAppValidationError(
			fmt.Sprintf("unknown export view %q", view))
	}
}

func frequencyHeaders(label string) []string {
	return []string{"rank", label, "count"}
}

func frequencyRows(ft domain.FrequencyTable) [][]interface{} {
	rows := make([][]interface{}, 0, len(ft.Items))
	for i, ic := range ft.Items {
		rows = append(rows, []interface{}{i + 1, ic.Item, ic.Count})
	}
	return rows
}

// slug makes a selection safe for a file name
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "all"
	}
	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "all"
	}
	return out
}
