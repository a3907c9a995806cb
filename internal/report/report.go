package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jobinsight/internal/charts"
	"jobinsight/internal/config"
	"jobinsight/internal/services"
	"jobinsight/pkg/contracts/domain"
)

const (
	defaultWidth   = 80
	maxLabelWidth  = 28
	maxListedIssue = 10
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			MarginTop(1)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			MarginTop(1)

	wordsBar     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B68EE"))
	skillsBar    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00"))
	sentimentBar = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	salaryBar    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B40426"))
)

// RenderText formats a summary as a terminal report. width <= 0 uses 80 columns.
func RenderText(summary *services.Summary, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	agg := summary.Aggregates

	var b strings.Builder
	b.WriteString(titleStyle.Render("📊 " + config.AppTitle))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("Dataset: %s  ·  %d rows  ·  %d columns",
		summary.Dataset.Path, summary.Dataset.Rows, summary.Dataset.Columns)))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("Experience level: %s (%d rows)", agg.Selection, agg.RowCount)))
	b.WriteString("\n")

	writeFrequency(&b, charts.TitleTopWords, agg.TopWords, wordsBar, width)
	writeCrossTab(&b, charts.TitleSalary, agg.ExperienceSalary, width)
	writeFrequency(&b, charts.TitleSkills, agg.TopSkills, skillsBar, width)
	writeFrequency(&b, charts.TitleSentiment, agg.Sentiment, sentimentBar, width)

	if n := len(agg.Warnings); n > 0 {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("Warnings (%d)", n)))
		b.WriteString("\n")
		for i, issue := range agg.Warnings {
			if i == maxListedIssue {
				b.WriteString(warningStyle.Render(fmt.Sprintf("  … %d more", n-maxListedIssue)))
				b.WriteString("\n")
				break
			}
			b.WriteString(warningStyle.Render(formatIssue(issue)))
			b.WriteString("\n")
		}
	}

	b.WriteString(footerStyle.Render(config.AppFooter))
	b.WriteString("\n")
	return b.String()
}

// WriteJSON writes the summary as indented JSON
func WriteJSON(w io.Writer, summary *services.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func writeFrequency(b *strings.Builder, title string, ft domain.FrequencyTable, bar lipgloss.Style, width int) {
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")
	if ft.Len() == 0 {
		b.WriteString(metaStyle.Render("  No data"))
		b.WriteString("\n")
		return
	}

	labels := ft.Labels()
	counts := ft.Counts()
	writeBars(b, labels, counts, bar, width)
}

func writeCrossTab(b *strings.Builder, title string, ct domain.CrossTab, width int) {
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")
	if len(ct.Cells) == 0 {
		b.WriteString(metaStyle.Render("  No data"))
		b.WriteString("\n")
		return
	}

	labels := make([]string, 0, len(ct.Cells))
	counts := make([]int, 0, len(ct.Cells))
	for _, level := range ct.Levels {
		for _, salary := range ct.Ranges {
			n := ct.Count(level, salary)
			if n == 0 {
				continue
			}
			labels = append(labels, level+" / "+salary)
			counts = append(counts, n)
		}
	}
	writeBars(b, labels, counts, salaryBar, width)
}

// writeBars draws one horizontal bar per label, scaled to the largest count
func writeBars(b *strings.Builder, labels []string, counts []int, bar lipgloss.Style, width int) {
	labelWidth := 0
	peak := 0
	for i, l := range labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
		peak = max(peak, counts[i])
	}
	labelWidth = min(labelWidth, maxLabelWidth)
	countWidth := len(fmt.Sprint(peak))

	barSpace := width - labelWidth - countWidth - 6
	if barSpace < 1 {
		barSpace = 1
	}

	labelStyle := lipgloss.NewStyle().Width(labelWidth + 2).PaddingLeft(2)
	for i, l := range labels {
		n := 0
		if peak > 0 {
			n = counts[i] * barSpace / peak
		}
		if n == 0 && counts[i] > 0 {
			n = 1
		}
		row := labelStyle.Render(truncate(l, labelWidth)) + " " +
			bar.Render(strings.Repeat("█", n)) + " " +
			countStyle.Render(fmt.Sprintf("%*d", countWidth, counts[i]))
		b.WriteString(row)
		b.WriteString("\n")
	}
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

func formatIssue(issue domain.RowIssue) string {
	if issue.Column != "" {
		return fmt.Sprintf("  Row %d (%s): %s", issue.Row, issue.Column, issue.Detail)
	}
	return fmt.Sprintf("  Row %d: %s", issue.Row, issue.Detail)
}
