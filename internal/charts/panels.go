package charts

import (
	"html/template"

	"jobinsight/pkg/contracts/domain"
)

// Chart titles shown on the dashboard
const (
	TitleTopWords  = "Top 20 Most Common Words"
	TitleSalary    = "Salary Distribution by Experience Level"
	TitleSkills    = "Most In-Demand Skills"
	TitleSentiment = "Sentiment Distribution"
	TitleWordCloud = "Common Keywords in Job Descriptions"
)

// Figures holds the rendered dashboard panels
type Figures struct {
	TopWords  template.HTML
	Salary    template.HTML
	Skills    template.HTML
	Sentiment template.HTML
	WordCloud template.HTML
}

// Render draws every panel of the dashboard for agg
func Render(agg *domain.Aggregates, cloudWidth, cloudHeight int) Figures {
	if agg == nil {
		agg = &domain.Aggregates{}
	}

	return Figures{
		TopWords: BarChart(BarSpec{
			Title:    TitleTopWords,
			XLabel:   "Words",
			YLabel:   "Frequency",
			Labels:   agg.TopWords.Labels(),
			Values:   agg.TopWords.Counts(),
			Colors:   []string{ColorWords},
			Rotation: 45,
		}),
		Salary: GroupedBarChart(GroupedSpec{
			Title:       TitleSalary,
			XLabel:      "Experience Level",
			YLabel:      "Count",
			LegendTitle: domain.ColumnSalaryRange,
			Data:        agg.ExperienceSalary,
		}),
		Skills: BarChart(BarSpec{
			Title:    TitleSkills,
			XLabel:   "Skills",
			YLabel:   "Frequency",
			Labels:   agg.TopSkills.Labels(),
			Values:   agg.TopSkills.Counts(),
			Colors:   []string{ColorSkills},
			Rotation: 55,
		}),
		Sentiment: BarChart(BarSpec{
			Title:  TitleSentiment,
			XLabel: "Sentiment",
			YLabel: "Number of Job Descriptions",
			Labels: agg.Sentiment.Labels(),
			Values: agg.Sentiment.Counts(),
			Colors: SentimentColors,
		}),
		WordCloud: WordCloud(CloudSpec{
			Title:  TitleWordCloud,
			Words:  agg.WordCloud,
			Width:  cloudWidth,
			Height: cloudHeight,
		}),
	}
}
