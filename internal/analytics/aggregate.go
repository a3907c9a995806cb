package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jobinsight/pkg/contracts/domain"
)

// Options sets the top-N sizes of the aggregates
type Options struct {
	TopWords       int
	TopSkills      int
	WordCloudWords int
}

// DefaultOptions returns 20 words, 10 skills and 200 word cloud terms
func DefaultOptions() Options {
	return Options{
		TopWords:       20,
		TopSkills:      10,
		WordCloudWords: 200,
	}
}

// Aggregate computes every dashboard aggregate for an already filtered table.
// The computations only read the table and run concurrently. Row issues of the
// table are returned as warnings.
func Aggregate(ctx context.Context, table *domain.JobTable, selection string, opts Options) (*domain.Aggregates, error) {
	if table == nil {
		table = &domain.JobTable{}
	}
	if IsAll(selection) {
		selection = AllLevels
	}

	agg := &domain.Aggregates{
		Selection: selection,
		RowCount:  table.Len(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		tokens := Tokens(table)
		agg.TopWords = TopN(tokens, opts.TopWords)
		agg.WordCloud = TopN(tokens, opts.WordCloudWords)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		agg.TopSkills = SkillFrequency(table, opts.TopSkills)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		agg.ExperienceSalary = ExperienceSalary(table)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		agg.Sentiment = SentimentCounts(table)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(table.Issues) > 0 {
		agg.Warnings = append([]domain.RowIssue(nil), table.Issues...)
	}

	return agg, nil
}

// FilterAndAggregate applies Filter then Aggregate
func FilterAndAggregate(ctx context.Context, table *domain.JobTable, selection string, opts Options) (*domain.Aggregates, error) {
	return Aggregate(ctx, Filter(table, selection), selection, opts)
}
