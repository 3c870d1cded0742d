package cli

import (
	"context"
	"time"

	"github.com/csvdeck/csvdeck/internal/analysis"
	"github.com/csvdeck/csvdeck/internal/charts"
	"github.com/csvdeck/csvdeck/internal/dataset"
	"github.com/csvdeck/csvdeck/internal/deck"
	logx "github.com/csvdeck/csvdeck/pkg/logger"
)

// narratorService is the slice of the narrator the generate pipeline uses.
// Kept as an interface so tests run the pipeline against a stub.
type narratorService interface {
	Insights(ctx context.Context, summary, question string) (string, error)
	Outline(ctx context.Context, summary, question, template string) (string, error)
}

// narratorFactory defers narrator construction (and with it config loading
// and any network client setup) until the pipeline actually needs a model.
type narratorFactory func(ctx context.Context) (narratorService, error)

type generateOptions struct {
	csvPath  string
	question string
	template string
	output   string
	chartDir string
}

// runGenerate executes the linear deck pipeline: template lookup, CSV load,
// analysis, narration, outline, charts, deck write. Template validation runs
// first so an unknown name fails before the narrator ever exists.
func runGenerate(ctx context.Context, newNarrator narratorFactory, opts generateOptions) (string, error) {
	tpl, err := deck.Lookup(opts.template)
	if err != nil {
		return "", err
	}

	table, err := dataset.Load(opts.csvPath)
	if err != nil {
		return "", err
	}
	logx.Info().Str("csv", opts.csvPath).Int("rows", table.RowCount()).
		Int("columns", len(table.Columns)).Str("template", tpl.Name).Msg("generating deck")

	summary := analysis.Analyze(table)

	nar, err := newNarrator(ctx)
	if err != nil {
		return "", err
	}

	insights, err := nar.Insights(ctx, summary.Text, opts.question)
	if err != nil {
		return "", err
	}

	rawOutline, err := nar.Outline(ctx, summary.Text, opts.question, tpl.Name)
	if err != nil {
		return "", err
	}
	outline := deck.ParseOutline(rawOutline, opts.question)

	chartPaths, err := charts.Render(table, tpl.Palette, opts.chartDir)
	if err != nil {
		return "", err
	}

	builder := deck.NewBuilder(tpl)
	specs := builder.Compose(deck.Content{
		Question: opts.question,
		Insights: insights,
		Outline:  outline,
		Charts:   chartPaths,
	})

	output := opts.output
	if output == "" {
		output = deck.DefaultOutputName(tpl.Name, time.Now())
	}
	if err := builder.WriteFile(specs, output); err != nil {
		return "", err
	}
	return output, nil
}
