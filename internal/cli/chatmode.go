package cli

import (
	"context"
	"io"

	"github.com/csvdeck/csvdeck/internal/analysis"
	"github.com/csvdeck/csvdeck/internal/chat"
	"github.com/csvdeck/csvdeck/internal/dataset"
)

// answererFactory mirrors narratorFactory for the chat surface.
type answererFactory func(ctx context.Context) (chat.Answerer, error)

// runChat loads and analyzes the CSV once, then hands the fixed summary to
// the interactive loop. The dataset never changes during a session.
func runChat(ctx context.Context, newAnswerer answererFactory, csvPath string, in io.Reader, out io.Writer) error {
	table, err := dataset.Load(csvPath)
	if err != nil {
		return err
	}
	summary := analysis.Analyze(table)

	nar, err := newAnswerer(ctx)
	if err != nil {
		return err
	}
	return chat.New(nar, summary.Text).Run(ctx, in, out)
}
